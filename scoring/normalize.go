package scoring

import (
	"regexp"
	"strings"
)

// Closed garment category set.
const (
	CategoryTops        = "tops"
	CategoryBottoms     = "bottoms"
	CategoryOuterwear   = "outerwear"
	CategoryShoes       = "shoes"
	CategoryAccessories = "accessories"
	CategoryFragrance   = "fragrance"
)

var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// GarmentAttributes are the loosely-labeled inputs a caller (or the label
// provider) supplies for one garment.
type GarmentAttributes struct {
	GarmentType string   `json:"garment_type"`
	Subcategory string   `json:"subcategory"`
	Title       string   `json:"title"`
	Tags        []string `json:"tags"`
}

// CategoryNormalized is the stable categorization derived from free-text labels.
type CategoryNormalized struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}

// categoryVocab is evaluated in order, first match wins. Outerwear runs before
// accessories so "hoodie" never resolves through an accessories fragment; the
// accessories list deliberately has no bare "hood" token for the same reason.
var categoryVocab = []struct {
	category string
	keywords []string
}{
	{CategoryFragrance, []string{
		"perfume", "cologne", "parfum", "fragrance", "eau de toilette", "aftershave",
	}},
	{CategoryShoes, []string{
		"sneaker", "trainer", "shoe", "boot", "loafer", "heel", "sandal",
		"oxford", "derby", "slide", "mule", "slipper", "cleat",
	}},
	{CategoryOuterwear, []string{
		"jacket", "coat", "hoodie", "blazer", "parka", "puffer", "windbreaker",
		"anorak", "trench", "cardigan", "gilet", "bomber",
	}},
	{CategoryBottoms, []string{
		"pant", "jean", "jogger", "sweatpant", "short", "skirt", "trouser",
		"chino", "legging", "denim", "cargo",
	}},
	{CategoryAccessories, []string{
		"hat", "cap", "beanie", "bag", "tote", "belt", "jewelry", "necklace",
		"bracelet", "ring", "chain", "watch", "scarf", "necktie", "sunglasses",
		"wallet", "glove",
	}},
}

// NormalizeText lowercases, trims and collapses punctuation runs to single spaces.
func NormalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnumRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeCategory maps free-text garment labels to the closed category set
// plus a cleaned subcategory. All inputs are normalized and concatenated into
// one search blob; category keyword tests run in fixed priority order so that
// ambiguous tokens resolve predictably. Anything unmatched defaults to tops.
func NormalizeCategory(attrs GarmentAttributes) CategoryNormalized {
	parts := []string{
		NormalizeText(attrs.GarmentType),
		NormalizeText(attrs.Subcategory),
		NormalizeText(attrs.Title),
	}
	for _, tag := range attrs.Tags {
		parts = append(parts, NormalizeText(tag))
	}
	blob := strings.TrimSpace(strings.Join(parts, " "))

	category := CategoryTops
	for _, entry := range categoryVocab {
		if containsAny(blob, entry.keywords) {
			category = entry.category
			break
		}
	}

	subcategory := NormalizeText(attrs.Subcategory)
	if subcategory == "" {
		subcategory = NormalizeText(attrs.GarmentType)
	}
	if subcategory == "" {
		subcategory = category
	}

	return CategoryNormalized{Category: category, Subcategory: subcategory}
}

func containsAny(blob string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(blob, kw) {
			return true
		}
	}
	return false
}
