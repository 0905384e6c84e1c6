package scoring

// scoreRule maps a subcategory (by key or alias) to a base score vector.
// Rule order inside a category is significant: the soft substring match takes
// the first rule that hits, so broader aliases sit later in each list.
type scoreRule struct {
	key     string
	aliases []string
	vector  ScoreVector
}

type categoryTable struct {
	rules    []scoreRule
	fallback ScoreVector
}

// defaultVector applies when the category itself is unrecognized.
var defaultVector = ScoreVector{Comfort: 3, Formality: 3}

var scoreTables = map[string]categoryTable{
	CategoryTops: {
		rules: []scoreRule{
			{key: "hoodie", aliases: []string{"hooded sweatshirt"}, vector: ScoreVector{5, 1}},
			{key: "sweatshirt", aliases: []string{"crewneck"}, vector: ScoreVector{5, 1}},
			{key: "t shirt", aliases: []string{"tee", "graphic tee"}, vector: ScoreVector{5, 1}},
			{key: "tank top", aliases: []string{"tank"}, vector: ScoreVector{5, 1}},
			{key: "dress shirt", aliases: []string{"button up", "button down", "oxford shirt"}, vector: ScoreVector{2, 4}},
			{key: "polo", vector: ScoreVector{4, 3}},
			{key: "sweater", aliases: []string{"knit", "turtleneck"}, vector: ScoreVector{4, 3}},
			{key: "henley", vector: ScoreVector{4, 2}},
		},
		fallback: ScoreVector{4, 2},
	},
	CategoryBottoms: {
		rules: []scoreRule{
			{key: "sweatpants", aliases: []string{"jogger", "track pant"}, vector: ScoreVector{5, 1}},
			{key: "shorts", vector: ScoreVector{5, 1}},
			{key: "jeans", aliases: []string{"denim"}, vector: ScoreVector{4, 2}},
			{key: "chinos", aliases: []string{"chino"}, vector: ScoreVector{3, 3}},
			{key: "trousers", aliases: []string{"slacks", "dress pant", "suit pant"}, vector: ScoreVector{2, 4}},
			{key: "cargo pants", aliases: []string{"cargo"}, vector: ScoreVector{4, 1}},
			{key: "skirt", vector: ScoreVector{3, 3}},
		},
		fallback: ScoreVector{3, 3},
	},
	CategoryOuterwear: {
		rules: []scoreRule{
			{key: "blazer", aliases: []string{"sport coat", "suit jacket"}, vector: ScoreVector{2, 5}},
			{key: "overcoat", aliases: []string{"topcoat", "wool coat"}, vector: ScoreVector{2, 5}},
			{key: "trench coat", aliases: []string{"trench"}, vector: ScoreVector{2, 4}},
			{key: "hoodie", aliases: []string{"zip hoodie", "zip up"}, vector: ScoreVector{5, 1}},
			{key: "puffer", aliases: []string{"down jacket"}, vector: ScoreVector{4, 2}},
			{key: "denim jacket", aliases: []string{"trucker"}, vector: ScoreVector{3, 2}},
			{key: "bomber", vector: ScoreVector{3, 2}},
			{key: "leather jacket", aliases: []string{"moto"}, vector: ScoreVector{2, 3}},
			{key: "cardigan", vector: ScoreVector{4, 3}},
			{key: "windbreaker", aliases: []string{"anorak", "shell"}, vector: ScoreVector{4, 1}},
		},
		fallback: ScoreVector{3, 3},
	},
	CategoryShoes: {
		rules: []scoreRule{
			{key: "running shoes", aliases: []string{"runner"}, vector: ScoreVector{5, 1}},
			{key: "sneakers", aliases: []string{"sneaker", "trainer"}, vector: ScoreVector{5, 2}},
			{key: "sandals", aliases: []string{"slides", "slide", "flip flop"}, vector: ScoreVector{5, 1}},
			{key: "loafers", aliases: []string{"loafer"}, vector: ScoreVector{3, 4}},
			{key: "dress shoes", aliases: []string{"oxford", "derby", "brogue"}, vector: ScoreVector{2, 5}},
			{key: "heels", aliases: []string{"heel", "pump"}, vector: ScoreVector{2, 4}},
			{key: "boots", aliases: []string{"boot", "chelsea"}, vector: ScoreVector{3, 3}},
		},
		fallback: ScoreVector{3, 3},
	},
	CategoryAccessories: {
		rules: []scoreRule{
			{key: "necktie", aliases: []string{"bow tie"}, vector: ScoreVector{1, 5}},
			{key: "watch", vector: ScoreVector{3, 4}},
			{key: "beanie", vector: ScoreVector{4, 1}},
			{key: "cap", aliases: []string{"hat"}, vector: ScoreVector{4, 2}},
			{key: "belt", vector: ScoreVector{3, 3}},
			{key: "scarf", vector: ScoreVector{3, 3}},
			{key: "jewelry", aliases: []string{"necklace", "bracelet", "ring", "chain"}, vector: ScoreVector{3, 3}},
			{key: "bag", aliases: []string{"tote", "backpack"}, vector: ScoreVector{3, 3}},
		},
		fallback: ScoreVector{3, 3},
	},
	CategoryFragrance: {
		rules: []scoreRule{
			{key: "eau de parfum", aliases: []string{"parfum"}, vector: ScoreVector{3, 4}},
			{key: "cologne", aliases: []string{"eau de toilette"}, vector: ScoreVector{3, 3}},
		},
		fallback: ScoreVector{3, 3},
	},
}
