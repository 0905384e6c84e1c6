package scoring

import (
	"fmt"
	"math"
	"strings"
)

// Situational modifier values recognized by the scoring engine.
const (
	WearTemperatureWarm = "warm"
	FormalityFeelFormal = "formal"
)

// Axis names used in adjustment records.
const (
	AxisComfort   = "comfort"
	AxisFormality = "formality"
)

// ScoreVector is the two-axis garment rating, each axis an integer in [1,5].
type ScoreVector struct {
	Comfort   int `json:"comfort"`
	Formality int `json:"formality"`
}

// Adjustment records one modifier that actually changed a clamped axis value.
type Adjustment struct {
	Axis   string `json:"axis"`
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

// ScoreResult carries the final vector plus enough detail to audit how it was
// produced: which category table was used, which rule matched (empty when the
// fallback vector applied) and which adjustments took effect.
type ScoreResult struct {
	Score       ScoreVector  `json:"score"`
	Category    string       `json:"category"`
	MatchedRule string       `json:"matched_rule,omitempty"`
	Adjustments []Adjustment `json:"adjustments,omitempty"`
}

// Score deterministically maps (category, subcategory, modifiers) to a score
// vector. Base lookup: exact key/alias match first, then the first rule whose
// key or alias is a substring of the normalized subcategory, then the
// category's fallback, then the global default for unknown categories.
// Modifiers apply after the base lookup, each clamped to [1,5]; a modifier that
// cannot move the clamped value is not recorded.
func Score(category, subcategory, wearTemperature, formalityFeel string) ScoreResult {
	result := ScoreResult{Category: category}

	norm := NormalizeText(subcategory)
	table, known := scoreTables[category]
	switch {
	case !known:
		result.Score = defaultVector
	default:
		result.Score = table.fallback
		if rule, ok := matchRule(table, norm); ok {
			result.Score = rule.vector
			result.MatchedRule = rule.key
		}
	}

	if NormalizeText(wearTemperature) == WearTemperatureWarm {
		result.applyAdjustment(AxisComfort, 1, "warm wear temperature")
	}
	if NormalizeText(formalityFeel) == FormalityFeelFormal {
		result.applyAdjustment(AxisFormality, 1, "formal feel")
	}

	return result
}

// matchRule runs the exact pass over every rule before the soft substring pass,
// so an exact alias always beats an earlier rule's partial hit.
func matchRule(table categoryTable, norm string) (scoreRule, bool) {
	if norm == "" {
		return scoreRule{}, false
	}
	for _, rule := range table.rules {
		if norm == rule.key {
			return rule, true
		}
		for _, alias := range rule.aliases {
			if norm == alias {
				return rule, true
			}
		}
	}
	for _, rule := range table.rules {
		if strings.Contains(norm, rule.key) {
			return rule, true
		}
		for _, alias := range rule.aliases {
			if strings.Contains(norm, alias) {
				return rule, true
			}
		}
	}
	return scoreRule{}, false
}

func (r *ScoreResult) applyAdjustment(axis string, delta int, reason string) {
	var current *int
	switch axis {
	case AxisComfort:
		current = &r.Score.Comfort
	case AxisFormality:
		current = &r.Score.Formality
	default:
		return
	}

	adjusted := ClampAxis(float64(*current + delta))
	if adjusted == *current {
		return
	}
	r.Adjustments = append(r.Adjustments, Adjustment{
		Axis:   axis,
		Delta:  adjusted - *current,
		Reason: reason,
	})
	*current = adjusted
}

// ClampAxis rounds half-up and bounds the value to [1,5]. Non-finite inputs
// default to 3.
func ClampAxis(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 3
	}
	n := int(math.Floor(v + 0.5))
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

// Explanation renders the result as one human-readable audit line.
func (r ScoreResult) Explanation() string {
	var b strings.Builder
	fmt.Fprintf(&b, "category=%s", r.Category)
	if r.MatchedRule != "" {
		fmt.Fprintf(&b, " rule=%s", r.MatchedRule)
	} else {
		b.WriteString(" rule=fallback")
	}
	for _, adj := range r.Adjustments {
		fmt.Fprintf(&b, "; %s %+d (%s)", adj.Axis, adj.Delta, adj.Reason)
	}
	return b.String()
}
