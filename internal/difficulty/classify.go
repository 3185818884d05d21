// Package difficulty maps proficiency scores onto difficulty bands.
package difficulty

import (
	"math"
	"strconv"
	"strings"

	"course-recommender/internal/domain"
)

const (
	// IntermediateFrom is the lowest score classified as intermediate.
	IntermediateFrom = 50.0
	// AdvancedAbove is the highest score still classified as intermediate.
	AdvancedAbove = 75.0
)

// Classify maps a score in [0,100] to a band:
//
//	score < 50        beginner
//	50 <= score <= 75 intermediate
//	score > 75        advanced
//
// NaN and infinities are not scores and fall back to beginner.
func Classify(score float64) domain.Band {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return domain.BandBeginner
	}
	switch {
	case score < IntermediateFrom:
		return domain.BandBeginner
	case score <= AdvancedAbove:
		return domain.BandIntermediate
	default:
		return domain.BandAdvanced
	}
}

// ClassifyText classifies a raw score as received from a caller.
// Anything that does not parse as a number is beginner.
func ClassifyText(raw string) domain.Band {
	score, ok := ParseScore(raw)
	if !ok {
		return domain.BandBeginner
	}
	return Classify(score)
}

// ParseScore parses a numeric score, tolerating surrounding spaces and a
// trailing percent sign. It reports false for empty or non-numeric input.
func ParseScore(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
