package domain

import "strings"

// Band is an ordinal difficulty level derived from a proficiency score.
type Band string

const (
	BandBeginner     Band = "beginner"
	BandIntermediate Band = "intermediate"
	BandAdvanced     Band = "advanced"
)

// Rank orders bands: beginner=0, intermediate=1, advanced=2.
// Unknown values rank as beginner.
func (b Band) Rank() int {
	switch b {
	case BandIntermediate:
		return 1
	case BandAdvanced:
		return 2
	default:
		return 0
	}
}

// Matches reports whether a free text course level mentions this band.
func (b Band) Matches(level string) bool {
	if b == "" {
		return false
	}
	return strings.Contains(strings.ToLower(level), string(b))
}

func (b Band) String() string { return string(b) }
