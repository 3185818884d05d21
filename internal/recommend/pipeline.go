// Package recommend combines similarity ranking with difficulty filtering to
// produce course recommendations.
package recommend

import (
	"errors"
	"fmt"
	"sort"

	"course-recommender/internal/corpus"
	"course-recommender/internal/difficulty"
	"course-recommender/internal/domain"
	"course-recommender/internal/ranker"
)

// DefaultTopN is the number of candidates retrieved when the caller does not say.
const DefaultTopN = 5

// ErrNoIndex is returned when no course index has been published.
var ErrNoIndex = errors.New("recommend: no course index loaded")

// Options tunes the pipeline.
type Options struct {
	// TopN is used by Service when a request leaves TopN unset. Zero means
	// DefaultTopN.
	TopN int

	// CandidateWidth widens the similarity retrieval before the difficulty
	// filter. Values at or below topN retrieve exactly topN candidates.
	CandidateWidth int
}

// Recommend ranks the corpus against subjects, keeps the candidates whose
// level mentions the band for score, and orders them by rating, highest
// first. Rating ties keep similarity order.
//
// Only the top max(topN, CandidateWidth) similar courses are considered, so
// the result can be shorter than topN, or empty, even when more courses of
// the right difficulty exist further down the similarity ranking.
func Recommend(idx *corpus.Index, subjects []string, score float64, topN int, opts Options) ([]domain.Recommendation, domain.Band, error) {
	band := difficulty.Classify(score)
	if idx == nil {
		return nil, band, ErrNoIndex
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	width := topN
	if opts.CandidateWidth > width {
		width = opts.CandidateWidth
	}

	ranked := ranker.Rank(idx, subjects, width)
	kept := FilterByBand(ranked, band)
	SortByRating(kept)

	out := make([]domain.Recommendation, 0, len(kept))
	for _, rc := range kept {
		out = append(out, domain.NewRecommendation(rc))
	}
	return out, band, nil
}

// FilterByBand keeps courses whose level text contains the band name.
func FilterByBand(ranked []domain.RankedCourse, band domain.Band) []domain.RankedCourse {
	out := make([]domain.RankedCourse, 0, len(ranked))
	for _, rc := range ranked {
		if band.Matches(rc.Course.Level) {
			out = append(out, rc)
		}
	}
	return out
}

// SortByRating orders courses by rating, descending, keeping the existing
// order between equal ratings.
func SortByRating(courses []domain.RankedCourse) {
	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].Course.Rating > courses[j].Course.Rating
	})
}

// safeRecommend turns a panic inside the pipeline into an error.
func safeRecommend(idx *corpus.Index, subjects []string, score float64, topN int, opts Options) (recs []domain.Recommendation, band domain.Band, err error) {
	defer func() {
		if r := recover(); r != nil {
			recs = nil
			band = difficulty.Classify(score)
			err = fmt.Errorf("recommend: pipeline panic: %v", r)
		}
	}()
	return Recommend(idx, subjects, score, topN, opts)
}
