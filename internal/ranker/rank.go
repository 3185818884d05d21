// Package ranker scores indexed courses against subject queries.
package ranker

import (
	"sort"

	"course-recommender/internal/corpus"
	"course-recommender/internal/domain"
)

// Rank returns the topN courses most similar to queries.
//
// Every query is projected with the index's fitted model and scored against
// every course; with several queries the per-course scores are averaged.
// Courses are ordered by descending score, ties keep corpus order. The
// result has min(topN, idx.Len()) entries; topN <= 0, a nil index or no
// queries yield nil.
func Rank(idx *corpus.Index, queries []string, topN int) []domain.RankedCourse {
	if idx == nil || idx.Len() == 0 || topN <= 0 || len(queries) == 0 {
		return nil
	}

	scores := Scores(idx, queries)

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if topN > len(order) {
		topN = len(order)
	}
	out := make([]domain.RankedCourse, topN)
	for r := 0; r < topN; r++ {
		i := order[r]
		out[r] = domain.RankedCourse{
			Course: idx.Course(i),
			Index:  i,
			Score:  scores[i],
			Rank:   r + 1,
		}
	}
	return out
}

// Scores returns the averaged similarity of queries to every course, in
// corpus order.
func Scores(idx *corpus.Index, queries []string) []float64 {
	scores := make([]float64, idx.Len())
	if len(queries) == 0 {
		return scores
	}
	model, matrix := idx.Model(), idx.Matrix()
	for _, q := range queries {
		matrix.AddScores(model.Transform(q), scores)
	}
	n := float64(len(queries))
	for i := range scores {
		scores[i] /= n
	}
	return scores
}
