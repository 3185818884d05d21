package ranker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-recommender/internal/corpus"
	"course-recommender/internal/domain"
)

func catalog() []domain.CourseRecord {
	return []domain.CourseRecord{
		{Name: "Watercolor Painting", RawCategory: "Arts", Level: "Beginner"},
		{Name: "Algorithms", RawCategory: "Computer Science", Level: "Advanced"},
		{Name: "Nutrition", RawCategory: "Health", Level: "Beginner"},
		{Name: "Data Structures", RawCategory: "Computer Science", Level: "Intermediate"},
		{Name: "Machine Learning", RawCategory: "Data Science", Level: "Advanced"},
		{Name: "Anatomy", RawCategory: "Health", Level: "Advanced"},
		{Name: "Operating Systems", RawCategory: "Computer Science", Level: "Advanced"},
	}
}

func buildIndex(t *testing.T, records []domain.CourseRecord) *corpus.Index {
	t.Helper()
	idx, err := corpus.Build(records)
	require.NoError(t, err)
	return idx
}

func TestRankPutsMatchingSubjectFirst(t *testing.T) {
	idx := buildIndex(t, catalog())

	got := Rank(idx, []string{"computer science"}, 3)
	require.Len(t, got, 3)

	for i, rc := range got {
		assert.Equal(t, domain.SubjectComputerScience, rc.Course.Subject, "rank %d", i+1)
		assert.Equal(t, i+1, rc.Rank)
		assert.Greater(t, rc.Score, 0.0)
	}
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestRankTieBreaksByCorpusOrder(t *testing.T) {
	records := []domain.CourseRecord{
		{Name: "Course", RawCategory: "Cooking", Level: "x"},
		{Name: "Course", RawCategory: "Cooking", Level: "x"},
		{Name: "Course", RawCategory: "Cooking", Level: "x"},
	}
	idx := buildIndex(t, records)

	got := Rank(idx, []string{"unrelated query"}, 3)
	require.Len(t, got, 3)
	for i, rc := range got {
		assert.Equal(t, i, rc.Index)
		assert.Equal(t, 0.0, rc.Score)
	}

	got = Rank(idx, []string{"course"}, 3)
	require.Len(t, got, 3)
	for i, rc := range got {
		assert.Equal(t, i, rc.Index)
	}
}

func TestRankLimits(t *testing.T) {
	idx := buildIndex(t, catalog())

	assert.Nil(t, Rank(idx, []string{"health"}, 0))
	assert.Nil(t, Rank(idx, []string{"health"}, -3))
	assert.Nil(t, Rank(idx, nil, 5))
	assert.Nil(t, Rank(nil, []string{"health"}, 5))

	assert.Len(t, Rank(idx, []string{"health"}, 100), idx.Len())
}

func TestRankIsDeterministic(t *testing.T) {
	first := Rank(buildIndex(t, catalog()), []string{"computer science", "health"}, 5)
	for i := 0; i < 5; i++ {
		again := Rank(buildIndex(t, catalog()), []string{"computer science", "health"}, 5)
		assert.Equal(t, first, again)
	}
}

func TestRankIsMonotonicInTopN(t *testing.T) {
	idx := buildIndex(t, catalog())
	queries := []string{"data science"}

	prev := Rank(idx, queries, 1)
	for n := 2; n <= idx.Len(); n++ {
		cur := Rank(idx, queries, n)
		require.Len(t, cur, n)
		assert.Equal(t, prev, cur[:len(prev)], "topN=%d must extend topN=%d", n, n-1)
		prev = cur
	}
}

func TestRankIgnoresUnknownTerms(t *testing.T) {
	idx := buildIndex(t, catalog())

	plain := Rank(idx, []string{"health"}, 3)
	noisy := Rank(idx, []string{"health zzzunknown qqqword"}, 3)
	assert.Equal(t, plain, noisy)
}

func TestScoresAverageAcrossQueries(t *testing.T) {
	idx := buildIndex(t, catalog())

	a := Scores(idx, []string{"health"})
	b := Scores(idx, []string{"algorithms"})
	both := Scores(idx, []string{"health", "algorithms"})

	require.Len(t, both, idx.Len())
	for i := range both {
		assert.InDelta(t, (a[i]+b[i])/2, both[i], 1e-12, "course %d", i)
	}

	assert.Equal(t, make([]float64, idx.Len()), Scores(idx, nil))
}
