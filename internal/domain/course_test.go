package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRecommendation(t *testing.T) {
	rc := RankedCourse{
		Course: CourseRecord{
			Name:           "Intro to Go",
			Link:           "https://example.com/course/go",
			RawCategory:    "Programming",
			Subject:        SubjectComputerScience,
			Level:          "Beginner",
			Rating:         4.5,
			UniversityName: "Example U",
		},
		Index: 3,
		Score: 0.42,
		Rank:  1,
	}

	got := NewRecommendation(rc)

	assert.Equal(t, "Intro to Go", got.Name)
	assert.Equal(t, "https://example.com/course/go", got.Link)
	assert.Equal(t, SubjectComputerScience, got.Subject)
	assert.Equal(t, 4.5, got.Rating)
	assert.Equal(t, "Beginner", got.Level)
	assert.Equal(t, "Example U", got.UniversityName)
	assert.InDelta(t, 0.42, got.Score, 1e-9)
}

func TestSubjectValidAndLabel(t *testing.T) {
	for _, s := range AllSubjects() {
		assert.True(t, s.Valid(), "%s should be valid", s)
	}
	assert.False(t, Subject("astrology").Valid())
	assert.False(t, Subject("").Valid())

	assert.Equal(t, "computer science", SubjectComputerScience.Label())
	assert.Equal(t, "health", SubjectHealth.Label())
	assert.Equal(t, SubjectOther, AllSubjects()[len(AllSubjects())-1])
}

func TestAllSubjectsReturnsCopy(t *testing.T) {
	a := AllSubjects()
	a[0] = "mutated"
	assert.Equal(t, SubjectHealth, AllSubjects()[0])
}

func TestBandRankAndMatches(t *testing.T) {
	assert.Less(t, BandBeginner.Rank(), BandIntermediate.Rank())
	assert.Less(t, BandIntermediate.Rank(), BandAdvanced.Rank())
	assert.Equal(t, 0, Band("weird").Rank())

	testCases := []struct {
		band  Band
		level string
		want  bool
	}{
		{BandBeginner, "Beginner", true},
		{BandBeginner, "Beginner Level", true},
		{BandIntermediate, "INTERMEDIATE", true},
		{BandAdvanced, "Intermediate", false},
		{BandAdvanced, "", false},
		{Band(""), "anything", false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, tc.band.Matches(tc.level), "%s matches %q", tc.band, tc.level)
	}
}
