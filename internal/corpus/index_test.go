package corpus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-recommender/internal/domain"
	"course-recommender/internal/subject"
)

func sampleCourses() []domain.CourseRecord {
	return []domain.CourseRecord{
		{Name: "Python for Everybody", RawCategory: "Computer Science", Level: "Beginner", Rating: 4.8},
		{Name: "Nutrition Basics", RawCategory: "Health", Level: "Intermediate", Rating: 4.1},
		{Name: "Statistics with R", RawCategory: "Data Analytics", Level: "Advanced", Rating: 4.4},
		{Name: "Mystery Course", Level: ""},
	}
}

func TestBuildNormalizesSubjects(t *testing.T) {
	idx, err := Build(sampleCourses())
	require.NoError(t, err)

	assert.Equal(t, 4, idx.Len())
	assert.Equal(t, domain.SubjectComputerScience, idx.Course(0).Subject)
	assert.Equal(t, domain.SubjectHealth, idx.Course(1).Subject)
	assert.Equal(t, domain.SubjectDataScience, idx.Course(2).Subject)
	assert.Equal(t, domain.SubjectOther, idx.Course(3).Subject)

	// raw category is kept as found
	assert.Equal(t, "Data Analytics", idx.Course(2).RawCategory)
}

func TestBuildComposesText(t *testing.T) {
	idx, err := Build(sampleCourses())
	require.NoError(t, err)

	assert.Equal(t, "Python for Everybody computer science Beginner", idx.Text(0))
	assert.Equal(t, "Mystery Course other ", idx.Text(3))
}

func TestBuildFitsOnce(t *testing.T) {
	idx, err := Build(sampleCourses())
	require.NoError(t, err)

	assert.Equal(t, 4, idx.Model().Documents())
	assert.Equal(t, 4, idx.Matrix().Rows())
	_, ok := idx.Model().TermID("python")
	assert.True(t, ok)
	_, ok = idx.Model().TermID("science")
	assert.True(t, ok)
}

func TestBuildDoesNotModifyInput(t *testing.T) {
	in := sampleCourses()
	_, err := Build(in)
	require.NoError(t, err)
	assert.Equal(t, domain.Subject(""), in[0].Subject)
}

func TestBuildFailsFast(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	_, err = Build([]domain.CourseRecord{})
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestBuildKeepsBlankNames(t *testing.T) {
	idx, err := Build([]domain.CourseRecord{
		{Name: "Intro to Python", RawCategory: "Programming", Level: "Beginner", Rating: 4.5},
		{Name: "  ", Link: "http://b", RawCategory: "Health", Level: "Beginner", Rating: 4},
	})
	require.NoError(t, err)
	require.Equal(t, 2, idx.Len())

	assert.Equal(t, "http://b", idx.Course(1).Link)
	assert.Equal(t, domain.SubjectHealth, idx.Course(1).Subject)
	assert.Equal(t, " health Beginner", idx.Text(1))
}

func TestBuildOptions(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	n := subject.New([]subject.Rule{{Tag: domain.SubjectDesign, Keywords: []string{"health"}}})

	idx, err := Build(sampleCourses(), WithNormalizer(n), WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)

	assert.Equal(t, fixed, idx.BuiltAt())
	assert.Equal(t, domain.SubjectDesign, idx.Course(1).Subject)
	assert.Equal(t, domain.SubjectOther, idx.Course(0).Subject)
}

func TestSubjectCountsAndCoursesCopy(t *testing.T) {
	idx, err := Build(sampleCourses())
	require.NoError(t, err)

	counts := idx.SubjectCounts()
	assert.Equal(t, 1, counts[domain.SubjectHealth])
	assert.Equal(t, 1, counts[domain.SubjectOther])

	cs := idx.Courses()
	cs[0].Name = "changed"
	assert.Equal(t, "Python for Everybody", idx.Course(0).Name)
}
