package domain

// CourseRecord is the canonical representation of a course inside this service.
// Every catalog source maps into this model; the index and the recommender
// only ever read it.
type CourseRecord struct {
	Name        string
	Link        string
	RawCategory string // category text as found in the source
	Subject     Subject
	Level       string // free text, expected to contain a band keyword
	Rating      float64

	UniversityName string
}

// RankedCourse pairs a course with its similarity to a query.
type RankedCourse struct {
	Course CourseRecord
	Index  int // position in the corpus
	Score  float64
	Rank   int // 1-based
}

// Recommendation is the caller-facing row returned by the recommender.
type Recommendation struct {
	Name           string  `json:"name"`
	Link           string  `json:"link"`
	Subject        Subject `json:"subject"`
	Rating         float64 `json:"rating"`
	Level          string  `json:"level"`
	UniversityName string  `json:"university_name,omitempty"`
	Score          float64 `json:"similarity"`
}

// NewRecommendation flattens a ranked course into an output row.
func NewRecommendation(rc RankedCourse) Recommendation {
	return Recommendation{
		Name:           rc.Course.Name,
		Link:           rc.Course.Link,
		Subject:        rc.Course.Subject,
		Rating:         rc.Course.Rating,
		Level:          rc.Course.Level,
		UniversityName: rc.Course.UniversityName,
		Score:          rc.Score,
	}
}
