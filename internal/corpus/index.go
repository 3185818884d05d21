// Package corpus builds the searchable course index: every course is
// normalized, rendered as one composite text, and vectorized with a TF-IDF
// model fitted once over the whole catalog.
package corpus

import (
	"errors"
	"strings"
	"time"

	"course-recommender/internal/domain"
	"course-recommender/internal/subject"
	"course-recommender/internal/tfidf"
)

// ErrEmptyCorpus is returned when there is nothing to index.
var ErrEmptyCorpus = errors.New("corpus: no courses to index")

// Index is immutable after Build and may be shared by any number of readers.
type Index struct {
	courses []domain.CourseRecord
	texts   []string
	model   *tfidf.Model
	matrix  *tfidf.Matrix
	builtAt time.Time
}

type options struct {
	normalizer *subject.Normalizer
	now        func() time.Time
}

// Option customizes Build.
type Option func(*options)

// WithNormalizer replaces the default subject rules.
func WithNormalizer(n *subject.Normalizer) Option {
	return func(o *options) { o.normalizer = n }
}

// WithClock sets the clock used to stamp BuiltAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Build normalizes every record's raw category, composes its indexed text
// and fits the term weighting model. Blank fields are indexed as empty text.
// The input slice is not modified.
func Build(records []domain.CourseRecord, opts ...Option) (*Index, error) {
	o := options{normalizer: subject.New(nil), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}

	courses := make([]domain.CourseRecord, len(records))
	texts := make([]string, len(records))
	for i, r := range records {
		r.Subject = o.normalizer.Normalize(r.RawCategory)
		courses[i] = r
		texts[i] = CompositeText(r)
	}

	model, rows := tfidf.FitTransform(texts)

	return &Index{
		courses: courses,
		texts:   texts,
		model:   model,
		matrix:  tfidf.NewMatrix(model, rows),
		builtAt: o.now(),
	}, nil
}

// CompositeText is the text indexed for a course: name, subject label and level.
func CompositeText(c domain.CourseRecord) string {
	return strings.Join([]string{
		strings.TrimSpace(c.Name),
		c.Subject.Label(),
		strings.TrimSpace(c.Level),
	}, " ")
}

func (x *Index) Len() int { return len(x.courses) }

// Course returns the record at corpus position i.
func (x *Index) Course(i int) domain.CourseRecord { return x.courses[i] }

// Courses returns a copy of the corpus in order.
func (x *Index) Courses() []domain.CourseRecord {
	out := make([]domain.CourseRecord, len(x.courses))
	copy(out, x.courses)
	return out
}

// Text returns the composite text indexed for course i.
func (x *Index) Text(i int) string { return x.texts[i] }

func (x *Index) Model() *tfidf.Model { return x.model }

func (x *Index) Matrix() *tfidf.Matrix { return x.matrix }

func (x *Index) BuiltAt() time.Time { return x.builtAt }

// SubjectCounts returns how many courses carry each canonical subject.
func (x *Index) SubjectCounts() map[domain.Subject]int {
	out := make(map[domain.Subject]int)
	for _, c := range x.courses {
		out[c.Subject]++
	}
	return out
}
