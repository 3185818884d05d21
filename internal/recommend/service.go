package recommend

import (
	"math"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"course-recommender/internal/corpus"
	"course-recommender/internal/difficulty"
	"course-recommender/internal/domain"
	"course-recommender/internal/metrics"
	"course-recommender/internal/subject"
)

// Request is one recommendation query.
type Request struct {
	Subjects []string
	// Score is the proficiency score in [0,100]. Use InvalidScore when the
	// caller could not produce one.
	Score float64
	TopN  int
	// Canonicalize replaces every subject by the label of its canonical tag
	// before ranking ("CS" becomes "computer science").
	Canonicalize bool
}

// InvalidScore marks a missing or non-numeric score; it classifies as beginner.
var InvalidScore = math.NaN()

// ScoreFromText parses a raw score, returning InvalidScore when it is not numeric.
func ScoreFromText(raw string) float64 {
	v, ok := difficulty.ParseScore(raw)
	if !ok {
		return InvalidScore
	}
	return v
}

// Result is what callers serialize.
type Result struct {
	Subjects []string                `json:"subjects"`
	Score    *float64                `json:"score"`
	Band     domain.Band             `json:"difficulty"`
	Courses  []domain.Recommendation `json:"recommended_courses"`
}

// Service serves recommendations from the currently published index.
// The index is replaced wholesale with Swap; readers see either the old or
// the new index, never a partial one.
type Service struct {
	index atomic.Pointer[corpus.Index]
	opts  Options
	log   *zap.Logger
	now   func() time.Time
}

// NewService returns a service serving idx, which may be nil until the
// first Swap.
func NewService(idx *corpus.Index, opts Options, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{opts: opts, log: log, now: time.Now}
	if idx != nil {
		s.index.Store(idx)
		metrics.ObserveSwap(idx.Len())
	}
	return s
}

// Swap publishes idx and returns the index it replaced.
func (s *Service) Swap(idx *corpus.Index) *corpus.Index {
	if idx == nil {
		return s.index.Load()
	}
	old := s.index.Swap(idx)
	metrics.ObserveSwap(idx.Len())
	s.log.Info("course index published",
		zap.Int("courses", idx.Len()),
		zap.Int("vocabulary", idx.Model().VocabularySize()),
		zap.Time("built_at", idx.BuiltAt()),
	)
	return old
}

// Index returns the published index, or nil.
func (s *Service) Index() *corpus.Index { return s.index.Load() }

// Normalize maps a free text subject onto its canonical tag.
func (s *Service) Normalize(raw string) domain.Subject {
	return subject.Normalize(raw)
}

// Recommend never fails: pipeline errors are logged and produce an empty
// course list.
func (s *Service) Recommend(req Request) Result {
	start := s.now()
	subjects := req.Subjects
	if req.Canonicalize {
		subjects = canonicalize(subjects)
	}

	topN := req.TopN
	if topN <= 0 {
		topN = s.opts.TopN
	}
	recs, band, err := safeRecommend(s.index.Load(), subjects, req.Score, topN, s.opts)
	res := Result{
		Subjects: subjects,
		Band:     band,
		Courses:  recs,
	}
	if !math.IsNaN(req.Score) && !math.IsInf(req.Score, 0) {
		v := req.Score
		res.Score = &v
	}

	outcome := "ok"
	switch {
	case err != nil:
		outcome = "degraded"
		res.Courses = []domain.Recommendation{}
		s.log.Error("recommendation degraded to empty result",
			zap.Error(err),
			zap.Strings("subjects", subjects),
			zap.String("band", band.String()),
		)
	case len(recs) == 0:
		outcome = "empty"
	}
	if res.Courses == nil {
		res.Courses = []domain.Recommendation{}
	}

	elapsed := s.now().Sub(start)
	metrics.ObserveRecommendation(band.String(), outcome, len(res.Courses), elapsed)
	if ce := s.log.Check(zap.DebugLevel, "recommendation served"); ce != nil {
		ce.Write(
			zap.Strings("subjects", subjects),
			zap.String("band", band.String()),
			zap.Int("courses", len(res.Courses)),
			zap.Duration("elapsed", elapsed),
		)
	}
	return res
}

func canonicalize(subjects []string) []string {
	out := make([]string, len(subjects))
	for i, s := range subjects {
		out[i] = subject.Normalize(s).Label()
	}
	return out
}
