// Package api serves recommendations, subject normalization and placement
// quizzes over HTTP.
package api

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"course-recommender/internal/domain"
	"course-recommender/internal/quiz"
	"course-recommender/internal/recommend"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

type Config struct {
	CORSOrigins []string
	RateLimit   int
	RateWindow  time.Duration
}

type handler struct {
	svc      *recommend.Service
	log      *zap.Logger
	validate *validator.Validate
}

// NewRouter wires every route on top of svc.
func NewRouter(svc *recommend.Service, cfg Config, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = time.Minute
	}
	h := &handler{
		svc:      svc,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(accessLog(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler(cfg.CORSOrigins))

	r.Get("/healthz", h.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(rateLimit(cfg.RateLimit, cfg.RateWindow))
		r.Get("/subjects", h.subjects)
		r.Post("/normalize", h.normalize)
		r.Post("/recommend", h.recommend)
		r.Get("/quiz/{subject}", h.quizQuestions)
		r.Post("/quiz/submit", h.quizSubmit)
	})
	return r
}

type healthResponse struct {
	Status  string    `json:"status"`
	Courses int       `json:"courses"`
	BuiltAt time.Time `json:"built_at"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	idx := h.svc.Index()
	if idx == nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "no index"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Courses: idx.Len(), BuiltAt: idx.BuiltAt()})
}

func (h *handler) subjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, quiz.Subjects())
}

type normalizeRequest struct {
	Subject string `json:"subject" validate:"required"`
}

type normalizeResponse struct {
	Input string         `json:"input"`
	Tag   domain.Subject `json:"tag"`
	Label string         `json:"label"`
}

func (h *handler) normalize(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if !h.decode(w, r, &req) {
		return
	}
	tag := h.svc.Normalize(req.Subject)
	writeJSON(w, http.StatusOK, normalizeResponse{Input: req.Subject, Tag: tag, Label: tag.Label()})
}

type recommendRequest struct {
	Subjects     []string `json:"subjects" validate:"required,min=1,dive,required"`
	Score        *float64 `json:"score"`
	TopN         int      `json:"top_n" validate:"min=0,max=100"`
	Canonicalize bool     `json:"canonicalize"`
}

func (h *handler) recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if !h.decode(w, r, &req) {
		return
	}
	score := recommend.InvalidScore
	if req.Score != nil {
		score = *req.Score
	}
	res := h.svc.Recommend(recommend.Request{
		Subjects:     req.Subjects,
		Score:        score,
		TopN:         req.TopN,
		Canonicalize: req.Canonicalize,
	})
	writeJSON(w, http.StatusOK, res)
}

type quizResponse struct {
	Subject   string          `json:"subject"`
	Questions []quiz.Question `json:"questions"`
}

func (h *handler) quizQuestions(w http.ResponseWriter, r *http.Request) {
	subject, err := url.PathUnescape(chi.URLParam(r, "subject"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid subject")
		return
	}
	qs, err := quiz.Questions(subject)
	if err != nil {
		writeError(w, http.StatusNotFound, "no quiz available for this subject")
		return
	}
	writeJSON(w, http.StatusOK, quizResponse{Subject: subject, Questions: qs})
}

type submitRequest struct {
	Name    string            `json:"name" validate:"required"`
	Age     any               `json:"age" validate:"required"`
	Subject string            `json:"subject" validate:"required"`
	Answers map[string]string `json:"answers" validate:"required,min=1"`
}

func (h *handler) quizSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !h.decode(w, r, &req) {
		return
	}
	score, err := quiz.Score(req.Subject, req.Answers)
	if err != nil {
		h.log.Warn("quiz submitted for unknown subject", zap.String("subject", req.Subject))
		writeError(w, http.StatusBadRequest, "no quiz available for this subject")
		return
	}

	res := h.svc.Recommend(recommend.Request{Subjects: []string{req.Subject}, Score: score})
	h.log.Info("quiz graded",
		zap.String("subject", req.Subject),
		zap.Float64("score", score),
		zap.String("band", res.Band.String()),
		zap.Int("courses", len(res.Courses)),
	)
	writeJSON(w, http.StatusOK, res)
}

// decode reads a JSON body into dst and validates it, answering 400 itself
// on failure.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "missing required data"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "missing required field: " + fe.Field()
	default:
		return "invalid field " + fe.Field() + ": failed " + fe.Tag()
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
