// Package catalog loads course catalogs from files, URLs, the SQLite store
// or a Udemy organization, and builds the searchable index from them.
package catalog

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"course-recommender/internal/catalog/udemy"
	"course-recommender/internal/config"
	"course-recommender/internal/corpus"
	"course-recommender/internal/domain"
	"course-recommender/internal/httpx"
	"course-recommender/internal/metrics"
	"course-recommender/internal/store"
)

// Source yields the raw course records of one catalog.
type Source interface {
	Name() string
	LoadCourses(ctx context.Context) ([]domain.CourseRecord, error)
}

// FileSource reads a course CSV from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file" }

func (s FileSource) LoadCourses(ctx context.Context) ([]domain.CourseRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", s.Path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// HTTPSource downloads a course CSV.
type HTTPSource struct {
	URL    string
	Client *http.Client
	Retry  httpx.RetryConfig
}

func (s HTTPSource) Name() string { return "http" }

func (s HTTPSource) LoadCourses(ctx context.Context) ([]domain.CourseRecord, error) {
	header := http.Header{"Accept": {"text/csv, */*"}}
	body, err := httpx.Get(ctx, s.Client, s.URL, header, s.Retry)
	if err != nil {
		return nil, fmt.Errorf("catalog: download %s: %w", s.URL, err)
	}
	return ReadCSV(bytes.NewReader(body))
}

// StoreSource reads the catalog previously imported into SQLite.
type StoreSource struct {
	Path string
}

func (s StoreSource) Name() string { return "sqlite" }

func (s StoreSource) LoadCourses(ctx context.Context) ([]domain.CourseRecord, error) {
	db, err := store.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.ListCourses(ctx)
}

// Open returns the source selected by cfg.Catalog.Source.
func Open(cfg config.Config, log *zap.Logger) (Source, error) {
	if log == nil {
		log = zap.NewNop()
	}
	client := &http.Client{Timeout: cfg.Catalog.Timeout}

	switch cfg.Catalog.Source {
	case "file":
		return FileSource{Path: cfg.Catalog.Path}, nil
	case "http":
		retry := httpx.DefaultRetryConfig()
		retry.Logger = log
		return HTTPSource{URL: cfg.Catalog.URL, Client: client, Retry: retry}, nil
	case "sqlite":
		return StoreSource{Path: cfg.Catalog.DBPath}, nil
	case "udemy":
		c := udemy.New(cfg.Udemy.BaseURL, cfg.Udemy.OrgID, cfg.Udemy.ClientID, cfg.Udemy.ClientSecret)
		c.HTTP = client
		c.Log = log
		return udemy.Source{C: c, PageSize: cfg.Udemy.PageSize, MaxPages: cfg.Udemy.MaxPages}, nil
	default:
		return nil, fmt.Errorf("catalog: unknown source %q", cfg.Catalog.Source)
	}
}

// LoadIndex loads every course from src and fits the index over them.
func LoadIndex(ctx context.Context, src Source, log *zap.Logger) (*corpus.Index, error) {
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()

	records, err := src.LoadCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: load from %s: %w", src.Name(), err)
	}
	loaded := time.Since(start)

	idx, err := corpus.Build(records)
	if err != nil {
		return nil, fmt.Errorf("catalog: build index from %s: %w", src.Name(), err)
	}
	built := time.Since(start) - loaded
	metrics.ObserveIndex(built)

	log.Info("course index built",
		zap.String("source", src.Name()),
		zap.Int("courses", idx.Len()),
		zap.Int("vocabulary", idx.Model().VocabularySize()),
		zap.Duration("load", loaded),
		zap.Duration("build", built),
	)
	return idx, nil
}
