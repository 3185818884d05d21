// Package batch produces recommendations for a whole gradesheet and ships
// the resulting report.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"course-recommender/internal/concurrency"
	"course-recommender/internal/export"
	"course-recommender/internal/recommend"
	"course-recommender/internal/sftpclient"
)

type Options struct {
	Workers  int
	TopN     int
	Format   export.Format
	Compress bool

	// OutDir receives the report; empty means the working directory.
	OutDir string
	// Upload, when set, also sends the report over SFTP.
	Upload *sftpclient.Config
}

// Runner recommends for every gradesheet row against one service.
type Runner struct {
	svc  *recommend.Service
	log  *zap.Logger
	opts Options
	now  func() time.Time
}

func NewRunner(svc *recommend.Service, opts Options, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Format == "" {
		opts.Format = export.FormatCSV
	}
	return &Runner{svc: svc, log: log, opts: opts, now: time.Now}
}

// Recommend builds the report for grades. Row order is preserved.
func (r *Runner) Recommend(ctx context.Context, grades []Grade) (export.Report, error) {
	runID := uuid.NewString()
	log := r.log.With(zap.String("run_id", runID))
	start := r.now()

	entries, err := concurrency.Map(ctx, grades, concurrency.Options{MaxWorkers: r.opts.Workers},
		func(ctx context.Context, _ int, g Grade) (export.Entry, error) {
			res := r.svc.Recommend(recommend.Request{
				Subjects: g.Subjects,
				Score:    g.Score,
				TopN:     r.opts.TopN,
			})
			return export.Entry{
				Student:  g.Student,
				Subjects: res.Subjects,
				Score:    res.Score,
				Band:     res.Band,
				Courses:  res.Courses,
			}, nil
		})
	if err != nil {
		return export.Report{}, fmt.Errorf("batch: run %s: %w", runID, err)
	}

	log.Info("batch recommendations computed",
		zap.Int("students", len(entries)),
		zap.Duration("elapsed", r.now().Sub(start)),
	)
	return export.Report{RunID: runID, GeneratedAt: r.now().UTC(), Entries: entries}, nil
}

// Run recommends for grades, writes the report under OutDir and uploads
// it when configured. It returns the local report path.
func (r *Runner) Run(ctx context.Context, grades []Grade) (string, error) {
	rep, err := r.Recommend(ctx, grades)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, r.opts.Format, r.opts.Compress, rep); err != nil {
		return "", fmt.Errorf("batch: encode report: %w", err)
	}

	name := export.FileName(rep.RunID, r.opts.Format, r.opts.Compress)
	path := filepath.Join(r.opts.OutDir, name)
	if r.opts.OutDir != "" {
		if err := os.MkdirAll(r.opts.OutDir, 0o755); err != nil {
			return "", fmt.Errorf("batch: create %s: %w", r.opts.OutDir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("batch: write report: %w", err)
	}
	log := r.log.With(zap.String("run_id", rep.RunID), zap.String("path", path))
	log.Info("batch report written", zap.Int("bytes", buf.Len()))

	if r.opts.Upload != nil {
		if err := sftpclient.Upload(ctx, *r.opts.Upload, bytes.NewReader(buf.Bytes()), name); err != nil {
			return path, fmt.Errorf("batch: upload report: %w", err)
		}
		log.Info("batch report uploaded",
			zap.String("host", r.opts.Upload.Host),
			zap.String("dir", r.opts.Upload.RemoteDir),
		)
	}
	return path, nil
}
