// Package export writes batch recommendation reports as CSV or JSON,
// optionally brotli-compressed.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/goccy/go-json"

	"course-recommender/internal/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts "csv" or "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("export: unknown format %q (want csv or json)", s)
	}
}

// Report is the outcome of one batch run.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Entries     []Entry   `json:"entries"`
}

// Entry is one student's recommendation.
type Entry struct {
	Student  string                  `json:"student"`
	Subjects []string                `json:"subjects"`
	Score    *float64                `json:"score"`
	Band     domain.Band             `json:"difficulty"`
	Courses  []domain.Recommendation `json:"recommended_courses"`
}

// Keep header order stable; downstream sheets key on position.
var csvHeader = []string{
	"RUN_ID",
	"STUDENT",
	"SUBJECTS",
	"SCORE",
	"DIFFICULTY",
	"RANK",
	"COURSE_NAME",
	"COURSE_LINK",
	"COURSE_SUBJECT",
	"COURSE_LEVEL",
	"COURSE_RATING",
	"SIMILARITY",
}

// WriteCSV writes one row per recommended course. Students without any
// recommendation still get a row with the course columns empty.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range r.Entries {
		base := []string{
			r.RunID,
			e.Student,
			strings.Join(cleanStrings(e.Subjects), " | "),
			scoreString(e.Score),
			e.Band.String(),
		}
		if len(e.Courses) == 0 {
			if err := cw.Write(append(base, "", "", "", "", "", "", "")); err != nil {
				return err
			}
			continue
		}
		for i, c := range e.Courses {
			row := append(append([]string(nil), base...),
				strconv.Itoa(i+1),
				c.Name,
				c.Link,
				c.Subject.Label(),
				c.Level,
				floatToString(c.Rating),
				strconv.FormatFloat(c.Score, 'f', 6, 64),
			)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the report as one indented JSON document.
func WriteJSON(w io.Writer, r Report) error {
	r.Entries = slices.Clone(r.Entries)
	for i := range r.Entries {
		if r.Entries[i].Courses == nil {
			r.Entries[i].Courses = []domain.Recommendation{}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Write encodes r in format f, brotli-compressing the stream when compress
// is set.
func Write(w io.Writer, f Format, compress bool, r Report) error {
	var bw *brotli.Writer
	if compress {
		bw = brotli.NewWriterLevel(w, brotli.DefaultCompression)
		w = bw
	}

	var err error
	switch f {
	case FormatCSV:
		err = WriteCSV(w, r)
	case FormatJSON:
		err = WriteJSON(w, r)
	default:
		err = fmt.Errorf("export: unknown format %q", f)
	}
	if bw != nil {
		if cerr := bw.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// FileName is the conventional report name, e.g. "recommendations-<run>.csv.br".
func FileName(runID string, f Format, compress bool) string {
	name := "recommendations-" + runID + "." + string(f)
	if compress {
		name += ".br"
	}
	return name
}

func scoreString(v *float64) string {
	if v == nil {
		return ""
	}
	return floatToString(*v)
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		s = strings.ReplaceAll(s, "\n", " ")
		s = strings.ReplaceAll(s, "\r", " ")
		out = append(out, s)
	}
	return out
}
