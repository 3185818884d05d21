package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"course-recommender/internal/domain"
)

var (
	// ErrNoSubjectColumn means none of the subject columns is present.
	ErrNoSubjectColumn = errors.New("catalog: no subject column (category, sub_category or course_type)")
	// ErrMissingColumn means a required column is absent from the header.
	ErrMissingColumn = errors.New("catalog: missing required column")
)

// Column names of the course CSV.
const (
	ColName       = "course_name"
	ColLink       = "course_link"
	ColLevel      = "course_level"
	ColRating     = "course_rating"
	ColUniversity = "university_name"
)

// SubjectColumns are tried in order; the first present one is the subject.
var SubjectColumns = []string{"category", "sub_category", "course_type"}

// ReadCSV parses a course catalog. Unknown columns are ignored, missing
// optional columns read as empty and unparseable ratings as 0.
func ReadCSV(r io.Reader) ([]domain.CourseRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s (empty file)", ErrMissingColumn, ColName)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: read header: %w", err)
	}

	cols := indexHeader(header)
	nameCol, ok := cols[ColName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColName)
	}
	subjectCol := -1
	for _, name := range SubjectColumns {
		if i, ok := cols[name]; ok {
			subjectCol = i
			break
		}
	}
	if subjectCol < 0 {
		return nil, ErrNoSubjectColumn
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	at := func(row []string, i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []domain.CourseRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: read line %d: %w", line, err)
		}
		out = append(out, domain.CourseRecord{
			Name:           at(row, nameCol),
			Link:           field(row, ColLink),
			RawCategory:    at(row, subjectCol),
			Level:          field(row, ColLevel),
			Rating:         parseRating(field(row, ColRating)),
			UniversityName: field(row, ColUniversity),
		})
	}
	return out, nil
}

func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	return cols
}

func parseRating(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
