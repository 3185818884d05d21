package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"course-recommender/internal/recommend"
)

// ErrNoGradeColumns means the gradesheet lacks a student or subject column.
var ErrNoGradeColumns = errors.New("batch: gradesheet needs a student and a subject column")

// Grade is one gradesheet row. Subjects arrive already normalized.
type Grade struct {
	Student  string
	Subjects []string
	Score    float64 // recommend.InvalidScore when absent or not numeric
}

var (
	studentColumns = []string{"student", "name"}
	subjectColumns = []string{"subject", "subjects", "preferred subject"}
	scoreColumns   = []string{"score", "grade"}
)

// ReadGrades parses a gradesheet. Multiple subjects in one cell are
// separated by "|" or ";".
func ReadGrades(r io.Reader) ([]Grade, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoGradeColumns
	}
	if err != nil {
		return nil, fmt.Errorf("batch: read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	studentCol, subjectCol, scoreCol := pick(cols, studentColumns), pick(cols, subjectColumns), pick(cols, scoreColumns)
	if studentCol < 0 || subjectCol < 0 {
		return nil, ErrNoGradeColumns
	}

	at := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []Grade
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("batch: read line %d: %w", line, err)
		}
		out = append(out, Grade{
			Student:  at(row, studentCol),
			Subjects: splitSubjects(at(row, subjectCol)),
			Score:    recommend.ScoreFromText(at(row, scoreCol)),
		})
	}
	return out, nil
}

func pick(cols map[string]int, names []string) int {
	for _, n := range names {
		if i, ok := cols[n]; ok {
			return i
		}
	}
	return -1
}

func splitSubjects(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
