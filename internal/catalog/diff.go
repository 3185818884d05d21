package catalog

import (
	"math"
	"strings"

	"course-recommender/internal/domain"
)

// Changes summarizes how an incoming catalog differs from the current one.
type Changes struct {
	Create []domain.CourseRecord
	Update []domain.CourseRecord
	Delete []domain.CourseRecord
}

// Diff compares incoming courses with current ones. Courses are matched by
// Key; a matched course is an update when any indexed or displayed field
// changed. Create and Update follow incoming order, Delete follows current.
func Diff(current, incoming []domain.CourseRecord) Changes {
	curByKey := make(map[string]domain.CourseRecord, len(current))
	for _, c := range current {
		curByKey[Key(c)] = c
	}

	var ch Changes
	seen := make(map[string]bool, len(incoming))
	for _, c := range incoming {
		k := Key(c)
		if seen[k] {
			continue
		}
		seen[k] = true

		old, ok := curByKey[k]
		switch {
		case !ok:
			ch.Create = append(ch.Create, c)
		case needsUpdate(old, c):
			ch.Update = append(ch.Update, c)
		}
	}
	for _, c := range current {
		if !seen[Key(c)] {
			ch.Delete = append(ch.Delete, c)
		}
	}
	return ch
}

// Key identifies a course across imports: its link when present, else its name.
func Key(c domain.CourseRecord) string {
	if l := norm(c.Link); l != "" {
		return "link:" + l
	}
	return "name:" + norm(c.Name)
}

func needsUpdate(old, c domain.CourseRecord) bool {
	if norm(old.Name) != norm(c.Name) ||
		norm(old.RawCategory) != norm(c.RawCategory) ||
		norm(old.Level) != norm(c.Level) ||
		norm(old.UniversityName) != norm(c.UniversityName) {
		return true
	}
	// tolerate float formatting differences
	return math.Abs(old.Rating-c.Rating) > 0.001
}

func norm(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}
