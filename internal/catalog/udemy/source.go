package udemy

import (
	"context"
	"net/url"
	"strings"

	"course-recommender/internal/domain"
)

// Source exposes an organization's courses as catalog records.
type Source struct {
	C        *Client
	PageSize int
	MaxPages int // <=0 means all
}

func (s Source) Name() string { return "udemy" }

func (s Source) LoadCourses(ctx context.Context) ([]domain.CourseRecord, error) {
	if s.PageSize <= 0 {
		s.PageSize = 100
	}

	courses, err := s.C.ListCourses(ctx, s.PageSize, s.MaxPages)
	if err != nil {
		return nil, err
	}

	host := baseHost(s.C.BaseURL)
	out := make([]domain.CourseRecord, 0, len(courses))
	// Udemy courses have no issuing institution, so UniversityName stays empty.
	for _, c := range courses {
		out = append(out, domain.CourseRecord{
			Name:        strings.TrimSpace(c.Title),
			Link:        absolutizeURL(host, c.URL),
			RawCategory: joinCategoryTitles(c.Categories),
			Level:       c.Level,
			Rating:      c.AvgRating,
		})
	}
	return out, nil
}

func joinCategoryTitles(cats Categories) string {
	parts := make([]string, 0, len(cats))
	for _, c := range cats {
		t := strings.TrimSpace(c.Title)
		if t == "" {
			t = strings.TrimSpace(c.Name)
		}
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " | ")
}

func baseHost(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "https://www.udemy.com"
	}
	return u.Scheme + "://" + u.Host
}

func absolutizeURL(host, in string) string {
	in = strings.TrimSpace(in)
	switch {
	case in == "":
		return ""
	case strings.HasPrefix(in, "http://"), strings.HasPrefix(in, "https://"):
		return in
	case strings.HasPrefix(in, "/"):
		return host + in
	default:
		return host + "/" + in
	}
}
