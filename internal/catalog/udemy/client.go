// Package udemy reads the course list of a Udemy Business organization.
package udemy

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"course-recommender/internal/httpx"
)

type Client struct {
	BaseURL      string
	OrgID        string
	ClientID     string
	ClientSecret string
	HTTP         *http.Client
	Log          *zap.Logger

	// Limiter spaces page requests; the API answers bursts with 429/504.
	Limiter *rate.Limiter
}

func New(baseURL, orgID, clientID, clientSecret string) *Client {
	return &Client{
		BaseURL:      baseURL,
		OrgID:        orgID,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		HTTP:         &http.Client{Timeout: 2 * time.Minute},
		Log:          zap.NewNop(),
		Limiter:      httpx.Every(200 * time.Millisecond),
	}
}

// ListCourses follows the "next" links until they run out or maxPages
// (<=0 means all) is reached. On failure the pages fetched so far are
// returned with the error.
func (c *Client) ListCourses(ctx context.Context, pageSize, maxPages int) ([]Course, error) {
	if c.OrgID == "" {
		return nil, fmt.Errorf("udemy: missing organization id")
	}

	u, err := url.Parse(fmt.Sprintf("%s/organizations/%s/courses/list/", c.BaseURL, c.OrgID))
	if err != nil {
		return nil, fmt.Errorf("udemy: invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("page_size", strconv.Itoa(pageSize))
	q.Set("fields[course]", "@all")
	u.RawQuery = q.Encode()

	retry := httpx.DefaultRetryConfig()
	retry.Limiter = c.Limiter
	retry.Logger = c.log()

	var all []Course
	next := u.String()
	for page := 1; next != ""; page++ {
		if maxPages > 0 && page > maxPages {
			break
		}

		var resp ListCoursesResponse
		pageURL := next
		err := httpx.DoJSON(ctx, c.HTTP, func(ctx context.Context) (*http.Request, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
			if err != nil {
				return nil, err
			}
			req.Header.Set("Accept", "application/json")
			req.SetBasicAuth(c.ClientID, c.ClientSecret)
			return req, nil
		}, &resp, retry)
		if err != nil {
			return all, fmt.Errorf("udemy: list failed at page=%d: %w", page, err)
		}

		c.log().Debug("udemy page fetched",
			zap.Int("page", page),
			zap.Int("results", len(resp.Results)),
			zap.Int("total", resp.Count),
		)
		all = append(all, resp.Results...)
		next = resp.Next
	}
	return all, nil
}

func (c *Client) log() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}
