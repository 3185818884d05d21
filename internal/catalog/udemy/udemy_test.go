package udemy

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-recommender/internal/domain"
)

func TestCategoriesUnmarshal(t *testing.T) {
	testCases := []struct {
		input    string
		expected Categories
	}{
		{`null`, nil},
		{`""`, nil},
		{`"Development"`, Categories{{Title: "Development", Name: "Development"}}},
		{`{"title":"IT & Software","name":"it"}`, Categories{{Title: "IT & Software", Name: "it"}}},
		{`["Dev","","IT"]`, Categories{{Title: "Dev", Name: "Dev"}, {Title: "IT", Name: "IT"}}},
		{`[{"title":"Business"}]`, Categories{{Title: "Business"}}},
	}

	for _, tc := range testCases {
		var got struct {
			C Categories `json:"c"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"c":`+tc.input+`}`), &got), tc.input)
		assert.Equal(t, tc.expected, got.C, tc.input)
	}
}

func TestAbsolutizeURL(t *testing.T) {
	host := "https://acme.udemy.com"
	assert.Equal(t, "", absolutizeURL(host, " "))
	assert.Equal(t, "https://x.example/c", absolutizeURL(host, "https://x.example/c"))
	assert.Equal(t, host+"/course/go/", absolutizeURL(host, "/course/go/"))
	assert.Equal(t, host+"/course/go/", absolutizeURL(host, "course/go/"))
}

func TestBaseHost(t *testing.T) {
	assert.Equal(t, "https://acme.udemy.com", baseHost("https://acme.udemy.com/api-2.0"))
	assert.Equal(t, "https://www.udemy.com", baseHost("not a url"))
}

func TestSourceFollowsPagesAndMaps(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "id", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "/api-2.0/organizations/42/courses/list/", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"count":2,"next":"","results":[
				{"id":2,"title":"Anatomy","url":"/course/anatomy/","level":"Expert Level","categories":"Health & Fitness","avg_rating":4.1}
			]}`)
			return
		}
		fmt.Fprintf(w, `{"count":2,"next":"%s/api-2.0/organizations/42/courses/list/?page=2","results":[
			{"id":1,"title":" Go Basics ","url":"/course/go/","level":"Beginner Level","categories":[{"title":"Development"},{"title":"Programming Languages"}],"avg_rating":4.6,"primary_instructor_name":"Ana"}
		]}`, srv.URL)
	}))
	defer srv.Close()

	c := New(srv.URL+"/api-2.0", "42", "id", "secret")
	c.HTTP = srv.Client()
	c.Limiter = nil

	got, err := Source{C: c, PageSize: 1}.LoadCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.CourseRecord{
		Name:        "Go Basics",
		Link:        srv.URL + "/course/go/",
		RawCategory: "Development | Programming Languages",
		Level:       "Beginner Level",
		Rating:      4.6,
	}, got[0])
	assert.Equal(t, "Health & Fitness", got[1].RawCategory)
}

func TestSourceMaxPages(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"count":9,"next":"http://unused.invalid/next","results":[{"id":1,"title":"A"}]}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "42", "id", "secret")
	c.HTTP = srv.Client()
	c.Limiter = nil

	got, err := Source{C: c, MaxPages: 1}.LoadCourses(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, calls)
}

func TestListCoursesRequiresOrg(t *testing.T) {
	_, err := New("https://www.udemy.com/api-2.0", "", "id", "secret").ListCourses(context.Background(), 10, 1)
	assert.Error(t, err)
}
