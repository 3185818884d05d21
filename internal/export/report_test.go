package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-recommender/internal/domain"
)

func sampleReport() Report {
	score := 62.5
	return Report{
		RunID:       "run-1",
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Entries: []Entry{
			{
				Student:  "ana",
				Subjects: []string{"computer science", " ", "data\nscience"},
				Score:    &score,
				Band:     domain.BandIntermediate,
				Courses: []domain.Recommendation{
					{Name: "Go, the language", Link: "https://x.example/go", Subject: domain.SubjectComputerScience, Level: "Intermediate", Rating: 4.5, Score: 0.5},
					{Name: "SQL", Subject: domain.SubjectDataScience, Level: "Intermediate", Rating: 4, Score: 0.25},
				},
			},
			{Student: "bo", Subjects: []string{"health"}, Band: domain.BandBeginner},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport()))
	assert.Contains(t, buf.String(), "\r\n")

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"run-1", "ana", "computer science | data science", "62.5", "intermediate",
		"1", "Go, the language", "https://x.example/go", "computer science", "Intermediate", "4.5", "0.500000",
	}, rows[1])
	assert.Equal(t, "2", rows[2][5])
	assert.Equal(t, []string{"run-1", "bo", "health", "", "beginner", "", "", "", "", "", "", ""}, rows[3])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var got struct {
		RunID   string `json:"run_id"`
		Entries []struct {
			Student string            `json:"student"`
			Score   *float64          `json:"score"`
			Band    string            `json:"difficulty"`
			Courses []json.RawMessage `json:"recommended_courses"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "run-1", got.RunID)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "intermediate", got.Entries[0].Band)
	assert.Len(t, got.Entries[0].Courses, 2)
	assert.Nil(t, got.Entries[1].Score)
	assert.NotNil(t, got.Entries[1].Courses)
	assert.Contains(t, buf.String(), `"recommended_courses": []`)
}

func TestWriteCompressed(t *testing.T) {
	var plain, packed bytes.Buffer
	require.NoError(t, Write(&plain, FormatCSV, false, sampleReport()))
	require.NoError(t, Write(&packed, FormatCSV, true, sampleReport()))

	got, err := io.ReadAll(brotli.NewReader(&packed))
	require.NoError(t, err)
	assert.Equal(t, plain.String(), string(got))
}

func TestWriteUnknownFormat(t *testing.T) {
	assert.Error(t, Write(io.Discard, Format("xml"), false, sampleReport()))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "recommendations-abc.csv", FileName("abc", FormatCSV, false))
	assert.Equal(t, "recommendations-abc.json.br", FileName("abc", FormatJSON, true))
}

func TestCleanStrings(t *testing.T) {
	got := cleanStrings([]string{" a ", "", "b\r\nc"})
	assert.Equal(t, []string{"a", "b  c"}, got)
	assert.True(t, strings.HasPrefix(floatToString(2.0), "2"))
}
