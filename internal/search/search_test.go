package search

import (
	"testing"

	"jobAgent/internal/chatbot"
	"jobAgent/internal/config"
	"jobAgent/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func nopLogger() *logger.Zap {
	return &logger.Zap{Logger: zap.NewNop()}
}

type fakeApplied struct {
	ids map[string]bool
}

func (f *fakeApplied) IsApplied(jobID string) (bool, error) {
	return f.ids[jobID], nil
}

type stubElement struct {
	text string
	href string
}

func (e *stubElement) Text() (string, error)              { return e.text, nil }
func (e *stubElement) Click() error                       { return nil }
func (e *stubElement) Fill(string) error                  { return nil }
func (e *stubElement) IsVisible() (bool, error)           { return true, nil }
func (e *stubElement) IsEnabled() (bool, error)           { return true, nil }
func (e *stubElement) IsChecked() (bool, error)           { return false, nil }
func (e *stubElement) SelectByText(string) error          { return nil }
func (e *stubElement) SelectByValue(string) error         { return nil }
func (e *stubElement) Options() ([]chatbot.Option, error) { return nil, nil }
func (e *stubElement) Attr(name string) (string, error) {
	if name == "href" {
		return e.href, nil
	}
	return "", nil
}

func TestSearchURL(t *testing.T) {
	assert.Equal(t,
		"https://www.naukri.com/python-developer-jobs-in-bengaluru",
		SearchURL("Python Developer", "bengaluru"))

	assert.Equal(t,
		"https://www.naukri.com/data-engineer-jobs-in-new-delhi",
		SearchURL(" Data Engineer ", "New Delhi"))
}

func TestExtractJobID(t *testing.T) {
	cases := []struct {
		url string
		id  string
	}{
		{"https://www.naukri.com/job?jobId=12345", "12345"},
		{"https://www.naukri.com/apply-jobId-98765", "98765"},
		{"https://www.naukri.com/job-listings-go-developer-acme-0501", "go-developer-acme-0501"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.id, ExtractJobID(tc.url), tc.url)
	}
}

func TestExtractJobIDHashFallbackIsStable(t *testing.T) {
	url := "https://www.naukri.com/some-opaque-path"

	first := ExtractJobID(url)
	second := ExtractJobID(url)

	require.Len(t, first, 16)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, ExtractJobID(url+"x"))
}

func TestDedupeAndFilter(t *testing.T) {
	applied := &fakeApplied{ids: map[string]bool{"222": true}}
	s := New(nil, config.Search{}, applied, nopLogger())

	jobs := s.dedupeAndFilter([]string{
		"https://www.naukri.com/a?jobId=111",
		"https://www.naukri.com/b?jobId=111", // дубль по ID
		"https://www.naukri.com/c?jobId=222", // уже был отклик
		"https://www.naukri.com/d?jobId=333",
	})

	require.Len(t, jobs, 2)
	assert.Equal(t, "111", jobs[0].ID)
	assert.Equal(t, "333", jobs[1].ID)
	// Первый увиденный URL выигрывает у дубля
	assert.Equal(t, "https://www.naukri.com/a?jobId=111", jobs[0].URL)
}

func TestMatchesCriteriaAvoidCompanies(t *testing.T) {
	s := New(nil, config.Search{AvoidCompanies: []string{"Infosys"}}, nil, nopLogger())

	blocked := &stubElement{text: "Go Developer at INFOSYS Ltd, Bengaluru"}
	allowed := &stubElement{text: "Go Developer at Acme, Bengaluru"}

	assert.False(t, s.matchesCriteria(blocked))
	assert.True(t, s.matchesCriteria(allowed))
}
