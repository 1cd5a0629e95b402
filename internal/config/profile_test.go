package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfileCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")

	profile, err := LoadProfile(path)
	require.NoError(t, err)

	// Файл-заготовка создан для ручного заполнения
	_, err = os.Stat(path)
	require.NoError(t, err)

	assert.Equal(t, "Yes", profile.Answers.DefaultAnswer)
	assert.NotEmpty(t, profile.Search.Keywords)
}

func TestLoadProfileAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	raw := `{
		"credentials": {"email": "user@example.com", "password": "x"},
		"chatbot_answers": {"experience": "7"},
		"job_search": {"keywords": ["Go Developer"], "location": "pune"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	profile, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, "Yes", profile.Answers.DefaultAnswer)
	// Пустая предпочитаемая локация наследуется из настроек поиска
	assert.Equal(t, "pune", profile.Answers.PreferredLocation)
	assert.Equal(t, 3, profile.Search.PagesPerKeyword)
	assert.Equal(t, 20, profile.Search.MaxApplications)
}

func TestLoadProfileRejectsBrokenJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadProfile(path)
	assert.Error(t, err)
}

func TestProfileSummary(t *testing.T) {
	profile := &Profile{
		Answers: Answers{
			Experience:        "5",
			CurrentCTC:        "15",
			ExpectedCTC:       "20",
			NoticePeriod:      "30",
			PreferredLocation: "Bengaluru",
		},
	}

	summary := profile.Summary()
	assert.Contains(t, summary, "Experience: 5")
	assert.Contains(t, summary, "Notice period: 30")
	assert.Contains(t, summary, "Bengaluru")
}
