package qastore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qa.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 0, s.Len())
	return s
}

func TestAddThenLookup(t *testing.T) {
	s := emptyStore(t)

	require.NoError(t, s.Add("What is your notice period?", "30"))

	answer, ok := s.LookupFuzzy("What is your notice period?")
	assert.True(t, ok)
	assert.Equal(t, "30", answer)
}

func TestAddRejectsEmptyQuestion(t *testing.T) {
	s := emptyStore(t)
	assert.Error(t, s.Add("", "Yes"))
}

func TestLookupFuzzySubstring(t *testing.T) {
	s := emptyStore(t)
	require.NoError(t, s.Add("What is your notice period?", "30"))

	answer, ok := s.LookupFuzzy("notice period")
	assert.True(t, ok)
	assert.Equal(t, "30", answer)
}

func TestLookupFuzzyCaseInsensitive(t *testing.T) {
	s := emptyStore(t)
	require.NoError(t, s.Add("What is your notice period?", "30"))

	answer, ok := s.LookupFuzzy("WHAT IS YOUR NOTICE PERIOD?")
	assert.True(t, ok)
	assert.Equal(t, "30", answer)
}

func TestExactMatchBeatsSubstring(t *testing.T) {
	s := emptyStore(t)
	require.NoError(t, s.Add("notice", "substring-hit"))
	require.NoError(t, s.Add("What is your notice period?", "exact-hit"))

	// Оба ключа совпадают с запросом, но точное совпадение важнее порядка вставки
	answer, ok := s.LookupFuzzy("What is your notice period?")
	assert.True(t, ok)
	assert.Equal(t, "exact-hit", answer)
}

func TestFirstHitInInsertionOrder(t *testing.T) {
	s := emptyStore(t)
	require.NoError(t, s.Add("Current Location", "Bengaluru"))
	require.NoError(t, s.Add("Preferred Location", "Pune"))

	// "location" - подстрока обоих ключей, выигрывает более ранняя запись
	answer, ok := s.LookupFuzzy("location")
	assert.True(t, ok)
	assert.Equal(t, "Bengaluru", answer)
}

func TestLookupMiss(t *testing.T) {
	s := emptyStore(t)
	require.NoError(t, s.Add("What is your notice period?", "30"))

	_, ok := s.LookupFuzzy("favourite colour")
	assert.False(t, ok)
}

func TestUpsertKeepsPosition(t *testing.T) {
	s := emptyStore(t)
	require.NoError(t, s.Add("Current Location", "Bengaluru"))
	require.NoError(t, s.Add("Preferred Location", "Pune"))
	require.NoError(t, s.Add("Current Location", "Mumbai"))

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Current Location", entries[0].Question)
	assert.Equal(t, "Mumbai", entries[0].Answer)
}

// Словарь трогают одновременно сессия чат-бота и HTTP API,
// поэтому запись и чтение должны выдерживать гонку (go test -race).
func TestConcurrentAddAndLookup(t *testing.T) {
	s := emptyStore(t)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				q := fmt.Sprintf("Вопрос %d-%d?", w, i)
				assert.NoError(t, s.Add(q, "Yes"))
				s.LookupFuzzy(q)
				s.Entries()
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 200, s.Len())
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qa.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Add("Вопрос про опыт работы?", "5 лет"))
	require.NoError(t, s.Add("How many years of 経験 do you have?", "五"))
	require.NoError(t, s.Add("Plain question", "plain answer"))

	reloaded, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, s.Entries(), reloaded.Entries())
}

func TestRoundTripEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qa.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 0, s.Len())

	reloaded, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Len())
}

func TestRoundTripLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qa.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		q := fmt.Sprintf("Вопрос №%d: сколько лет опыта?", i)
		require.NoError(t, s.Add(q, fmt.Sprintf("%d", i)))
	}

	reloaded, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, s.Entries(), reloaded.Entries())
}

func TestOpenMissingFileSeedsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qa.json")

	s, err := Open(path)
	require.NoError(t, err)
	assert.Greater(t, s.Len(), 0)

	// Файл должен появиться на диске
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)

	answer, ok := s.LookupFuzzy("What is your notice period?")
	assert.True(t, ok)
	assert.Equal(t, "30 days", answer)
}
