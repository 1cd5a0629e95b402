// Package qastore хранит словарь вопрос→ответ для чат-бота.
// Словарь лежит в JSON-файле, который пользователь может править руками,
// и перезаписывается целиком при каждом добавлении.
package qastore

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Store - упорядоченный словарь вопрос→ответ. Порядок вставки сохраняется,
// потому что при нечетком поиске выигрывает первое совпадение.
// Мьютекс нужен: помимо сессии чат-бота словарь читает и пишет HTTP API.
type Store struct {
	mu      sync.Mutex
	path    string
	entries []Entry
	index   map[string]int
}

// Open загружает словарь из файла. Если файла нет, создается словарь
// с ответами по умолчанию и сразу сохраняется.
func Open(path string) (*Store, error) {
	s := &Store{path: path, index: make(map[string]int)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.seedDefaults()
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("создание словаря по умолчанию: %w", err)
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("чтение словаря: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("разбор словаря: %w", err)
	}

	for _, e := range entries {
		s.append(e.Question, e.Answer)
	}

	return s, nil
}

func (s *Store) append(question, answer string) {
	if i, ok := s.index[question]; ok {
		s.entries[i].Answer = answer
		return
	}
	s.index[question] = len(s.entries)
	s.entries = append(s.entries, Entry{Question: question, Answer: answer})
}

// LookupFuzzy ищет ответ: сначала точное совпадение, потом без учета регистра,
// потом вхождение подстроки в любую сторону. Возвращается первое совпадение
// в порядке вставки.
func (s *Store) LookupFuzzy(question string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[question]; ok {
		return s.entries[i].Answer, true
	}

	lower := strings.ToLower(question)

	for _, e := range s.entries {
		if strings.ToLower(e.Question) == lower {
			return e.Answer, true
		}
	}

	for _, e := range s.entries {
		key := strings.ToLower(e.Question)
		if strings.Contains(key, lower) || strings.Contains(lower, key) {
			return e.Answer, true
		}
	}

	return "", false
}

// Add добавляет или обновляет пару и немедленно сохраняет весь словарь.
// Записи редки (одна на новый вопрос), батчинг не нужен.
func (s *Store) Add(question, answer string) error {
	if question == "" {
		return fmt.Errorf("пустой вопрос")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.append(question, answer)
	return s.save()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Entries возвращает копию записей в порядке вставки.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) save() error {
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o644)
}

func (s *Store) seedDefaults() {
	defaults := []Entry{
		{"What is your notice period?", "30 days"},
		{"What is your current CTC in Lacs per annum?", "15"},
		{"What is your expected CTC in Lacs per annum?", "20"},
		{"How many years of experience do you have in Python?", "5"},
		{"Are you comfortable working on 24x7 shifts?", "Yes"},
		{"Are you on a career break?", "No"},
		{"Country Code", "+91"},
		{"Current Location", "Bengaluru"},
		{"Preferred Location", "Bengaluru"},
		{"Total Relevant Experience", "5 years"},
		{"Are you comfortable working in rotational shifts?", "Yes"},
		{"Can you join immediately?", "Yes"},
		{"Are you willing to relocate?", "Yes"},
	}

	for _, e := range defaults {
		s.append(e.Question, e.Answer)
	}
}
