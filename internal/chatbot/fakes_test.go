package chatbot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobAgent/internal/logger"

	"go.uber.org/zap"
)

func nopLogger() *logger.Zap {
	return &logger.Zap{Logger: zap.NewNop()}
}

// fakeElement - управляемый элемент страницы для тестов.
type fakeElement struct {
	text    string
	visible bool
	enabled bool
	checked bool
	attrs   map[string]string
	options []Option

	// strictValues: SelectByValue принимает только значения из options,
	// как настоящий <select>
	strictValues bool

	selectTextErr  error
	selectValueErr error
	clickErr       error
	fillErr        error

	filled   []string
	clicks   int
	selected []string
	onClick  func()
}

func newFakeElement(text string) *fakeElement {
	return &fakeElement{text: text, visible: true, enabled: true, attrs: map[string]string{}}
}

func (e *fakeElement) Text() (string, error)      { return e.text, nil }
func (e *fakeElement) IsVisible() (bool, error)   { return e.visible, nil }
func (e *fakeElement) IsEnabled() (bool, error)   { return e.enabled, nil }
func (e *fakeElement) IsChecked() (bool, error)   { return e.checked, nil }
func (e *fakeElement) Options() ([]Option, error) { return e.options, nil }

func (e *fakeElement) Click() error {
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clicks++
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e *fakeElement) Fill(value string) error {
	if e.fillErr != nil {
		return e.fillErr
	}
	e.filled = append(e.filled, value)
	return nil
}

func (e *fakeElement) Attr(name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) SelectByText(text string) error {
	if e.selectTextErr != nil {
		return e.selectTextErr
	}
	e.selected = append(e.selected, "text:"+text)
	return nil
}

func (e *fakeElement) SelectByValue(value string) error {
	if e.selectValueErr != nil {
		return e.selectValueErr
	}
	if e.strictValues && !e.hasOptionValue(value) {
		return fmt.Errorf("нет пункта со значением %q", value)
	}
	e.selected = append(e.selected, "value:"+value)
	return nil
}

func (e *fakeElement) hasOptionValue(value string) bool {
	for _, opt := range e.options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// fakeSurface отдает заранее расставленные элементы по селекторам.
type fakeSurface struct {
	elements    map[string][]Element
	modalFound  bool
	waitErr     error
	queryCalled []string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{elements: map[string][]Element{}, modalFound: true}
}

func (f *fakeSurface) put(selector string, els ...Element) {
	f.elements[selector] = els
}

func (f *fakeSurface) QueryAll(selector string) ([]Element, error) {
	f.queryCalled = append(f.queryCalled, selector)
	return f.elements[selector], nil
}

func (f *fakeSurface) WaitVisible(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	if f.waitErr != nil {
		return false, f.waitErr
	}
	return f.modalFound, nil
}

// scriptedDetector выдает заранее заданную последовательность вопросов.
type scriptedDetector struct {
	questions     []string
	calls         int
	submitVisible bool
	detectErr     error
}

func (d *scriptedDetector) DetectQuestion(ctx context.Context) (Question, bool, error) {
	if d.detectErr != nil {
		return Question{}, false, d.detectErr
	}
	d.calls++
	if len(d.questions) == 0 {
		return Question{}, false, nil
	}
	q := d.questions[0]
	d.questions = d.questions[1:]
	return Question{Text: q, Strategy: "scripted"}, true, nil
}

func (d *scriptedDetector) DetectSubmitControl(ctx context.Context) (Element, bool, error) {
	if d.submitVisible {
		return newFakeElement("Submit"), true, nil
	}
	return nil, false, nil
}

// endlessDetector всегда находит вопрос - для проверки таймаута.
type endlessDetector struct {
	calls int
}

func (d *endlessDetector) DetectQuestion(ctx context.Context) (Question, bool, error) {
	d.calls++
	return Question{Text: fmt.Sprintf("Question %d?", d.calls), Strategy: "scripted"}, true, nil
}

func (d *endlessDetector) DetectSubmitControl(ctx context.Context) (Element, bool, error) {
	return nil, false, nil
}

type staticResolver struct {
	answer string
}

func (r *staticResolver) Resolve(ctx context.Context, question string) Resolution {
	return Resolution{Answer: r.answer, Strategy: StrategyFallback}
}

type scriptedSubmitter struct {
	ok    bool
	calls int
}

func (s *scriptedSubmitter) SubmitAnswer(ctx context.Context, answer string) (Modality, bool) {
	s.calls++
	if s.ok {
		return ModalityText, true
	}
	return ModalityNone, false
}

type memorySink struct {
	records []InteractionRecord
}

func (s *memorySink) Record(rec InteractionRecord) {
	s.records = append(s.records, rec)
}

// fakeStore - словарь в памяти, порядок вставки сохраняется.
type fakeStore struct {
	entries []Entry
}

type Entry struct{ Q, A string }

func (s *fakeStore) LookupFuzzy(question string) (string, bool) {
	for _, e := range s.entries {
		if e.Q == question {
			return e.A, true
		}
	}
	lower := strings.ToLower(question)
	for _, e := range s.entries {
		if strings.ToLower(e.Q) == lower {
			return e.A, true
		}
	}
	for _, e := range s.entries {
		k := strings.ToLower(e.Q)
		if strings.Contains(k, lower) || strings.Contains(lower, k) {
			return e.A, true
		}
	}
	return "", false
}

func (s *fakeStore) Add(question, answer string) error {
	s.entries = append(s.entries, Entry{Q: question, A: answer})
	return nil
}

type fakeGenerator struct {
	answer string
	err    error
	calls  int
}

func (g *fakeGenerator) GenerateAnswer(ctx context.Context, question, profileSummary string) (string, error) {
	g.calls++
	return g.answer, g.err
}
