package chatbot

import (
	"context"
	"strings"

	"jobAgent/internal/logger"

	"go.uber.org/zap"
)

// LocatorStrategy - именованный селектор. Список стратегий упорядочен
// от более специфичных (подписи полей) к более общим (классы с "question"),
// чтобы случайный текст на странице не принимался за вопрос.
type LocatorStrategy struct {
	Name     string
	Selector string
}

func defaultQuestionStrategies() []LocatorStrategy {
	return []LocatorStrategy{
		{"label-for", "label[for]"},
		{"label", "label"},
		{"question-div", "div[class*='question']"},
		{"label-div", "div[class*='label']"},
		{"title-div", "div[class*='title']"},
		{"field-label", "div[class*='field-label']"},
		{"question-span", "span[class*='question']"},
		{"label-span", "span[class*='label']"},
		{"question-p", "p[class*='question']"},
		{"data-question", "*[data-question]"},
		{"aria-label", "*[aria-label]"},
	}
}

// Ключевые слова, по которым короткий текст всё же признается вопросом.
var questionKeywords = []string{
	"experience", "years", "ctc", "salary", "notice",
	"location", "relocate", "comfortable", "current",
	"expected", "period", "shift", "joining", "available",
}

var submitControlSelectors = []string{
	"button[type='submit']",
	"input[type='submit']",
	"button",
}

var submitControlTexts = []string{"submit", "apply", "save"}

// QuestionDetector сканирует страницу по ранжированному списку локаторов.
type QuestionDetector struct {
	ui         UISurface
	strategies []LocatorStrategy
	log        *logger.Zap
}

func NewQuestionDetector(ui UISurface, log *logger.Zap) *QuestionDetector {
	return &QuestionDetector{
		ui:         ui,
		strategies: defaultQuestionStrategies(),
		log:        log,
	}
}

// DetectQuestion возвращает первый валидный вопрос в порядке стратегий.
// Отсутствие вопроса - нормальный результат, не ошибка: либо вопросов
// больше нет, либо форма дорисовывается.
func (d *QuestionDetector) DetectQuestion(ctx context.Context) (Question, bool, error) {
	for _, strategy := range d.strategies {
		select {
		case <-ctx.Done():
			return Question{}, false, ctx.Err()
		default:
		}

		elements, err := d.ui.QueryAll(strategy.Selector)
		if err != nil {
			// Сломавшийся локатор не прерывает перебор
			continue
		}

		for _, el := range elements {
			visible, err := el.IsVisible()
			if err != nil || !visible {
				continue
			}

			text, err := el.Text()
			if err != nil {
				continue
			}
			text = strings.TrimSpace(text)

			if !isValidQuestion(text) {
				continue
			}

			d.log.Debug("Вопрос найден",
				zap.String("strategy", strategy.Name),
				zap.String("question", truncate(text, 80)),
			)
			return Question{Text: text, Strategy: strategy.Name, El: el}, true, nil
		}
	}

	return Question{}, false, nil
}

// isValidQuestion отсекает шум: кнопки, крошки текста, служебные подписи.
func isValidQuestion(text string) bool {
	if len([]rune(text)) < 3 {
		return false
	}

	if strings.Contains(text, "?") {
		return true
	}

	// Длинный текст почти наверняка настоящий вопрос, а не подпись кнопки
	if len([]rune(text)) > 10 {
		return true
	}

	lower := strings.ToLower(text)
	for _, keyword := range questionKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}

// DetectSubmitControl ищет видимую и активную терминальную кнопку.
// Её появление при отсутствии вопросов означает, что анкета заполнена.
func (d *QuestionDetector) DetectSubmitControl(ctx context.Context) (Element, bool, error) {
	for _, selector := range submitControlSelectors {
		elements, err := d.ui.QueryAll(selector)
		if err != nil {
			continue
		}

		for _, el := range elements {
			visible, err := el.IsVisible()
			if err != nil || !visible {
				continue
			}
			enabled, err := el.IsEnabled()
			if err != nil || !enabled {
				continue
			}

			if selector != "button" {
				return el, true, nil
			}

			// Для обычных кнопок дополнительно проверяем текст
			text, err := el.Text()
			if err != nil {
				continue
			}
			lower := strings.ToLower(strings.TrimSpace(text))
			for _, want := range submitControlTexts {
				if strings.Contains(lower, want) {
					return el, true, nil
				}
			}
		}
	}

	return nil, false, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
