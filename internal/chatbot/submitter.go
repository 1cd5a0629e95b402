package chatbot

import (
	"context"
	"fmt"
	"strings"

	"jobAgent/internal/logger"

	"go.uber.org/zap"
)

var textInputSelectors = []string{
	"input[type='text']",
	"input[type='number']",
	"input:not([type='hidden']):not([type='submit']):not([type='radio']):not([type='checkbox'])",
	"textarea",
}

// Порядок важен: "next" до "continue" до "submit".
var nextButtonTexts = []string{"next", "continue", "submit"}

// InputSubmitter перебирает модальности ввода: текст → список → радио → чекбокс.
// Каждая модальность пробуется один раз за вызов; успехом считается только
// связка "значение принято + форма продвинулась".
type InputSubmitter struct {
	ui  UISurface
	log *logger.Zap
}

func NewInputSubmitter(ui UISurface, log *logger.Zap) *InputSubmitter {
	return &InputSubmitter{ui: ui, log: log}
}

func (s *InputSubmitter) SubmitAnswer(ctx context.Context, answer string) (Modality, bool) {
	type attempt struct {
		modality Modality
		fn       func(string) bool
	}

	attempts := []attempt{
		{ModalityText, s.submitText},
		{ModalitySelect, s.submitSelect},
		{ModalityRadio, s.submitRadio},
		{ModalityCheckbox, s.submitCheckbox},
	}

	for _, a := range attempts {
		select {
		case <-ctx.Done():
			return ModalityNone, false
		default:
		}

		if a.fn(answer) {
			s.log.Debug("Ответ отправлен", zap.String("modality", string(a.modality)))
			return a.modality, true
		}
	}

	return ModalityNone, false
}

func (s *InputSubmitter) submitText(answer string) bool {
	for _, selector := range textInputSelectors {
		inputs, err := s.ui.QueryAll(selector)
		if err != nil {
			continue
		}

		for _, input := range inputs {
			if !visibleAndEnabled(input) {
				continue
			}

			if err := input.Fill(answer); err != nil {
				continue
			}

			if s.activateNextControl() {
				return true
			}
		}
	}

	return false
}

func (s *InputSubmitter) submitSelect(answer string) bool {
	selects, err := s.ui.QueryAll("select")
	if err != nil {
		return false
	}

	for _, sel := range selects {
		if !visibleAndEnabled(sel) {
			continue
		}

		if !s.chooseOption(sel, answer) {
			continue
		}

		if s.activateNextControl() {
			return true
		}
	}

	return false
}

// chooseOption: совпадение по видимому тексту → по value → первый непустой пункт.
func (s *InputSubmitter) chooseOption(sel Element, answer string) bool {
	if err := sel.SelectByText(answer); err == nil {
		return true
	}
	if err := sel.SelectByValue(answer); err == nil {
		return true
	}

	options, err := sel.Options()
	if err != nil {
		return false
	}
	for _, opt := range options {
		if strings.TrimSpace(opt.Text) == "" {
			continue
		}
		if err := sel.SelectByValue(opt.Value); err == nil {
			return true
		}
	}

	return false
}

func (s *InputSubmitter) submitRadio(answer string) bool {
	radios, err := s.ui.QueryAll("input[type='radio']")
	if err != nil || len(radios) == 0 {
		return false
	}

	lowerAnswer := strings.ToLower(strings.TrimSpace(answer))

	for _, radio := range radios {
		id, err := radio.Attr("id")
		if err != nil || id == "" {
			continue
		}

		labels, err := s.ui.QueryAll(fmt.Sprintf("label[for='%s']", id))
		if err != nil || len(labels) == 0 {
			continue
		}

		labelText, err := labels[0].Text()
		if err != nil {
			continue
		}
		lowerLabel := strings.ToLower(strings.TrimSpace(labelText))
		if lowerLabel == "" {
			continue
		}

		if strings.Contains(lowerLabel, lowerAnswer) || strings.Contains(lowerAnswer, lowerLabel) {
			if !s.clickRadio(radio, labels[0]) {
				continue
			}
			if s.activateNextControl() {
				return true
			}
			return false
		}
	}

	// Совпадений нет - выбираем первую радиокнопку
	if visible, err := radios[0].IsVisible(); err == nil && visible {
		if err := radios[0].Click(); err != nil {
			return false
		}
		return s.activateNextControl()
	}

	return false
}

// clickRadio кликает по радиокнопке, а если она скрыта стилями - по её подписи.
func (s *InputSubmitter) clickRadio(radio, label Element) bool {
	if visible, err := radio.IsVisible(); err == nil && visible {
		return radio.Click() == nil
	}
	return label.Click() == nil
}

func (s *InputSubmitter) submitCheckbox(answer string) bool {
	if !isAffirmative(answer) {
		return false
	}

	checkboxes, err := s.ui.QueryAll("input[type='checkbox']")
	if err != nil {
		return false
	}

	for _, checkbox := range checkboxes {
		visible, err := checkbox.IsVisible()
		if err != nil || !visible {
			continue
		}
		checked, err := checkbox.IsChecked()
		if err != nil || checked {
			continue
		}

		if err := checkbox.Click(); err != nil {
			continue
		}

		if s.activateNextControl() {
			return true
		}
	}

	return false
}

// activateNextControl ищет кнопку продвижения формы по упорядоченным
// текстовым шаблонам. false означает, что форма не продвинулась,
// и модальность не считается успешной, даже если значение введено.
func (s *InputSubmitter) activateNextControl() bool {
	buttons, err := s.ui.QueryAll("button, input[type='submit']")
	if err != nil {
		return false
	}

	for _, want := range nextButtonTexts {
		for _, btn := range buttons {
			if !visibleAndEnabled(btn) {
				continue
			}

			text, err := btn.Text()
			if err != nil {
				continue
			}

			if strings.Contains(strings.ToLower(text), want) {
				return btn.Click() == nil
			}
		}
	}

	return false
}

func visibleAndEnabled(el Element) bool {
	visible, err := el.IsVisible()
	if err != nil || !visible {
		return false
	}
	enabled, err := el.IsEnabled()
	if err != nil || !enabled {
		return false
	}
	return true
}

func isAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "true", "1":
		return true
	}
	return false
}
