package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobAgent/internal/chatbot"

	"github.com/playwright-community/playwright-go"
)

// selectTimeout - короткий таймаут для SelectOption: цепочка fallback'ов
// сабмиттера не должна виснуть на дефолтных 30 секундах Playwright.
const selectTimeout = 2 * time.Second

// element адаптирует playwright.ElementHandle к chatbot.Element.
type element struct {
	handle playwright.ElementHandle
}

func (e *element) Text() (string, error) {
	text, err := e.handle.TextContent()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (e *element) Click() error {
	return e.handle.Click()
}

func (e *element) Fill(value string) error {
	return e.handle.Fill(value)
}

func (e *element) IsVisible() (bool, error) {
	return e.handle.IsVisible()
}

func (e *element) IsEnabled() (bool, error) {
	return e.handle.IsEnabled()
}

func (e *element) IsChecked() (bool, error) {
	return e.handle.IsChecked()
}

func (e *element) Attr(name string) (string, error) {
	value, err := e.handle.GetAttribute(name)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (e *element) SelectByText(text string) error {
	_, err := e.handle.SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{text},
	}, playwright.ElementHandleSelectOptionOptions{
		Timeout: playwright.Float(float64(selectTimeout.Milliseconds())),
	})
	return err
}

func (e *element) SelectByValue(value string) error {
	_, err := e.handle.SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	}, playwright.ElementHandleSelectOptionOptions{
		Timeout: playwright.Float(float64(selectTimeout.Milliseconds())),
	})
	return err
}

func (e *element) Options() ([]chatbot.Option, error) {
	handles, err := e.handle.QuerySelectorAll("option")
	if err != nil {
		return nil, err
	}

	options := make([]chatbot.Option, 0, len(handles))
	for _, handle := range handles {
		text, err := handle.TextContent()
		if err != nil {
			continue
		}
		value, err := handle.GetAttribute("value")
		if err != nil {
			value = ""
		}
		options = append(options, chatbot.Option{
			Text:  strings.TrimSpace(text),
			Value: value,
		})
	}
	return options, nil
}

// QueryAll реализует chatbot.UISurface: все элементы по селектору,
// пустой результат не ошибка.
func (b *PlaywrightBrowser) QueryAll(selector string) ([]chatbot.Element, error) {
	page := b.getPage()
	if page == nil {
		return nil, fmt.Errorf("браузер не запущен")
	}

	handles, err := page.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}

	elements := make([]chatbot.Element, 0, len(handles))
	for _, handle := range handles {
		elements = append(elements, &element{handle: handle})
	}
	return elements, nil
}

// WaitVisible ждет видимый элемент. Таймаут ожидания - штатный исход,
// не ошибка: возвращается (false, nil).
func (b *PlaywrightBrowser) WaitVisible(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	page := b.getPage()
	if page == nil {
		return false, fmt.Errorf("браузер не запущен")
	}

	if err := ctx.Err(); err != nil {
		return false, err
	}

	// Истекший таймаут Playwright отдает как ошибку, для нас это
	// штатный исход "элемент не появился"
	_, err := page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return false, nil
	}
	return true, nil
}
