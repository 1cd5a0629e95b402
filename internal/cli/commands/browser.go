package commands

import (
	"context"
	"fmt"
	"strings"

	"jobAgent/internal/browser"
	"jobAgent/internal/cli/ui"
)

// BrowserHandler обрабатывает прямые команды браузера
type BrowserHandler struct {
	browser browser.Browser
	session *SessionHandler
}

func NewBrowserHandler(br browser.Browser, session *SessionHandler) *BrowserHandler {
	return &BrowserHandler{
		browser: br,
		session: session,
	}
}

// Open открывает URL в браузере
func (h *BrowserHandler) Open(ctx context.Context, url string) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	if !h.session.ensureBrowser(ctx) {
		return
	}

	if err := h.browser.Navigate(ctx, url); err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Ошибка перехода:"+ui.ColorReset+" %v\n", err)
		return
	}
	fmt.Println(ui.ColorGreen + ui.IconCheckmark + " Страница открыта" + ui.ColorReset)
}
