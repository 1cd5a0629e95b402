package browser

import (
	"context"
	"sync"
	"time"

	"jobAgent/internal/chatbot"

	"github.com/playwright-community/playwright-go"
)

// Browser - поверхность браузера, которую видят модули бота.
// PlaywrightBrowser реализует и этот интерфейс, и chatbot.UISurface,
// так что контроллер чат-бота работает с тем же экземпляром.
type Browser interface {
	Launch(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	CurrentURL() (string, error)
	Click(ctx context.Context, selector string) error
	Type(ctx context.Context, selector, text string) error
	QueryAll(selector string) ([]chatbot.Element, error)
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) (bool, error)
	ClosePopups(ctx context.Context) error
	Close() error
}

type PlaywrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	cfg     Config
	mu      sync.RWMutex
}

type Config struct {
	Headless        bool
	UserDataDir     string
	BrowsersPath    string
	Display         string
	Timeout         time.Duration
	NavigateTimeout time.Duration
}
