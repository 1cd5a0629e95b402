// Package auth - вход на сайт и проверка активной сессии.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobAgent/internal/browser"
	"jobAgent/internal/chatbot"
	"jobAgent/internal/config"
	"jobAgent/internal/logger"

	"go.uber.org/zap"
)

const loginURL = "https://www.naukri.com/nlogin/login"

// Селекторы идут от специфичных к общим: разметка логин-формы
// на сайте периодически меняется.
var (
	emailSelectors = []string{
		"#usernameField",
		"input[placeholder*='Email']",
		"input[placeholder*='email']",
		"input[type='email']",
		"input[name='email']",
		"input[id*='email']",
	}

	passwordSelectors = []string{
		"#passwordField",
		"input[placeholder*='Password']",
		"input[placeholder*='password']",
		"input[type='password']",
		"input[name='password']",
		"input[id*='password']",
	}

	loginButtonSelectors = []string{
		"button[type='submit']",
		"button.btn-primary",
		"button[class*='login']",
	}

	loggedInIndicators = []string{
		"a[title='My Naukri']",
		"div.nI-gNb-drawer__icon",
		"a.nI-gNb-drawer__icon",
		"div[class*='user-name']",
		"div[class*='logout']",
	}

	logoutSelectors = []string{
		"a[href*='logout']",
		"a[title='Logout']",
	}
)

type Authenticator struct {
	browser browser.Browser
	creds   config.Credentials
	log     *logger.Zap
}

func New(b browser.Browser, creds config.Credentials, log *logger.Zap) *Authenticator {
	return &Authenticator{
		browser: b,
		creds:   creds,
		log:     log,
	}
}

// Login открывает страницу входа и авторизуется. Если сессия из
// persistent-профиля еще жива, форма не трогается.
func (a *Authenticator) Login(ctx context.Context) error {
	a.log.Info("Вход на сайт", zap.String("url", loginURL))

	if err := a.browser.Navigate(ctx, loginURL); err != nil {
		return fmt.Errorf("ошибка перехода на страницу входа: %w", err)
	}

	if a.IsLoggedIn() {
		a.log.Info("Сессия уже активна, вход не требуется")
		return nil
	}

	if a.creds.Email == "" || a.creds.Password == "" {
		return fmt.Errorf("не заданы учетные данные в профиле")
	}

	if !a.fillFirstVisible(emailSelectors, a.creds.Email) {
		return fmt.Errorf("поле email не найдено на странице входа")
	}

	if !a.fillFirstVisible(passwordSelectors, a.creds.Password) {
		return fmt.Errorf("поле пароля не найдено на странице входа")
	}

	if !a.clickLoginButton() {
		return fmt.Errorf("кнопка входа не найдена")
	}

	// Редирект после входа занимает несколько секунд
	if err := a.waitLoggedIn(ctx, 15*time.Second); err != nil {
		return err
	}

	a.log.Info("Вход выполнен")
	return nil
}

// IsLoggedIn проверяет индикаторы активной сессии в шапке сайта.
func (a *Authenticator) IsLoggedIn() bool {
	for _, selector := range loggedInIndicators {
		elements, err := a.browser.QueryAll(selector)
		if err != nil {
			continue
		}
		for _, el := range elements {
			if visible, err := el.IsVisible(); err == nil && visible {
				return true
			}
		}
	}
	return false
}

func (a *Authenticator) Logout(ctx context.Context) error {
	for _, selector := range logoutSelectors {
		elements, err := a.browser.QueryAll(selector)
		if err != nil {
			continue
		}
		for _, el := range elements {
			if visible, err := el.IsVisible(); err != nil || !visible {
				continue
			}
			if err := el.Click(); err == nil {
				a.log.Info("Выход из аккаунта выполнен")
				return nil
			}
		}
	}
	return fmt.Errorf("ссылка выхода не найдена")
}

func (a *Authenticator) waitLoggedIn(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if a.IsLoggedIn() {
			return nil
		}
		time.Sleep(time.Second)
	}
	return fmt.Errorf("вход не подтвердился за %v", timeout)
}

func (a *Authenticator) fillFirstVisible(selectors []string, value string) bool {
	el, ok := a.firstVisible(selectors)
	if !ok {
		return false
	}
	return el.Fill(value) == nil
}

func (a *Authenticator) clickLoginButton() bool {
	el, ok := a.firstVisible(loginButtonSelectors)
	if ok && el.Click() == nil {
		return true
	}

	// Fallback по тексту кнопки
	elements, err := a.browser.QueryAll("button")
	if err != nil {
		return false
	}
	for _, btn := range elements {
		text, err := btn.Text()
		if err != nil {
			continue
		}
		lower := strings.ToLower(text)
		if !strings.Contains(lower, "login") && !strings.Contains(lower, "sign in") {
			continue
		}
		if visible, err := btn.IsVisible(); err != nil || !visible {
			continue
		}
		if btn.Click() == nil {
			return true
		}
	}
	return false
}

func (a *Authenticator) firstVisible(selectors []string) (chatbot.Element, bool) {
	for _, selector := range selectors {
		elements, err := a.browser.QueryAll(selector)
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
			return el, true
		}
	}
	return nil, false
}
