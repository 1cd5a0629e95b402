package commands

import (
	"context"
	"fmt"

	"jobAgent/internal/apply"
	"jobAgent/internal/auth"
	"jobAgent/internal/browser"
	"jobAgent/internal/cli/ui"
	"jobAgent/internal/search"

	"go.uber.org/zap"
)

// SessionHandler обрабатывает команды полного цикла: вход, поиск, отклики.
type SessionHandler struct {
	browser  browser.Browser
	auth     *auth.Authenticator
	searcher *search.Searcher
	applier  *apply.Applier
	log      *zap.Logger

	launched bool
}

func NewSessionHandler(br browser.Browser, authenticator *auth.Authenticator, searcher *search.Searcher, applier *apply.Applier, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		browser:  br,
		auth:     authenticator,
		searcher: searcher,
		applier:  applier,
		log:      log,
	}
}

// ensureBrowser запускает браузер один раз на все команды сессии.
func (h *SessionHandler) ensureBrowser(ctx context.Context) bool {
	if h.launched {
		return true
	}

	fmt.Println(ui.ColorCyan + ui.IconGlobe + " Запуск браузера..." + ui.ColorReset)
	if err := h.browser.Launch(ctx); err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Ошибка запуска браузера:"+ui.ColorReset+" %v\n", err)
		return false
	}
	h.launched = true
	return true
}

// Login выполняет вход на сайт.
func (h *SessionHandler) Login(ctx context.Context) {
	if !h.ensureBrowser(ctx) {
		return
	}

	if err := h.auth.Login(ctx); err != nil {
		h.log.Error("Ошибка входа", zap.Error(err))
		fmt.Printf(ui.ColorRed+ui.IconCross+" Вход не выполнен:"+ui.ColorReset+" %v\n", err)
		return
	}
	fmt.Println(ui.ColorGreen + ui.IconCheckmark + " Вход выполнен" + ui.ColorReset)
}

// Search собирает вакансии без отправки откликов.
func (h *SessionHandler) Search(ctx context.Context) {
	if !h.ensureBrowser(ctx) {
		return
	}

	fmt.Println(ui.ColorCyan + ui.IconSearch + " Поиск вакансий..." + ui.ColorReset)
	jobs, err := h.searcher.CollectJobs(ctx)
	if err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Ошибка поиска:"+ui.ColorReset+" %v\n", err)
		return
	}

	fmt.Printf(ui.ColorGreen+ui.IconCheckmark+" Найдено вакансий: %d"+ui.ColorReset+"\n", len(jobs))
	for _, job := range jobs {
		fmt.Printf("  "+ui.ColorGray+"%s"+ui.ColorReset+" %s\n", job.ID, job.URL)
	}
	fmt.Println()
}

// Run выполняет полный цикл: вход, поиск, отклики, сводка.
func (h *SessionHandler) Run(ctx context.Context) {
	if !h.ensureBrowser(ctx) {
		return
	}

	if err := h.auth.Login(ctx); err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Вход не выполнен:"+ui.ColorReset+" %v\n", err)
		return
	}

	fmt.Println(ui.ColorCyan + ui.IconSearch + " Поиск вакансий..." + ui.ColorReset)
	jobs, err := h.searcher.CollectJobs(ctx)
	if err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Ошибка поиска:"+ui.ColorReset+" %v\n", err)
		return
	}
	if len(jobs) == 0 {
		fmt.Println(ui.ColorYellow + ui.IconClock + " Новых вакансий нет" + ui.ColorReset)
		return
	}

	fmt.Printf(ui.ColorCyan+ui.IconChat+" Отклики на %d вакансий..."+ui.ColorReset+"\n", len(jobs))
	stats, err := h.applier.ProcessAll(ctx, jobs)
	if err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Сессия прервана:"+ui.ColorReset+" %v\n", err)
	}

	fmt.Println()
	fmt.Println(ui.ColorBold + "=== Итоги сессии ===" + ui.ColorReset)
	fmt.Printf(ui.ColorGreen+"  %s Отправлено: %d"+ui.ColorReset+"\n", ui.IconCheckmark, stats.Applied)
	fmt.Printf(ui.ColorYellow+"  %s Пропущено:  %d"+ui.ColorReset+"\n", ui.IconClock, stats.Skipped)
	fmt.Printf(ui.ColorRed+"  %s Ошибок:     %d"+ui.ColorReset+"\n", ui.IconCross, stats.Failed)
	fmt.Println()
}

// Close закрывает браузер, если он был запущен.
func (h *SessionHandler) Close() {
	if h.launched {
		h.browser.Close()
		h.launched = false
	}
}
