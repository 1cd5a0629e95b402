// Package apply - обработка одной вакансии от открытия страницы до
// записи результата: проверка дублей, кнопка отклика, анкета чат-бота,
// финальная отправка.
package apply

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobAgent/internal/browser"
	"jobAgent/internal/chatbot"
	"jobAgent/internal/config"
	"jobAgent/internal/database"
	"jobAgent/internal/logger"
	"jobAgent/internal/scoring"
	"jobAgent/internal/search"

	"go.uber.org/zap"
)

// Отклики на этих доменах уводят с сайта, бот их пропускает.
var externalDomains = []string{
	"linkedin.com",
	"indeed.com",
	"monster.com",
	"shine.com",
	"naukrigulf.com",
}

var easyApplySelectors = []string{
	"button.btn-primary",
	"button[class*='apply']",
	"a[class*='apply']",
}

var successIndicators = []string{
	"span.success",
	"div[class*='success']",
}

var jobTitleSelectors = []string{
	"h1.jd-header-title",
	"h1[class*='title']",
	"h1",
}

var companySelectors = []string{
	"a[class*='comp-name']",
	"div[class*='comp-name']",
	"a[class*='company']",
}

var descriptionSelectors = []string{
	"div[class*='job-desc']",
	"section[class*='job-desc']",
	"div[class*='description']",
}

// Result - исход обработки одной вакансии.
type Result string

const (
	ResultApplied Result = "applied"
	ResultSkipped Result = "skipped"
	ResultFailed  Result = "failed"
)

// Stats - счетчики сессии откликов.
type Stats struct {
	Applied int
	Failed  int
	Skipped int
}

// ChatbotRunner прогоняет сессию вопрос-ответ на текущей странице.
type ChatbotRunner interface {
	Run(ctx context.Context) (chatbot.Outcome, error)
}

// JobStore - хранилище отправленных откликов.
type JobStore interface {
	IsApplied(jobID string) (bool, error)
	Add(job *database.AppliedJob) error
}

// JobTagger получает ID вакансии перед сессией чат-бота, чтобы журнал
// взаимодействий можно было связать с откликом.
type JobTagger interface {
	SetJob(jobID string)
}

type Applier struct {
	browser browser.Browser
	chatbot ChatbotRunner
	scorer  *scoring.Scorer
	jobs    JobStore
	cfg     config.Search
	log     *logger.Zap
	stats   Stats
	pause   time.Duration // Пауза между действиями, чтобы не дергать сайт
	tagger  JobTagger     // Опционально
}

func New(b browser.Browser, runner ChatbotRunner, scorer *scoring.Scorer, jobs JobStore, cfg config.Search, log *logger.Zap) *Applier {
	return &Applier{
		browser: b,
		chatbot: runner,
		scorer:  scorer,
		jobs:    jobs,
		cfg:     cfg,
		log:     log,
		pause:   2 * time.Second,
	}
}

// ProcessAll обрабатывает вакансии по очереди до лимита откликов за сессию.
func (a *Applier) ProcessAll(ctx context.Context, jobs []search.Job) (Stats, error) {
	maxApplications := a.cfg.MaxApplications
	if maxApplications <= 0 {
		maxApplications = len(jobs)
	}

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return a.stats, err
		}
		if a.stats.Applied >= maxApplications {
			a.log.Info("Достигнут лимит откликов за сессию",
				zap.Int("limit", maxApplications))
			break
		}

		result, err := a.Apply(ctx, job)
		if err != nil {
			a.log.Warn("Ошибка обработки вакансии",
				zap.String("job_id", job.ID), zap.Error(err))
		}
		a.log.Info("Вакансия обработана",
			zap.String("job_id", job.ID),
			zap.String("result", string(result)))

		time.Sleep(a.pause)
	}

	return a.stats, nil
}

// Apply обрабатывает одну вакансию. Result записывается в хранилище
// всегда, кроме пропуска по дублю.
func (a *Applier) Apply(ctx context.Context, job search.Job) (Result, error) {
	if applied, err := a.jobs.IsApplied(job.ID); err == nil && applied {
		a.stats.Skipped++
		return ResultSkipped, nil
	}

	err := retryAction(ctx, 3, 2*time.Second, func() error {
		return a.browser.Navigate(ctx, job.URL)
	})
	if err != nil {
		a.stats.Failed++
		return ResultFailed, fmt.Errorf("ошибка открытия вакансии: %w", err)
	}

	if a.isExternalRedirect() {
		a.stats.Skipped++
		a.record(job, "", "", 0, string(ResultSkipped))
		return ResultSkipped, nil
	}

	title, company, description := a.readJobDetails()

	score := 0
	if a.scorer != nil {
		score = a.scorer.Score(ctx, title, description)
		if !a.scorer.ShouldApply(score) {
			a.log.Info("Вакансия ниже порога",
				zap.String("job_id", job.ID), zap.Int("score", score))
			a.stats.Skipped++
			a.record(job, title, company, score, string(ResultSkipped))
			return ResultSkipped, nil
		}
	}

	if !a.clickEasyApply() {
		a.stats.Failed++
		a.record(job, title, company, score, string(ResultFailed))
		return ResultFailed, fmt.Errorf("кнопка отклика не найдена")
	}

	if a.tagger != nil {
		a.tagger.SetJob(job.ID)
	}

	outcome, err := a.chatbot.Run(ctx)
	if err != nil {
		a.stats.Failed++
		a.record(job, title, company, score, string(ResultFailed))
		return ResultFailed, fmt.Errorf("ошибка сессии чат-бота: %w", err)
	}
	if outcome.Handled() {
		a.log.Info("Анкета обработана",
			zap.String("status", string(outcome.Status)),
			zap.Int("questions", outcome.QuestionsAnswered))
	}

	if !a.finalSubmit() {
		a.stats.Failed++
		a.record(job, title, company, score, string(ResultFailed))
		return ResultFailed, fmt.Errorf("отправка отклика не подтвердилась")
	}

	a.stats.Applied++
	a.record(job, title, company, score, string(ResultApplied))
	return ResultApplied, nil
}

// SetJobTagger подключает получателя ID текущей вакансии.
func (a *Applier) SetJobTagger(tagger JobTagger) {
	a.tagger = tagger
}

func (a *Applier) Statistics() Stats {
	return a.stats
}

func (a *Applier) record(job search.Job, title, company string, score int, status string) {
	err := a.jobs.Add(&database.AppliedJob{
		JobID:   job.ID,
		JobURL:  job.URL,
		Company: company,
		Title:   title,
		Score:   score,
		Status:  status,
	})
	if err != nil {
		a.log.Warn("Ошибка записи отклика", zap.String("job_id", job.ID), zap.Error(err))
	}
}

func (a *Applier) isExternalRedirect() bool {
	url, err := a.browser.CurrentURL()
	if err != nil {
		return false
	}
	lower := strings.ToLower(url)
	for _, domain := range externalDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return false
}

// readJobDetails снимает заголовок, компанию и описание со страницы.
// Пустые значения допустимы: эвристика оценки переживет их.
func (a *Applier) readJobDetails() (title, company, description string) {
	title = a.firstText(jobTitleSelectors)
	company = a.firstText(companySelectors)
	description = a.firstText(descriptionSelectors)
	return title, company, description
}

func (a *Applier) firstText(selectors []string) string {
	for _, selector := range selectors {
		elements, err := a.browser.QueryAll(selector)
		if err != nil {
			continue
		}
		for _, el := range elements {
			text, err := el.Text()
			if err != nil || text == "" {
				continue
			}
			return text
		}
	}
	return ""
}

func (a *Applier) clickEasyApply() bool {
	if a.clickFirstVisible(easyApplySelectors, "apply") {
		return true
	}
	// Текстовый fallback по всем кнопкам страницы
	return a.clickByText("button, a", "apply")
}

// finalSubmit нажимает терминальную кнопку после анкеты и проверяет
// индикатор успеха. Отдельная кнопка бывает не всегда: если анкета
// завершилась отправкой, индикатор уже на странице.
func (a *Applier) finalSubmit() bool {
	a.clickByText("button, input[type='submit']", "submit")
	time.Sleep(a.pause)
	return a.verifySubmission()
}

func (a *Applier) verifySubmission() bool {
	for _, selector := range successIndicators {
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

	// Текстовые подтверждения вида "successfully applied"
	elements, err := a.browser.QueryAll("div, span")
	if err != nil {
		return false
	}
	for _, el := range elements {
		if visible, err := el.IsVisible(); err != nil || !visible {
			continue
		}
		text, err := el.Text()
		if err != nil {
			continue
		}
		lower := strings.ToLower(text)
		if strings.Contains(lower, "successfully applied") ||
			strings.Contains(lower, "application sent") ||
			strings.Contains(lower, "application submitted") {
			return true
		}
	}
	return false
}

func (a *Applier) clickFirstVisible(selectors []string, requireText string) bool {
	for _, selector := range selectors {
		elements, err := a.browser.QueryAll(selector)
		if err != nil {
			continue
		}
		for _, el := range elements {
			if visible, err := el.IsVisible(); err != nil || !visible {
				continue
			}
			if enabled, err := el.IsEnabled(); err != nil || !enabled {
				continue
			}
			if requireText != "" {
				text, err := el.Text()
				if err != nil || !strings.Contains(strings.ToLower(text), requireText) {
					continue
				}
			}
			if el.Click() == nil {
				return true
			}
		}
	}
	return false
}

func (a *Applier) clickByText(selector, text string) bool {
	elements, err := a.browser.QueryAll(selector)
	if err != nil {
		return false
	}
	for _, el := range elements {
		elText, err := el.Text()
		if err != nil || !strings.Contains(strings.ToLower(elText), text) {
			continue
		}
		if visible, err := el.IsVisible(); err != nil || !visible {
			continue
		}
		if enabled, err := el.IsEnabled(); err != nil || !enabled {
			continue
		}
		if el.Click() == nil {
			return true
		}
	}
	return false
}
