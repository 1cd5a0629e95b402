package commands

import (
	"fmt"

	"jobAgent/internal/cli/ui"
	"jobAgent/internal/database"

	"go.uber.org/zap"
)

// JobsHandler обрабатывает команды просмотра откликов и статистики.
type JobsHandler struct {
	jobs         *database.AppliedJobRepository
	interactions *database.InteractionRepository
	log          *zap.Logger
}

func NewJobsHandler(jobs *database.AppliedJobRepository, interactions *database.InteractionRepository, log *zap.Logger) *JobsHandler {
	return &JobsHandler{
		jobs:         jobs,
		interactions: interactions,
		log:          log,
	}
}

// List выводит последние отклики.
func (h *JobsHandler) List() {
	jobs, err := h.jobs.List(50, 0)
	if err != nil {
		h.log.Error("Ошибка получения откликов", zap.Error(err))
		fmt.Println(ui.ColorRed + ui.IconCross + " Ошибка получения откликов" + ui.ColorReset)
		return
	}

	if len(jobs) == 0 {
		fmt.Println(ui.ColorGray + "Откликов пока нет" + ui.ColorReset)
		return
	}

	fmt.Printf("\n"+ui.ColorBold+"=== Отклики (%d) ==="+ui.ColorReset+"\n", len(jobs))
	for _, job := range jobs {
		icon, color, statusText := ui.FormatStatus(job.Status)
		title := job.Title
		if title == "" {
			title = job.JobID
		}
		fmt.Printf("%s%s %s"+ui.ColorReset+" %s", color, icon, statusText, title)
		if job.Company != "" {
			fmt.Printf(ui.ColorGray+" @ %s"+ui.ColorReset, job.Company)
		}
		if job.Score > 0 {
			fmt.Printf(ui.ColorGray+" (оценка %d)"+ui.ColorReset, job.Score)
		}
		fmt.Printf("  "+ui.ColorGray+"%s"+ui.ColorReset+"\n", job.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
}

// Report выводит сводку по откликам и сессиям чат-бота.
func (h *JobsHandler) Report() {
	applied, err := h.jobs.CountByStatus("applied")
	if err != nil {
		h.log.Error("Ошибка получения статистики", zap.Error(err))
		fmt.Println(ui.ColorRed + ui.IconCross + " Ошибка получения статистики" + ui.ColorReset)
		return
	}
	failed, _ := h.jobs.CountByStatus("failed")
	skipped, _ := h.jobs.CountByStatus("skipped")

	stats, err := h.interactions.Stats()
	if err != nil {
		h.log.Error("Ошибка получения статистики", zap.Error(err))
		fmt.Println(ui.ColorRed + ui.IconCross + " Ошибка получения статистики" + ui.ColorReset)
		return
	}

	fmt.Println("\n" + ui.ColorBold + "=== Статистика ===" + ui.ColorReset)
	fmt.Printf(ui.ColorCyan+ui.IconChart+" Отклики:"+ui.ColorReset+" отправлено %d, пропущено %d, ошибок %d\n",
		applied, skipped, failed)
	fmt.Printf(ui.ColorCyan+ui.IconChat+" Вопросы чат-бота:"+ui.ColorReset+" всего %d, отвечено %d (%.0f%%)\n",
		stats.Total, stats.Successful, stats.SuccessRate())

	unanswered, err := h.interactions.Unanswered(10)
	if err == nil && len(unanswered) > 0 {
		fmt.Println("\n" + ui.ColorYellow + ui.IconBulb + " Вопросы без хорошего ответа (кандидаты в словарь):" + ui.ColorReset)
		for _, rec := range unanswered {
			fmt.Printf("  "+ui.ColorGray+"- %s"+ui.ColorReset+"\n", rec.Question)
		}
	}
	fmt.Println()
}
