// Package scoring - оценка соответствия вакансии профилю кандидата.
package scoring

import (
	"context"
	"strings"

	"jobAgent/internal/config"
	"jobAgent/internal/llm"
	"jobAgent/internal/logger"

	"go.uber.org/zap"
)

// Веса эвристики по убыванию значимости сигнала.
const (
	rolePoints     = 35 // Ключевое слово поиска в заголовке или тексте
	skillPoints    = 8  // Каждый навык из профиля
	locationPoints = 10
	avoidPenalty   = 20
	maxScore       = 100
)

type Scorer struct {
	llm     llm.JobScorer // nil - только эвристика
	profile *config.Profile
	cfg     config.Search
	log     *logger.Zap
}

func New(scorer llm.JobScorer, profile *config.Profile, cfg config.Search, log *logger.Zap) *Scorer {
	return &Scorer{
		llm:     scorer,
		profile: profile,
		cfg:     cfg,
		log:     log,
	}
}

// Score оценивает вакансию по шкале 0-100. Сначала LLM; при ошибке
// или отсутствии клиента - эвристика по ключевым словам.
func (s *Scorer) Score(ctx context.Context, title, description string) int {
	if s.llm != nil {
		score, err := s.llm.ScoreJob(ctx, title, description, s.profile.Summary())
		if err == nil {
			return clamp(score)
		}
		s.log.Warn("LLM оценка не удалась, включается эвристика", zap.Error(err))
	}

	return s.KeywordScore(title + " " + description)
}

// ShouldApply сравнивает оценку с порогом из конфига.
func (s *Scorer) ShouldApply(score int) bool {
	return score >= s.cfg.MinJobScore
}

// KeywordScore - резервная оценка без LLM: совпадения по ключевым словам
// поиска, навыкам профиля и локации, штраф за нежелательные компании.
func (s *Scorer) KeywordScore(jobText string) int {
	text := strings.ToLower(jobText)
	score := 0

	// Роль считается один раз: первое совпавшее ключевое слово
	for _, keyword := range s.cfg.Keywords {
		if keyword != "" && strings.Contains(text, strings.ToLower(keyword)) {
			score += rolePoints
			break
		}
	}

	for _, skill := range s.profile.Skills {
		if skill != "" && strings.Contains(text, strings.ToLower(skill)) {
			score += skillPoints
		}
	}

	location := strings.ToLower(s.cfg.Location)
	if location != "" && strings.Contains(text, location) {
		score += locationPoints
	} else if strings.Contains(text, "remote") || strings.Contains(text, "hybrid") {
		score += locationPoints
	}

	for _, company := range s.cfg.AvoidCompanies {
		if company != "" && strings.Contains(text, strings.ToLower(company)) {
			score -= avoidPenalty
			break
		}
	}

	return clamp(score)
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
