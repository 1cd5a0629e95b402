package database

import (
	"sync"

	"jobAgent/internal/chatbot"
	"jobAgent/internal/logger"

	"go.uber.org/zap"
)

// InteractionSink пишет записи сессий чат-бота в таблицу interactions.
// Текущий job_id выставляет обработчик вакансии перед запуском сессии.
type InteractionSink struct {
	repo *InteractionRepository
	log  *logger.Zap

	mu    sync.Mutex
	jobID string
}

func NewInteractionSink(repo *InteractionRepository, log *logger.Zap) *InteractionSink {
	return &InteractionSink{repo: repo, log: log}
}

func (s *InteractionSink) SetJob(jobID string) {
	s.mu.Lock()
	s.jobID = jobID
	s.mu.Unlock()
}

// Record реализует chatbot.Sink. Ошибка записи не прерывает сессию.
func (s *InteractionSink) Record(rec chatbot.InteractionRecord) {
	s.mu.Lock()
	jobID := s.jobID
	s.mu.Unlock()

	err := s.repo.Append(&Interaction{
		JobID:    jobID,
		Question: rec.Question,
		Answer:   rec.Answer,
		Strategy: rec.Strategy,
		Modality: rec.Modality,
		Success:  rec.Success,
	})
	if err != nil {
		s.log.Warn("Ошибка записи взаимодействия", zap.Error(err))
	}
}
