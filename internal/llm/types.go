// Package llm предоставляет интеграцию с OpenAI для генерации ответов на вопросы
// чат-бота и оценки вакансий. Включает rate limiting и политику повторов с backoff.
package llm

import "context"

// AnswerGenerator определяет интерфейс генеративного сервиса ответов.
// Реализация опциональна: при её отсутствии резолвер пропускает эту стратегию.
type AnswerGenerator interface {
	// GenerateAnswer возвращает короткий ответ (до 50 символов) на вопрос анкеты
	// с учетом профиля кандидата.
	GenerateAnswer(ctx context.Context, question, profileSummary string) (string, error)
}

// JobScorer оценивает соответствие вакансии профилю кандидата по шкале 0-100.
type JobScorer interface {
	ScoreJob(ctx context.Context, title, description, profileSummary string) (int, error)
}
