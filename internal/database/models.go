// Package database предоставляет модели данных и репозитории для работы с PostgreSQL.
// Использует GORM ORM с prepared statements для защиты от SQL injection.
package database

import "time"

// AppliedJob представляет вакансию, на которую уже отправлен отклик.
// Статусы: applied, failed, skipped.
type AppliedJob struct {
	JobID     string    `gorm:"primaryKey;column:job_id"`
	JobURL    string    `gorm:"type:text"`                      // Ссылка на вакансию
	Company   string    `gorm:"type:varchar(255)"`              // Название компании
	Title     string    `gorm:"type:varchar(255)"`              // Название позиции
	Score     int       // Оценка соответствия профилю (0-100)
	Status    string    `gorm:"type:varchar(32);not null;default:'applied'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AppliedJob) TableName() string { return "applied_jobs" }

// Interaction представляет одну пару вопрос-ответ из сессии чат-бота.
// Запись append-only, используется только для офлайн-анализа.
type Interaction struct {
	ID        uint      `gorm:"primaryKey"`
	JobID     string    `gorm:"index;column:job_id"`          // ID вакансии (опционально)
	Question  string    `gorm:"type:text;not null"`           // Текст вопроса
	Answer    string    `gorm:"type:text"`                    // Выбранный ответ
	Strategy  string    `gorm:"type:varchar(32)"`             // Стратегия резолвера (config, store, keywords, llm, default, fallback)
	Modality  string    `gorm:"type:varchar(32)"`             // Тип поля ввода (text, select, radio, checkbox)
	Success   bool      `gorm:"index"`                        // Удалось ли отправить ответ
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Interaction) TableName() string { return "interactions" }
