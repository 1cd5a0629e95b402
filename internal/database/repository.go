package database

import "gorm.io/gorm"

type AppliedJobRepository struct {
	db *gorm.DB
}

func NewAppliedJobRepository(db *gorm.DB) *AppliedJobRepository {
	return &AppliedJobRepository{db: db}
}

func (r *AppliedJobRepository) IsApplied(jobID string) (bool, error) {
	var count int64
	if err := r.db.Model(&AppliedJob{}).Where("job_id = ?", jobID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppliedJobRepository) Add(job *AppliedJob) error {
	// Upsert по job_id: повторная попытка отклика обновляет статус
	return r.db.Save(job).Error
}

func (r *AppliedJobRepository) List(limit, offset int) ([]AppliedJob, error) {
	var jobs []AppliedJob
	if err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *AppliedJobRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&AppliedJob{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

type InteractionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

func (r *InteractionRepository) Append(rec *Interaction) error {
	return r.db.Create(rec).Error
}

// InteractionStats - сводка по записанным взаимодействиям для отчета.
type InteractionStats struct {
	Total      int64
	Successful int64
}

func (s InteractionStats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Successful) / float64(s.Total) * 100
}

func (r *InteractionRepository) Stats() (InteractionStats, error) {
	var stats InteractionStats
	if err := r.db.Model(&Interaction{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := r.db.Model(&Interaction{}).Where("success = ?", true).Count(&stats.Successful).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

// Unanswered возвращает вопросы, на которые бот отвечал последней стратегией
// (fallback) или не смог отправить ответ. Материал для пополнения словаря.
func (r *InteractionRepository) Unanswered(limit int) ([]Interaction, error) {
	var recs []Interaction
	err := r.db.
		Where("success = ? OR strategy = ?", false, "fallback").
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}
