package repository

import (
	"deepeng_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert persists a completion with the monotonic score rule in a single
// statement: GREATEST keeps the best score while every other column takes
// the latest attempt. Concurrent completions of the same module serialize
// on the store's row-level statement atomicity; no explicit lock is held.
func (r *ProgressRepository) Upsert(p *model.Progress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":        gorm.Expr("GREATEST(score, VALUES(score))"),
			"reflection":   gorm.Expr("VALUES(reflection)"),
			"details":      gorm.Expr("VALUES(details)"),
			"ai_history":   gorm.Expr("VALUES(ai_history)"),
			"completed_at": gorm.Expr("VALUES(completed_at)"),
			"updated_at":   gorm.Expr("VALUES(updated_at)"),
		}),
	}).Create(p).Error
}

func (r *ProgressRepository) FindByID(id uint) (*model.Progress, error) {
	var p model.Progress
	err := r.DB.First(&p, id).Error
	return &p, err
}

func (r *ProgressRepository) FindByUserAndModule(userID, moduleID uint) (*model.Progress, error) {
	var p model.Progress
	err := r.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&p).Error
	return &p, err
}

func (r *ProgressRepository) FindByUser(userID uint) ([]model.Progress, error) {
	var rows []model.Progress
	err := r.DB.Where("user_id = ?", userID).Order("completed_at DESC").Find(&rows).Error
	return rows, err
}

// SetScore is the explicit teacher override; students never reach it.
func (r *ProgressRepository) SetScore(id uint, score int) error {
	return r.DB.Model(&model.Progress{}).Where("id = ?", id).Update("score", score).Error
}

func (r *ProgressRepository) CountAndAverageByUser(userID uint) (int64, float64, error) {
	var count int64
	if err := r.DB.Model(&model.Progress{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}
	var avg float64
	err := r.DB.Model(&model.Progress{}).
		Where("user_id = ?", userID).
		Select("AVG(score)").
		Scan(&avg).Error
	return count, avg, err
}
