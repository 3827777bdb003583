package repository

import (
	"deepeng_backend/internal/model"

	"gorm.io/gorm"
)

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

func (r *ExerciseRepository) FindByModule(moduleID uint) ([]model.Exercise, error) {
	var exercises []model.Exercise
	err := r.DB.Where("module_id = ?", moduleID).Order("id").Find(&exercises).Error
	return exercises, err
}

// ReplaceForModule deletes every exercise of a module and recreates the
// given set. Editing never diffs: an edit is a wholesale swap, which is
// why exercise ids change across edits.
func (r *ExerciseRepository) ReplaceForModule(moduleID uint, exercises []model.Exercise) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("module_id = ?", moduleID).Delete(&model.Exercise{}).Error; err != nil {
			return err
		}
		for i := range exercises {
			exercises[i].ID = 0
			exercises[i].ModuleID = moduleID
			if err := tx.Create(&exercises[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ExerciseRepository) DeleteByModule(moduleID uint) error {
	return r.DB.Unscoped().Where("module_id = ?", moduleID).Delete(&model.Exercise{}).Error
}
