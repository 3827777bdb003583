package repository

import (
	"deepeng_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(a *model.Assignment) error {
	return r.DB.Create(a).Error
}

func (r *AssignmentRepository) FindByTeacher(teacherID uint) ([]model.Assignment, error) {
	var rows []model.Assignment
	err := r.DB.Preload("Module").Where("teacher_id = ?", teacherID).Order("assigned_at").Find(&rows).Error
	return rows, err
}

func (r *AssignmentRepository) Exists(teacherID, moduleID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Assignment{}).
		Where("teacher_id = ? AND module_id = ?", teacherID, moduleID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) Delete(id, teacherID uint) (int64, error) {
	res := r.DB.Where("teacher_id = ?", teacherID).Delete(&model.Assignment{}, id)
	return res.RowsAffected, res.Error
}

func (r *AssignmentRepository) DeleteByModule(moduleID uint) error {
	return r.DB.Unscoped().Where("module_id = ?", moduleID).Delete(&model.Assignment{}).Error
}
