package repository

import (
	"deepeng_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(module *model.Module) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) FindAll() ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Order("id").Find(&modules).Error
	return modules, err
}

// FindAssignedToTeacher returns the modules a teacher has assigned, which
// is exactly what that teacher's students are allowed to see.
func (r *ModuleRepository) FindAssignedToTeacher(teacherID uint) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.
		Joins("JOIN assignments ON assignments.module_id = modules.id AND assignments.deleted_at IS NULL").
		Where("assignments.teacher_id = ?", teacherID).
		Order("modules.id").
		Find(&modules).Error
	return modules, err
}

// FindByIDWithExercises loads a module and its exercises in stored order.
// Exercise order (by id) is the only ordering guarantee the timeline has.
func (r *ModuleRepository) FindByIDWithExercises(id uint) (*model.Module, error) {
	var module model.Module
	err := r.DB.Preload("Exercises", func(db *gorm.DB) *gorm.DB {
		return db.Order("exercises.id")
	}).First(&module, id).Error
	return &module, err
}

func (r *ModuleRepository) FindByID(id uint) (*model.Module, error) {
	var module model.Module
	err := r.DB.First(&module, id).Error
	return &module, err
}

func (r *ModuleRepository) Update(module *model.Module) error {
	return r.DB.Save(module).Error
}

func (r *ModuleRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Module{}, id).Error
}
