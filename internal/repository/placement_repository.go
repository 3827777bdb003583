package repository

import (
	"deepeng_backend/internal/model"

	"gorm.io/gorm"
)

type PlacementRepository struct {
	DB *gorm.DB
}

func NewPlacementRepository(db *gorm.DB) *PlacementRepository {
	return &PlacementRepository{DB: db}
}

func (r *PlacementRepository) FindAll() ([]model.PlacementQuestion, error) {
	var questions []model.PlacementQuestion
	err := r.DB.Order("id").Find(&questions).Error
	return questions, err
}

func (r *PlacementRepository) FindByIDs(ids []uint) ([]model.PlacementQuestion, error) {
	var questions []model.PlacementQuestion
	err := r.DB.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}
