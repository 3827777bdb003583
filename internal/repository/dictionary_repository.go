package repository

import (
	"deepeng_backend/internal/model"

	"gorm.io/gorm"
)

type DictionaryRepository struct {
	DB *gorm.DB
}

func NewDictionaryRepository(db *gorm.DB) *DictionaryRepository {
	return &DictionaryRepository{DB: db}
}

func (r *DictionaryRepository) Find(word string) (*model.DictionaryEntry, error) {
	var entry model.DictionaryEntry
	err := r.DB.Where("word = ?", word).First(&entry).Error
	return &entry, err
}

func (r *DictionaryRepository) Upsert(entry *model.DictionaryEntry) error {
	return r.DB.Save(entry).Error
}

func (r *DictionaryRepository) FindAll() ([]model.DictionaryEntry, error) {
	var entries []model.DictionaryEntry
	err := r.DB.Order("word").Find(&entries).Error
	return entries, err
}
