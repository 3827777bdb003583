package repository

import (
	"deepeng_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByPhone(phone string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("phone = ?", phone).First(&user).Error
	return &user, err
}

// FindByIdentifier resolves a login identifier that may be a phone
// number or a username.
func (r *UserRepository) FindByIdentifier(identifier string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("phone = ? OR username = ?", identifier, identifier).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindStudentsByTeacher(teacherID uint) ([]model.User, error) {
	var students []model.User
	err := r.DB.Where("role = ? AND teacher_id = ?", model.Student, teacherID).Find(&students).Error
	return students, err
}

func (r *UserRepository) UpdateLevel(userID uint, level model.CEFRLevel) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("level", level).Error
}
