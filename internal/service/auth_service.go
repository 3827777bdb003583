package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"deepeng_backend/internal/config"
	"deepeng_backend/internal/model"
	"deepeng_backend/internal/repository"
	"deepeng_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

type RegisterRequest struct {
	FullName  string `json:"fullName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	TeacherID uint   `json:"teacherId"`
}

// Register creates a student account. A username is generated from the
// first name plus random digits so two students with the same name do
// not collide.
func (s *AuthService) Register(req RegisterRequest) (*model.User, string, error) {
	_, err := s.UserRepo.FindByPhone(req.Phone)
	if err == nil {
		return nil, "", util.ErrPhoneRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Username:  generateUsername(req.FullName),
		Phone:     req.Phone,
		FullName:  strings.TrimSpace(req.FullName),
		Password:  string(hashedPassword),
		Role:      model.Student,
		Level:     model.A1,
		TeacherID: req.TeacherID,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login accepts a phone number or a username as the identifier.
func (s *AuthService) Login(identifier, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByIdentifier(identifier)
	if err != nil {
		return nil, "", util.ErrInvalidLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidLogin
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}

func generateUsername(fullName string) string {
	first := strings.Fields(strings.TrimSpace(fullName))
	base := "student"
	if len(first) > 0 {
		base = strings.ToLower(first[0])
	}
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return base
	}
	return fmt.Sprintf("%s%04d", base, n.Int64())
}
