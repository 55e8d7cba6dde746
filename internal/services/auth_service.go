package services

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mistryapurva/the-food-critique-api/internal/apperr"
	"github.com/mistryapurva/the-food-critique-api/internal/models"
)

type AuthService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewAuthService(db *gorm.DB, log *logrus.Logger) *AuthService {
	return &AuthService{db: db, log: log}
}

// Login verifies the credentials against the stored hash and returns the
// matching active user.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		return nil, apperr.BadRequest("Mandatory fields missing")
	}

	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Server("User does not exist")
		}
		s.log.WithError(err).Error("login lookup failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Server("Invalid credentials.")
	}

	if user.Status != models.StatusActive {
		return nil, apperr.Server("Account inactive. Please contact the administrator.")
	}

	return &user, nil
}
