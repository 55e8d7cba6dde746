package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mistryapurva/the-food-critique-api/internal/apperr"
	"github.com/mistryapurva/the-food-critique-api/internal/models"
)

type UserService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewUserService(db *gorm.DB, log *logrus.Logger) *UserService {
	return &UserService{db: db, log: log}
}

// CreateUserInput is the signup payload.
type CreateUserInput struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role"`
}

// UpdateUserInput carries the mutable user fields. Role changes are only
// honoured for administrators.
type UpdateUserInput struct {
	Name   string        `json:"name"`
	Role   models.Role   `json:"role"`
	Status models.Status `json:"status"`
}

func (s *UserService) GetAll() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		s.log.WithError(err).Error("listing users failed")
		return nil, apperr.Server("An unexpected error occurred")
	}
	return users, nil
}

func (s *UserService) Get(id string) (*models.User, error) {
	userID, err := parseID(id)
	if err != nil {
		return nil, apperr.BadRequest("Unable to find user")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.log.WithError(err).Error("fetching user failed")
		return nil, apperr.Server("An unexpected error occurred")
	}
	return &user, nil
}

func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, apperr.BadRequest("Missing mandatory parameters")
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	switch role {
	case models.RoleUser, models.RoleOwner, models.RoleAdmin:
	default:
		return nil, apperr.BadRequest("Missing mandatory parameters")
	}

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, apperr.Server("User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.WithError(err).Error("signup lookup failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.WithError(err).Error("hashing password failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	now := time.Now()
	user := models.User{
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Role:      role,
		Status:    models.StatusActive,
		CreatedOn: now,
		UpdatedOn: now,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// Two signups racing past the lookup still trip the unique index.
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return nil, apperr.Server("User already exists")
		}
		s.log.WithError(err).Error("creating user failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	return &user, nil
}

func (s *UserService) Update(actor Actor, id string, input UpdateUserInput) (*models.User, error) {
	userID, err := parseID(id)
	if err != nil {
		return nil, apperr.BadRequest("Unable to find user")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperr.BadRequest("Missing mandatory fields")
	}

	var existing models.User
	if err := s.db.First(&existing, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Server("User not found")
		}
		s.log.WithError(err).Error("fetching user failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	if actor.Role != models.RoleAdmin && input.Role != "" && input.Role != existing.Role {
		return nil, apperr.Unauthorized("You are not allowed to change your role. Please contact the administrator.")
	}

	existing.Name = strings.TrimSpace(input.Name)
	if input.Status != "" {
		existing.Status = input.Status
	}
	if input.Role != "" {
		existing.Role = input.Role
	}
	existing.UpdatedOn = time.Now()

	if err := s.db.Save(&existing).Error; err != nil {
		s.log.WithError(err).Error("updating user failed")
		return nil, apperr.Server("An unexpected error occurred")
	}
	return &existing, nil
}

// Delete marks the user INACTIVE. Records are never removed.
func (s *UserService) Delete(id string) (*models.User, error) {
	userID, err := parseID(id)
	if err != nil {
		return nil, apperr.BadRequest("Unable to find user")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Server("User not found")
		}
		s.log.WithError(err).Error("fetching user failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	user.Status = models.StatusInactive
	user.UpdatedOn = time.Now()
	if err := s.db.Save(&user).Error; err != nil {
		s.log.WithError(err).Error("deactivating user failed")
		return nil, apperr.Server("An unexpected error occurred")
	}
	return &user, nil
}

// parseID turns a path parameter into a numeric id. Blank or malformed
// values are rejected before any query runs.
func parseID(raw string) (uint, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, errors.New("empty id")
	}
	id, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
