package services

import (
	"errors"
	"fmt"
	"strings"

	"hotel-booking-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists        = errors.New("email_already_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

// Register creates an admin account with a bcrypt-hashed password.
func (s *AdminService) Register(firstName, lastName, email, phone, password string) (models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.Admin
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return models.Admin{}, ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Admin{}, fmt.Errorf("failed to check existing admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Admin{}, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := models.Admin{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     email,
		Phone:     strings.TrimSpace(phone),
		Password:  string(hash),
	}
	if err := s.DB.Create(&admin).Error; err != nil {
		lc := strings.ToLower(err.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") {
			return models.Admin{}, ErrEmailExists
		}
		return models.Admin{}, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

// Login verifies credentials and returns the admin record. Lookup
// failure and password mismatch produce the same error so the response
// does not leak which emails exist.
func (s *AdminService) Login(email, password string) (models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var admin models.Admin
	if err := s.DB.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Admin{}, ErrInvalidCredentials
		}
		return models.Admin{}, fmt.Errorf("failed to look up admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return models.Admin{}, ErrInvalidCredentials
	}
	return admin, nil
}

// GetByID is used when resolving the notification address for a hotel's
// owner.
func (s *AdminService) GetByID(id uint) (models.Admin, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Admin{}, errors.New("admin_not_found")
		}
		return models.Admin{}, fmt.Errorf("failed to look up admin: %w", err)
	}
	return admin, nil
}
