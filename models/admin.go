package models

import (
	"time"

	"gorm.io/gorm"
)

type Admin struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FirstName string         `gorm:"size:100" json:"firstName"`
	LastName  string         `gorm:"size:100" json:"lastName"`
	Email     string         `gorm:"uniqueIndex;size:150" json:"email"`
	Phone     string         `gorm:"size:50" json:"phone"`
	Password  string         `gorm:"size:255" json:"-"` // bcrypt hash, never returned in JSON
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
