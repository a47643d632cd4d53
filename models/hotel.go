package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Hotel belongs to exactly one admin. The unique index on AdminID is
// what enforces the one-hotel-per-admin rule; CreateForAdmin relies on it.
type Hotel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255" json:"name"`
	Address   string         `gorm:"type:text" json:"address"`
	Contact   string         `gorm:"size:100" json:"contact"`
	Images    datatypes.JSON `gorm:"column:images" json:"images"`
	AdminID   uint           `gorm:"uniqueIndex;column:admin_id" json:"adminId"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Admin Admin `gorm:"foreignKey:AdminID" json:"-"`
}
