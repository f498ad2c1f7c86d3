package models

import "time"

// Account models. Password always holds a bcrypt hash, never plaintext.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"unique;not null;index"`
	Email     string
	Password  string `gorm:"not null"`
	IsStaff   bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
