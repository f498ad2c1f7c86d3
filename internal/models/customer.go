package models

import "time"

// Customer is deduplicated by email: a quote submission with a known email
// overwrites name/phone/address instead of inserting a second row. The unique
// index backs the upsert against concurrent identical submissions.
type Customer struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Phone     string
	Email     string `gorm:"uniqueIndex;not null"`
	Address   string
	Quotes    []Quote `gorm:"foreignKey:CustomerID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
