package models

import "time"

const (
	ClaimStatusPending  = "Pending"
	ClaimStatusApproved = "Approved"
	ClaimStatusRejected = "Rejected"
	ClaimStatusSettled  = "Settled"
)

// InsuranceClaim belongs to a quote. ClaimAmount is nullable: a claim can be
// filed before the damage is priced. Non-staff submissions are always stored
// as Pending regardless of the posted status.
type InsuranceClaim struct {
	ID               uint   `gorm:"primaryKey"`
	QuoteID          uint   `gorm:"not null;index"`
	Quote            Quote  `gorm:"foreignKey:QuoteID"`
	ClaimStatus      string `gorm:"not null;default:'Pending'"`
	ClaimAmount      *float64
	ClaimDescription string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
