package models

import "time"

// Quote statuses. Status is stored as a plain string: the update endpoint
// accepts whatever an admin posts, these constants cover the app's own writes.
const (
	QuoteStatusPending   = "Pending"
	QuoteStatusApproved  = "Approved"
	QuoteStatusCompleted = "Completed"
	QuoteStatusCancelled = "Cancelled"
)

// Quote is a priced move request for one customer. EstimatedCost is derived
// from the pricing service and never user-edited.
type Quote struct {
	ID            uint     `gorm:"primaryKey"`
	CustomerID    uint     `gorm:"not null;index"`
	Customer      Customer `gorm:"foreignKey:CustomerID"`
	MoveDate      time.Time
	Items         int     `gorm:"not null"`
	DistanceKM    float64 `gorm:"not null"`
	EstimatedCost float64 `gorm:"not null"`
	Status        string  `gorm:"not null;default:'Pending'"`

	InventoryItems  []InventoryItem  `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	Schedules       []ScheduleEntry  `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	InsuranceClaims []InsuranceClaim `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
