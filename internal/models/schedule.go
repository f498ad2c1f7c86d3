package models

import "time"

const (
	ScheduleStatusScheduled  = "Scheduled"
	ScheduleStatusInProgress = "In Progress"
	ScheduleStatusCompleted  = "Completed"
	ScheduleStatusCancelled  = "Cancelled"
)

// ScheduleEntry assigns a driver/vehicle to a quote on a given date.
// ScheduledTime is kept as "HH:MM" so (scheduled_date, scheduled_time)
// ordering works the same on sqlite and postgres.
type ScheduleEntry struct {
	ID            uint  `gorm:"primaryKey"`
	QuoteID       uint  `gorm:"not null;index"`
	Quote         Quote `gorm:"foreignKey:QuoteID"`
	ScheduledDate time.Time
	ScheduledTime string
	DriverName    string
	VehicleNumber string
	Notes         string
	Status        string `gorm:"not null;default:'Scheduled'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
