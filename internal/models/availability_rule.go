package models

import "time"

// AvailabilityRule is a trainer's recurring weekly open window.
// At most one rule exists per (trainer, weekday, start_time).
type AvailabilityRule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TrainerID uint `gorm:"uniqueIndex:idx_trainer_weekday_start" json:"trainer_id"`

	Weekday int `gorm:"uniqueIndex:idx_trainer_weekday_start" json:"weekday"`

	StartTime string `gorm:"size:5;uniqueIndex:idx_trainer_weekday_start" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	IsAvailable bool   `gorm:"default:true" json:"is_available"`
	Location    string `gorm:"size:255" json:"location"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
