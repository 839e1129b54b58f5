package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TrainerID uint `gorm:"index:idx_trainer_start" json:"trainer_id"`
	Trainer   User `gorm:"foreignKey:TrainerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"trainer"`

	ClientID uint `json:"client_id"`
	Client   User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	Title           string `gorm:"size:255;not null" json:"title"`
	Description     string `gorm:"size:1000" json:"description"`
	AppointmentType string `gorm:"size:30;default:'one_on_one'" json:"appointment_type"`

	StartTime time.Time `gorm:"index:idx_trainer_start" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	DurationMinutes int `json:"duration_minutes"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Location    string `gorm:"size:255" json:"location"`
	IsOnline    bool   `json:"is_online"`
	MeetingLink string `gorm:"size:500" json:"meeting_link"`
	Notes       string `gorm:"size:1000" json:"notes"`

	CancelReason string     `gorm:"size:255" json:"cancel_reason"`
	ConfirmedAt  *time.Time `json:"confirmed_at"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
