package dto

import "time"

type AppointmentListDTO struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	ClientName string    `json:"client_name"`
	IsOnline   bool      `json:"is_online"`
	Location   string    `json:"location"`
}
