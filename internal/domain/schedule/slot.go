package schedule

import "time"

// Slot is a computed candidate booking interval for a trainer on a given
// date. Slots are derived from availability rules minus existing
// appointments on every query and never persisted.
type Slot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
	Location  string    `json:"location,omitempty"`
}

type SlotsInput struct {
	TrainerID       uint
	Date            time.Time
	DurationMinutes int
}
