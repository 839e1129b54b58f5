package handlers

import (
	"time"

	"github.com/evofit/trainer-scheduler/internal/models"
	"github.com/evofit/trainer-scheduler/internal/timezone"
)

// resolve the timezone dates and clock times are interpreted in for a
// given trainer
func locationForTrainer(trainer *models.User) *time.Location {
	if trainer != nil {
		return timezone.Location(trainer.Timezone)
	}
	return time.UTC
}

func parseDateForTrainer(trainer *models.User, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationForTrainer(trainer),
	)
}

// parseDateTimeForTrainer reads a zone-less "YYYY-MM-DDTHH:MM" stamp in
// the trainer's timezone.
func parseDateTimeForTrainer(
	trainer *models.User,
	value string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02T15:04",
		value,
		locationForTrainer(trainer),
	)
}
