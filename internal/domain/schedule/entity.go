package schedule

import (
	"time"

	"github.com/evofit/trainer-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelReason = reason
	ap.CancelledAt = &now
	return nil
}

// Move shifts the appointment to a new time range. Status is untouched:
// rescheduling never changes lifecycle state.
func Move(ap *models.Appointment, newStart, newEnd time.Time) {
	ap.StartTime = newStart
	ap.EndTime = newEnd
	ap.DurationMinutes = int(newEnd.Sub(newStart) / time.Minute)
}
