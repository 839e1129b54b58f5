package schedule

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/evofit/trainer-scheduler/internal/audit"
	domain "github.com/evofit/trainer-scheduler/internal/domain/schedule"
	"github.com/evofit/trainer-scheduler/internal/httperr"
	"github.com/evofit/trainer-scheduler/internal/models"
	"github.com/evofit/trainer-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute transitions the appointment to cancelled. Cancelling an already
// cancelled appointment is a success no-op. The returned bool flags a
// late cancellation (less than the reminder lead time before start).
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	reason string,
) (*models.Appointment, bool, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, false, err
	}

	if domain.Status(ap.Status) == domain.StatusCancelled {
		return ap, false, nil
	}

	now := timezone.Now()
	if err := domain.Cancel(ap, reason, now); err != nil {
		return nil, false, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, false, err
	}

	uc.audit.Dispatch(audit.Event{
		TrainerID: ap.TrainerID,
		Action:    "appointment_cancelled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	untilStart := ap.StartTime.Sub(now)
	late := untilStart > 0 && untilStart < ReminderLeadTime

	return ap, late, nil
}
