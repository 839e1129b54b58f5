package schedule

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/evofit/trainer-scheduler/internal/audit"
	domain "github.com/evofit/trainer-scheduler/internal/domain/schedule"
	"github.com/evofit/trainer-scheduler/internal/httperr"
	"github.com/evofit/trainer-scheduler/internal/models"
)

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	newStart time.Time,
	newEnd time.Time,
) (*models.Appointment, error) {

	if !newStart.Before(newEnd) {
		return nil, httperr.ErrBusinessf(
			"invalid_time_range",
			newStart.Format(time.RFC3339)+" - "+newEnd.Format(time.RFC3339),
		)
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if !domain.IsActive(domain.Status(ap.Status)) ||
		domain.Status(ap.Status) == domain.StatusCompleted {
		return nil, httperr.ErrBusinessf("invalid_transition", ap.Status+" cannot be rescheduled")
	}

	var updated *models.Appointment

	err = withBookingRetry(ctx, uc.repo, ap.TrainerID, func(tx domain.Repository) error {

		// Reload under the lock so the conflict check and the write see
		// the same row state.
		cur, err := tx.GetAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}

		conflict, err := tx.FindConflict(
			ctx, cur.TrainerID, newStart, newEnd, cur.ID,
		)
		if err != nil {
			return err
		}
		if conflict != nil {
			return httperr.ConflictError{
				AppointmentID: conflict.ID,
				Start:         conflict.StartTime,
				End:           conflict.EndTime,
			}
		}

		domain.Move(cur, newStart, newEnd)

		if err := tx.UpdateAppointment(ctx, cur); err != nil {
			return err
		}

		updated = cur
		return nil
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			if conflict, ferr := uc.repo.FindConflict(
				ctx, ap.TrainerID, newStart, newEnd, ap.ID,
			); ferr == nil && conflict != nil {
				return nil, httperr.ConflictError{
					AppointmentID: conflict.ID,
					Start:         conflict.StartTime,
					End:           conflict.EndTime,
				}
			}
			return nil, httperr.ConflictError{Start: newStart, End: newEnd}
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TrainerID: updated.TrainerID,
		Action:    "appointment_rescheduled",
		Entity:    "appointment",
		EntityID:  &updated.ID,
		Metadata: map[string]any{
			"start": newStart,
			"end":   newEnd,
		},
	})

	return updated, nil
}
