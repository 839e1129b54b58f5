package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/evofit/trainer-scheduler/internal/audit"
	domain "github.com/evofit/trainer-scheduler/internal/domain/schedule"
	"github.com/evofit/trainer-scheduler/internal/httperr"
	"github.com/evofit/trainer-scheduler/internal/models"
	"github.com/evofit/trainer-scheduler/internal/timeutil"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	TrainerID uint
	ClientID  uint

	Title           string
	Description     string
	AppointmentType string

	Start time.Time
	End   time.Time

	Location    string
	IsOnline    bool
	MeetingLink string
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.Title == "" {
		return nil, httperr.ErrBusiness("missing_title")
	}
	if !in.Start.Before(in.End) {
		return nil, httperr.ErrBusinessf(
			"invalid_time_range",
			in.Start.Format(time.RFC3339)+" - "+in.End.Format(time.RFC3339),
		)
	}

	trainer, err := uc.repo.GetUserByID(ctx, in.TrainerID)
	if err != nil || trainer.Role != models.RoleTrainer {
		return nil, httperr.ErrBusiness("trainer_not_found")
	}

	client, err := uc.repo.GetUserByID(ctx, in.ClientID)
	if err != nil || client.Role != models.RoleClient {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	ok, err := uc.withinAvailability(ctx, in.TrainerID, in.Start, in.End)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("outside_availability")
	}

	appointmentType := in.AppointmentType
	if appointmentType == "" {
		appointmentType = "one_on_one"
	}

	meetingLink := in.MeetingLink
	if in.IsOnline && meetingLink == "" {
		meetingLink = "https://meet.evofit.app/" + uuid.NewString()
	}

	var created *models.Appointment

	err = withBookingRetry(ctx, uc.repo, in.TrainerID, func(tx domain.Repository) error {

		conflict, err := tx.FindConflict(ctx, in.TrainerID, in.Start, in.End, 0)
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

		ap := &models.Appointment{
			TrainerID:       in.TrainerID,
			ClientID:        in.ClientID,
			Title:           in.Title,
			Description:     in.Description,
			AppointmentType: appointmentType,
			StartTime:       in.Start,
			EndTime:         in.End,
			DurationMinutes: int(in.End.Sub(in.Start) / time.Minute),
			Status:          string(domain.InitialStatus()),
			Location:        in.Location,
			IsOnline:        in.IsOnline,
			MeetingLink:     meetingLink,
			Notes:           in.Notes,
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		created = ap
		return nil
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			// The exclusion constraint caught a racing insert. Re-read
			// the winner so the error names the colliding appointment.
			if conflict, ferr := uc.repo.FindConflict(
				ctx, in.TrainerID, in.Start, in.End, 0,
			); ferr == nil && conflict != nil {
				return nil, httperr.ConflictError{
					AppointmentID: conflict.ID,
					Start:         conflict.StartTime,
					End:           conflict.EndTime,
				}
			}
			return nil, httperr.ConflictError{Start: in.Start, End: in.End}
		}

		if ce, ok := httperr.AsConflict(err); ok {
			uc.audit.Dispatch(audit.Event{
				TrainerID: in.TrainerID,
				Action:    "appointment_conflict",
				Entity:    "appointment",
				Metadata: map[string]any{
					"start":       in.Start,
					"end":         in.End,
					"conflict_id": ce.AppointmentID,
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TrainerID: in.TrainerID,
		ActorID:   &in.TrainerID,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &created.ID,
	})

	return created, nil
}

// withinAvailability checks that [start, end) fits inside one of the
// trainer's open windows for that weekday.
func (uc *CreateAppointment) withinAvailability(
	ctx context.Context,
	trainerID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	rules, err := uc.repo.ListAvailabilityForWeekday(
		ctx, trainerID, int(start.Weekday()),
	)
	if err != nil {
		return false, err
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	if endMin == 0 {
		// Range ends exactly at midnight.
		endMin = 24 * 60
	}

	for _, rule := range rules {
		ruleStart, err := timeutil.ParseClock(rule.StartTime)
		if err != nil {
			continue
		}
		ruleEnd, err := timeutil.ParseClock(rule.EndTime)
		if err != nil {
			continue
		}
		if ruleStart <= startMin && endMin <= ruleEnd {
			return true, nil
		}
	}

	return false, nil
}
