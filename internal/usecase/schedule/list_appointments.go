package schedule

import (
	"context"
	"time"

	domain "github.com/evofit/trainer-scheduler/internal/domain/schedule"
	"github.com/evofit/trainer-scheduler/internal/dto"
	"github.com/evofit/trainer-scheduler/internal/timeutil"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// ByDate lists every appointment (any status) on the trainer's calendar
// for one day.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	trainerID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start, end := timeutil.DayBounds(date)
	return uc.byPeriod(ctx, trainerID, start, end, "")
}

// ByRange lists appointments in [from, to), optionally filtered by
// status.
func (uc *ListAppointments) ByRange(
	ctx context.Context,
	trainerID uint,
	from time.Time,
	to time.Time,
	status string,
) ([]dto.AppointmentListDTO, error) {
	return uc.byPeriod(ctx, trainerID, from, to, status)
}

func (uc *ListAppointments) byPeriod(
	ctx context.Context,
	trainerID uint,
	start time.Time,
	end time.Time,
	status string,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx, trainerID, start, end, status,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:         ap.ID,
			Title:      ap.Title,
			StartTime:  ap.StartTime,
			EndTime:    ap.EndTime,
			Status:     ap.Status,
			ClientName: ap.Client.Name,
			IsOnline:   ap.IsOnline,
			Location:   ap.Location,
		})
	}

	return out, nil
}
