package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evofit/trainer-scheduler/internal/httperr"
)

func TestRescheduleAppointment_MovesWithoutChangingStatus(t *testing.T) {
	repo := bookingRepo()
	day := slotDay()
	ap := repo.addAppointment(1, 2, at(day, 10, 0), at(day, 11, 0), "confirmed")

	uc := NewRescheduleAppointment(repo, nil)

	moved, err := uc.Execute(
		context.Background(), ap.ID, at(day, 14, 0), at(day, 15, 30),
	)
	require.NoError(t, err)

	assert.Equal(t, at(day, 14, 0), moved.StartTime)
	assert.Equal(t, at(day, 15, 30), moved.EndTime)
	assert.Equal(t, 90, moved.DurationMinutes)
	assert.Equal(t, "confirmed", moved.Status, "rescheduling never touches status")
}

func TestRescheduleAppointment_DoesNotConflictWithItself(t *testing.T) {
	repo := bookingRepo()
	day := slotDay()
	ap := repo.addAppointment(1, 2, at(day, 10, 0), at(day, 11, 0), "scheduled")

	uc := NewRescheduleAppointment(repo, nil)

	// Shift by 30 minutes into a range overlapping the current one.
	moved, err := uc.Execute(
		context.Background(), ap.ID, at(day, 10, 30), at(day, 11, 30),
	)
	require.NoError(t, err)
	assert.Equal(t, at(day, 10, 30), moved.StartTime)
}

func TestRescheduleAppointment_ConflictWithAnotherBooking(t *testing.T) {
	repo := bookingRepo()
	day := slotDay()
	ap := repo.addAppointment(1, 2, at(day, 10, 0), at(day, 11, 0), "scheduled")
	other := repo.addAppointment(1, 2, at(day, 14, 0), at(day, 15, 0), "scheduled")

	uc := NewRescheduleAppointment(repo, nil)

	_, err := uc.Execute(
		context.Background(), ap.ID, at(day, 14, 30), at(day, 15, 30),
	)

	ce, ok := httperr.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, other.ID, ce.AppointmentID)
}

func TestRescheduleAppointment_TerminalStatesRejected(t *testing.T) {
	repo := bookingRepo()
	day := slotDay()
	cancelled := repo.addAppointment(1, 2, at(day, 10, 0), at(day, 11, 0), "cancelled")
	completed := repo.addAppointment(1, 2, at(day, 12, 0), at(day, 13, 0), "completed")

	uc := NewRescheduleAppointment(repo, nil)

	for _, id := range []uint{cancelled.ID, completed.ID} {
		_, err := uc.Execute(
			context.Background(), id, at(day, 16, 0), at(day, 17, 0),
		)
		assert.True(t, httperr.IsBusiness(err, "invalid_transition"), "got %v", err)
	}
}

func TestRescheduleAppointment_NotFound(t *testing.T) {
	repo := bookingRepo()
	day := slotDay()

	uc := NewRescheduleAppointment(repo, nil)

	_, err := uc.Execute(
		context.Background(), 404, at(day, 10, 0), at(day, 11, 0),
	)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"), "got %v", err)
}

func TestRescheduleAppointment_InvalidRange(t *testing.T) {
	repo := bookingRepo()
	day := slotDay()
	ap := repo.addAppointment(1, 2, at(day, 10, 0), at(day, 11, 0), "scheduled")

	uc := NewRescheduleAppointment(repo, nil)

	_, err := uc.Execute(
		context.Background(), ap.ID, at(day, 15, 0), at(day, 14, 0),
	)
	assert.True(t, httperr.IsBusiness(err, "invalid_time_range"), "got %v", err)
}
