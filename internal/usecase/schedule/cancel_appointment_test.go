package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evofit/trainer-scheduler/internal/httperr"
)

func TestCancelAppointment_SetsStatusAndReason(t *testing.T) {
	repo := bookingRepo()
	start := time.Now().Add(72 * time.Hour)
	ap := repo.addAppointment(1, 2, start, start.Add(time.Hour), "scheduled")

	uc := NewCancelAppointment(repo, nil)

	cancelled, late, err := uc.Execute(context.Background(), ap.ID, "client request")
	require.NoError(t, err)

	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, "client request", cancelled.CancelReason)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.False(t, late, "72h notice is not a late cancellation")
}

func TestCancelAppointment_LateWhenInsideLeadTime(t *testing.T) {
	repo := bookingRepo()
	start := time.Now().Add(2 * time.Hour)
	ap := repo.addAppointment(1, 2, start, start.Add(time.Hour), "confirmed")

	uc := NewCancelAppointment(repo, nil)

	_, late, err := uc.Execute(context.Background(), ap.ID, "")
	require.NoError(t, err)
	assert.True(t, late)
}

func TestCancelAppointment_SecondCancelIsANoOp(t *testing.T) {
	repo := bookingRepo()
	start := time.Now().Add(72 * time.Hour)
	ap := repo.addAppointment(1, 2, start, start.Add(time.Hour), "scheduled")

	uc := NewCancelAppointment(repo, nil)

	first, _, err := uc.Execute(context.Background(), ap.ID, "first")
	require.NoError(t, err)

	second, late, err := uc.Execute(context.Background(), ap.ID, "second")
	require.NoError(t, err)

	assert.Equal(t, "cancelled", second.Status)
	assert.Equal(t, "first", second.CancelReason, "no-op must not overwrite the reason")
	assert.Equal(t, first.CancelledAt, second.CancelledAt)
	assert.False(t, late)
}

func TestCancelAppointment_CompletedIsTerminal(t *testing.T) {
	repo := bookingRepo()
	start := time.Now().Add(-time.Hour)
	ap := repo.addAppointment(1, 2, start, start.Add(time.Hour), "completed")

	uc := NewCancelAppointment(repo, nil)

	_, _, err := uc.Execute(context.Background(), ap.ID, "")
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"), "got %v", err)
}

func TestCancelAppointment_NotFound(t *testing.T) {
	repo := bookingRepo()
	uc := NewCancelAppointment(repo, nil)

	_, _, err := uc.Execute(context.Background(), 404, "")
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"), "got %v", err)
}
