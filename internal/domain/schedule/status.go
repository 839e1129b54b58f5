package schedule

import "github.com/evofit/trainer-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Transitions
// ===============================

// CanConfirm: only a freshly scheduled appointment can be confirmed.
func CanConfirm(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusinessf("invalid_transition", string(current)+" -> confirmed")
	}
	return nil
}

// CanComplete: scheduled and confirmed appointments can be completed;
// cancelled and completed are terminal.
func CanComplete(current Status) error {
	if current != StatusScheduled && current != StatusConfirmed {
		return httperr.ErrBusinessf("invalid_transition", string(current)+" -> completed")
	}
	return nil
}

// CanCancel: completed is terminal. Cancelling an already cancelled
// appointment is handled as a no-op by the caller, not rejected here.
func CanCancel(current Status) error {
	if current == StatusCompleted {
		return httperr.ErrBusinessf("invalid_transition", "completed -> cancelled")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}

// IsActive reports whether an appointment with this status still occupies
// its time range for conflict purposes.
func IsActive(current Status) bool {
	return current != StatusCancelled
}
