package httperr

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// ConflictError reports an overlapping active appointment for the same
// trainer. It carries the colliding appointment so callers can show it.
type ConflictError struct {
	AppointmentID uint
	Start         time.Time
	End           time.Time
}

func (e ConflictError) Error() string {
	return fmt.Sprintf(
		"time conflict with appointment %d (%s - %s)",
		e.AppointmentID,
		e.Start.Format(time.RFC3339),
		e.End.Format(time.RFC3339),
	)
}

func AsConflict(err error) (ConflictError, bool) {
	var ce ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}

// Postgres SQLSTATEs relevant to the atomic check-and-insert.
const (
	pgExclusionViolation = "23P01"
	pgSerializationError = "40001"
	pgDeadlockDetected   = "40P01"
)

// IsExclusionConflict reports whether err is the appointments exclusion
// constraint rejecting an overlapping row. This is the database backstop
// behind the application-level conflict check and maps to a genuine
// scheduling collision.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

// IsRetryableTx reports whether err is a transient write conflict the
// booking path may retry.
func IsRetryableTx(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgSerializationError || pgErr.Code == pgDeadlockDetected
}
