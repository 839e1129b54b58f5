package schedule

import (
	"context"
	"math/rand"
	"time"

	domain "github.com/evofit/trainer-scheduler/internal/domain/schedule"
	"github.com/evofit/trainer-scheduler/internal/httperr"
)

const (
	// bookingMaxAttempts bounds retries of the atomic check-and-write
	// unit when the store reports a transient write conflict.
	bookingMaxAttempts = 3

	bookingRetryBase   = 25 * time.Millisecond
	bookingRetryJitter = 50 * time.Millisecond
)

// withBookingRetry executes fn inside the per-trainer serialized unit,
// retrying on serialization and deadlock failures with jittered backoff.
// An exhausted retry budget surfaces as a ConflictError: from the
// caller's perspective it is indistinguishable from losing the slot.
func withBookingRetry(
	ctx context.Context,
	repo domain.Repository,
	trainerID uint,
	fn func(domain.Repository) error,
) error {

	var err error
	for attempt := 0; attempt < bookingMaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := bookingRetryBase +
				time.Duration(rand.Int63n(int64(bookingRetryJitter)))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err = repo.WithTrainerLock(ctx, trainerID, fn)
		if err == nil || !httperr.IsRetryableTx(err) {
			return err
		}
	}

	return httperr.ConflictError{}
}
