package schedule

import (
	"context"
	"time"

	"github.com/evofit/trainer-scheduler/internal/models"
)

type Repository interface {
	// -------- Users --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Availability rules --------
	UpsertAvailabilityRules(
		ctx context.Context,
		rules []models.AvailabilityRule,
	) ([]models.AvailabilityRule, error)

	ListAvailabilityRules(
		ctx context.Context,
		trainerID uint,
	) ([]models.AvailabilityRule, error)

	ListAvailabilityForWeekday(
		ctx context.Context,
		trainerID uint,
		weekday int,
	) ([]models.AvailabilityRule, error)

	GetAvailabilityRule(
		ctx context.Context,
		ruleID uint,
	) (*models.AvailabilityRule, error)

	DeleteAvailabilityRule(
		ctx context.Context,
		trainerID uint,
		ruleID uint,
	) error

	// -------- Appointments (read) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentWithContacts(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	ListActiveAppointmentsForDay(
		ctx context.Context,
		trainerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		trainerID uint,
		start time.Time,
		end time.Time,
		status string,
	) ([]models.Appointment, error)

	// FindConflict returns the first active appointment for the trainer
	// overlapping [start, end), or nil when the range is free. excludeID,
	// when non-zero, is skipped so an appointment being rescheduled does
	// not conflict with itself.
	FindConflict(
		ctx context.Context,
		trainerID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) (*models.Appointment, error)

	// -------- Appointments (write) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// WithTrainerLock runs fn inside a transaction holding an exclusive
	// per-trainer advisory lock, serializing every check-and-write on
	// that trainer's calendar against concurrent bookings.
	WithTrainerLock(
		ctx context.Context,
		trainerID uint,
		fn func(Repository) error,
	) error
}
