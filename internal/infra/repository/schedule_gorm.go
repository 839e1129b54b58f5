package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/evofit/trainer-scheduler/internal/domain/schedule"
	"github.com/evofit/trainer-scheduler/internal/httperr"
	"github.com/evofit/trainer-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *ScheduleGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Availability rules
// --------------------------------------------------

func (r *ScheduleGormRepository) UpsertAvailabilityRules(
	ctx context.Context,
	rules []models.AvailabilityRule,
) ([]models.AvailabilityRule, error) {

	if len(rules) == 0 {
		return rules, nil
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "trainer_id"},
				{Name: "weekday"},
				{Name: "start_time"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"end_time", "is_available", "location", "updated_at",
			}),
		}).
		Create(&rules).Error
	if err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *ScheduleGormRepository) ListAvailabilityRules(
	ctx context.Context,
	trainerID uint,
) ([]models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("weekday ASC, start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *ScheduleGormRepository) ListAvailabilityForWeekday(
	ctx context.Context,
	trainerID uint,
	weekday int,
) ([]models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where(
			"trainer_id = ? AND weekday = ? AND is_available = true",
			trainerID, weekday,
		).
		Order("start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *ScheduleGormRepository) GetAvailabilityRule(
	ctx context.Context,
	ruleID uint,
) (*models.AvailabilityRule, error) {

	var rule models.AvailabilityRule
	if err := r.db.WithContext(ctx).First(&rule, ruleID).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ScheduleGormRepository) DeleteAvailabilityRule(
	ctx context.Context,
	trainerID uint,
	ruleID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND trainer_id = ?", ruleID, trainerID).
		Delete(&models.AvailabilityRule{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("availability_rule_not_found")
	}

	return nil
}

// --------------------------------------------------
// Appointments (read)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *ScheduleGormRepository) GetAppointmentWithContacts(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Trainer").
		Preload("Client").
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *ScheduleGormRepository) ListActiveAppointmentsForDay(
	ctx context.Context,
	trainerID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"trainer_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			trainerID, string(domain.StatusCancelled), start, end,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *ScheduleGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	trainerID uint,
	start time.Time,
	end time.Time,
	status string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Where(
			"trainer_id = ? AND start_time >= ? AND start_time < ?",
			trainerID, start, end,
		)

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *ScheduleGormRepository) FindConflict(
	ctx context.Context,
	trainerID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) (*models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where(
			"trainer_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			trainerID, string(domain.StatusCancelled), end, start,
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var ap models.Appointment
	err := q.Order("start_time ASC").First(&ap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &ap, nil
}

// --------------------------------------------------
// Appointments (write)
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Concurrency
// --------------------------------------------------

// WithTrainerLock serializes check-and-write sequences per trainer. The
// advisory lock is transaction-scoped, so it is released on commit or
// rollback, and reads inside fn see a calendar no concurrent booking can
// be mutating.
func (r *ScheduleGormRepository) WithTrainerLock(
	ctx context.Context,
	trainerID uint,
	fn func(domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(?)",
			int64(trainerID),
		).Error; err != nil {
			return err
		}

		return fn(NewScheduleGormRepository(tx))
	})
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
