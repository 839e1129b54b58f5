package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/evofit/trainer-scheduler/internal/domain/schedule"
	"github.com/evofit/trainer-scheduler/internal/httperr"
	"github.com/evofit/trainer-scheduler/internal/models"
	"github.com/evofit/trainer-scheduler/internal/timeutil"
)

// stubRepo is an in-memory domain.Repository for use case tests.
// WithTrainerLock holds a real per-trainer mutex across fn, mirroring
// the advisory-lock serialization of the gorm repository, so tests can
// run bookings concurrently. lockErrs, when set, are returned one by
// one before fn runs to simulate transient transaction failures.
type stubRepo struct {
	mu sync.Mutex

	users        map[uint]*models.User
	rules        []models.AvailabilityRule
	appointments map[uint]*models.Appointment
	nextID       uint

	trainerLocks map[uint]*sync.Mutex

	lockCalls int
	lockErrs  []error
	createErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		users:        map[uint]*models.User{},
		appointments: map[uint]*models.Appointment{},
		trainerLocks: map[uint]*sync.Mutex{},
	}
}

var _ domain.Repository = (*stubRepo)(nil)

// -------- seeding helpers --------

func (s *stubRepo) addUser(id uint, name, role, tz string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &models.User{
		ID:       id,
		Name:     name,
		Email:    name + "@example.com",
		Role:     role,
		Timezone: tz,
	}
	s.users[id] = u
	return u
}

func (s *stubRepo) addRule(trainerID uint, weekday int, start, end string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.rules = append(s.rules, models.AvailabilityRule{
		ID:          s.nextID,
		TrainerID:   trainerID,
		Weekday:     weekday,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	})
}

func (s *stubRepo) addAppointment(
	trainerID, clientID uint,
	start, end time.Time,
	status string,
) *models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	ap := &models.Appointment{
		ID:              s.nextID,
		TrainerID:       trainerID,
		ClientID:        clientID,
		Title:           "Session",
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: int(end.Sub(start) / time.Minute),
		Status:          status,
	}
	s.appointments[ap.ID] = ap
	return ap
}

// -------- Users --------

func (s *stubRepo) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

// -------- Availability rules --------

func (s *stubRepo) UpsertAvailabilityRules(
	ctx context.Context,
	rules []models.AvailabilityRule,
) ([]models.AvailabilityRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := make([]models.AvailabilityRule, 0, len(rules))

	for _, in := range rules {
		replaced := false
		for i, cur := range s.rules {
			if cur.TrainerID == in.TrainerID &&
				cur.Weekday == in.Weekday &&
				cur.StartTime == in.StartTime {
				in.ID = cur.ID
				s.rules[i] = in
				replaced = true
				break
			}
		}
		if !replaced {
			s.nextID++
			in.ID = s.nextID
			s.rules = append(s.rules, in)
		}
		saved = append(saved, in)
	}

	return saved, nil
}

func (s *stubRepo) ListAvailabilityRules(
	ctx context.Context,
	trainerID uint,
) ([]models.AvailabilityRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.AvailabilityRule
	for _, r := range s.rules {
		if r.TrainerID == trainerID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weekday != out[j].Weekday {
			return out[i].Weekday < out[j].Weekday
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (s *stubRepo) ListAvailabilityForWeekday(
	ctx context.Context,
	trainerID uint,
	weekday int,
) ([]models.AvailabilityRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.AvailabilityRule
	for _, r := range s.rules {
		if r.TrainerID == trainerID && r.Weekday == weekday && r.IsAvailable {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (s *stubRepo) GetAvailabilityRule(
	ctx context.Context,
	ruleID uint,
) (*models.AvailabilityRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rules {
		if r.ID == ruleID {
			cp := r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) DeleteAvailabilityRule(
	ctx context.Context,
	trainerID uint,
	ruleID uint,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.rules {
		if r.ID == ruleID && r.TrainerID == trainerID {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			return nil
		}
	}
	return httperr.ErrBusiness("availability_rule_not_found")
}

// -------- Appointments (read) --------

func (s *stubRepo) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getAppointmentLocked(appointmentID)
}

func (s *stubRepo) getAppointmentLocked(
	appointmentID uint,
) (*models.Appointment, error) {
	ap, ok := s.appointments[appointmentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	return &cp, nil
}

func (s *stubRepo) GetAppointmentWithContacts(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, err := s.getAppointmentLocked(appointmentID)
	if err != nil {
		return nil, err
	}
	if t, ok := s.users[ap.TrainerID]; ok {
		ap.Trainer = *t
	}
	if c, ok := s.users[ap.ClientID]; ok {
		ap.Client = *c
	}
	return ap, nil
}

func (s *stubRepo) ListActiveAppointmentsForDay(
	ctx context.Context,
	trainerID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.TrainerID != trainerID {
			continue
		}
		if !domain.IsActive(domain.Status(ap.Status)) {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (s *stubRepo) ListAppointmentsForPeriod(
	ctx context.Context,
	trainerID uint,
	start time.Time,
	end time.Time,
	status string,
) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.TrainerID != trainerID {
			continue
		}
		if status != "" && ap.Status != status {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			if c, ok := s.users[ap.ClientID]; ok {
				cp := *ap
				cp.Client = *c
				out = append(out, cp)
				continue
			}
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (s *stubRepo) FindConflict(
	ctx context.Context,
	trainerID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *models.Appointment
	for _, ap := range s.appointments {
		if ap.TrainerID != trainerID || ap.ID == excludeID {
			continue
		}
		if !domain.IsActive(domain.Status(ap.Status)) {
			continue
		}
		if !timeutil.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			continue
		}
		if found == nil || ap.StartTime.Before(found.StartTime) {
			found = ap
		}
	}
	if found == nil {
		return nil, nil
	}
	cp := *found
	return &cp, nil
}

// -------- Appointments (write) --------

func (s *stubRepo) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		err := s.createErr
		s.createErr = nil
		return err
	}

	s.nextID++
	ap.ID = s.nextID
	cp := *ap
	s.appointments[ap.ID] = &cp
	return nil
}

func (s *stubRepo) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *ap
	s.appointments[ap.ID] = &cp
	return nil
}

func (s *stubRepo) WithTrainerLock(
	ctx context.Context,
	trainerID uint,
	fn func(domain.Repository) error,
) error {

	s.mu.Lock()
	s.lockCalls++
	if len(s.lockErrs) > 0 {
		err := s.lockErrs[0]
		s.lockErrs = s.lockErrs[1:]
		if err != nil {
			s.mu.Unlock()
			return err
		}
	}
	l, ok := s.trainerLocks[trainerID]
	if !ok {
		l = &sync.Mutex{}
		s.trainerLocks[trainerID] = l
	}
	s.mu.Unlock()

	l.Lock()
	defer l.Unlock()
	return fn(s)
}
