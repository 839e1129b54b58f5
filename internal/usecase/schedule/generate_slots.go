package schedule

import (
	"context"
	"sort"
	"time"

	domain "github.com/evofit/trainer-scheduler/internal/domain/schedule"
	"github.com/evofit/trainer-scheduler/internal/httperr"
	"github.com/evofit/trainer-scheduler/internal/timeutil"
)

// DefaultSlotStepMinutes is the spacing between candidate slot starts.
// Slot starts always fall on this grid regardless of session duration,
// so a 45 minute session still starts only on the half hour.
const DefaultSlotStepMinutes = 30

// ReasonNotAvailable is returned alongside an empty slot list when the
// trainer has no open window on the requested day. Absence of
// availability is a normal outcome, not an error.
const ReasonNotAvailable = "trainer not available this day"

type GenerateSlots struct {
	repo domain.Repository

	// StepMinutes overrides the candidate-start grid; zero means
	// DefaultSlotStepMinutes.
	StepMinutes int
}

func NewGenerateSlots(repo domain.Repository) *GenerateSlots {
	return &GenerateSlots{repo: repo}
}

func (uc *GenerateSlots) Execute(
	ctx context.Context,
	in domain.SlotsInput,
) ([]domain.Slot, string, error) {

	if in.TrainerID == 0 {
		return nil, "", httperr.ErrBusiness("missing_trainer_id")
	}
	if in.Date.IsZero() {
		return nil, "", httperr.ErrBusiness("missing_date")
	}
	if in.DurationMinutes <= 0 {
		return nil, "", httperr.ErrBusiness("invalid_duration")
	}

	step := uc.StepMinutes
	if step <= 0 {
		step = DefaultSlotStepMinutes
	}

	weekday := int(in.Date.Weekday())

	rules, err := uc.repo.ListAvailabilityForWeekday(ctx, in.TrainerID, weekday)
	if err != nil {
		return nil, "", err
	}
	if len(rules) == 0 {
		return []domain.Slot{}, ReasonNotAvailable, nil
	}

	dayStart, dayEnd := timeutil.DayBounds(in.Date)

	appointments, err := uc.repo.ListActiveAppointmentsForDay(
		ctx, in.TrainerID, dayStart, dayEnd,
	)
	if err != nil {
		return nil, "", err
	}

	duration := time.Duration(in.DurationMinutes) * time.Minute

	// Always a concrete slice: a day where nothing fits renders as an
	// empty list, same as a day with no rules.
	slots := []domain.Slot{}

	// Rules are assumed disjoint by trainer discipline; overlapping rules
	// are walked independently and not merged.
	for _, rule := range rules {
		ruleStart, err := timeutil.ParseClock(rule.StartTime)
		if err != nil {
			return nil, "", err
		}
		ruleEnd, err := timeutil.ParseClock(rule.EndTime)
		if err != nil {
			return nil, "", err
		}

		for cur := ruleStart; cur+in.DurationMinutes <= ruleEnd; cur += step {
			slotStart := timeutil.OnDate(in.Date, cur)
			slotEnd := slotStart.Add(duration)

			available := true
			for _, ap := range appointments {
				if timeutil.Overlaps(slotStart, slotEnd, ap.StartTime, ap.EndTime) {
					available = false
					break
				}
			}

			slots = append(slots, domain.Slot{
				StartTime: slotStart,
				EndTime:   slotEnd,
				Available: available,
				Location:  rule.Location,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})

	return slots, "", nil
}
