package schedule

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/evofit/trainer-scheduler/internal/audit"
	domain "github.com/evofit/trainer-scheduler/internal/domain/schedule"
	"github.com/evofit/trainer-scheduler/internal/httperr"
	"github.com/evofit/trainer-scheduler/internal/models"
	"github.com/evofit/trainer-scheduler/internal/timeutil"
)

// ======================================================
// INPUT
// ======================================================

type AvailabilityRuleInput struct {
	Weekday     int    `json:"weekday" binding:"min=0,max=6"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	IsAvailable *bool  `json:"is_available"`
	Location    string `json:"location"`
}

// ======================================================
// UPSERT
// ======================================================

type UpsertAvailability struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpsertAvailability(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpsertAvailability {
	return &UpsertAvailability{
		repo:  repo,
		audit: audit,
	}
}

// Execute validates the whole batch before writing anything: one bad
// rule rejects the batch. Valid rules are upserted keyed on
// (trainer, weekday, start_time).
func (uc *UpsertAvailability) Execute(
	ctx context.Context,
	trainerID uint,
	inputs []AvailabilityRuleInput,
) ([]models.AvailabilityRule, error) {

	if len(inputs) == 0 {
		return nil, httperr.ErrBusiness("missing_rules")
	}

	rules := make([]models.AvailabilityRule, 0, len(inputs))

	for _, in := range inputs {
		if in.Weekday < 0 || in.Weekday > 6 {
			return nil, httperr.ErrBusinessf("invalid_weekday", in.StartTime+" - "+in.EndTime)
		}

		start, err := timeutil.ParseClock(in.StartTime)
		if err != nil {
			return nil, httperr.ErrBusinessf("invalid_time_range", in.StartTime+" - "+in.EndTime)
		}
		end, err := timeutil.ParseClock(in.EndTime)
		if err != nil {
			return nil, httperr.ErrBusinessf("invalid_time_range", in.StartTime+" - "+in.EndTime)
		}
		if start >= end {
			return nil, httperr.ErrBusinessf("invalid_time_range", in.StartTime+" - "+in.EndTime)
		}

		available := true
		if in.IsAvailable != nil {
			available = *in.IsAvailable
		}

		rules = append(rules, models.AvailabilityRule{
			TrainerID:   trainerID,
			Weekday:     in.Weekday,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
			IsAvailable: available,
			Location:    in.Location,
		})
	}

	saved, err := uc.repo.UpsertAvailabilityRules(ctx, rules)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TrainerID: trainerID,
		ActorID:   &trainerID,
		Action:    "availability_updated",
		Entity:    "availability_rule",
		Metadata:  map[string]any{"rules": len(saved)},
	})

	return saved, nil
}

// ======================================================
// LIST
// ======================================================

type ListAvailability struct {
	repo domain.Repository
}

func NewListAvailability(repo domain.Repository) *ListAvailability {
	return &ListAvailability{repo: repo}
}

func (uc *ListAvailability) Execute(
	ctx context.Context,
	trainerID uint,
) ([]models.AvailabilityRule, error) {
	return uc.repo.ListAvailabilityRules(ctx, trainerID)
}

// ======================================================
// DELETE
// ======================================================

type DeleteAvailability struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAvailability(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAvailability {
	return &DeleteAvailability{
		repo:  repo,
		audit: audit,
	}
}

// Execute deletes a single rule after loading it for the ownership
// check. A rule owned by another trainer reads as NotFound so rule ids
// cannot be enumerated across calendars.
func (uc *DeleteAvailability) Execute(
	ctx context.Context,
	trainerID uint,
	ruleID uint,
) error {

	rule, err := uc.repo.GetAvailabilityRule(ctx, ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("availability_rule_not_found")
		}
		return err
	}
	if rule.TrainerID != trainerID {
		return httperr.ErrBusiness("availability_rule_not_found")
	}

	if err := uc.repo.DeleteAvailabilityRule(ctx, trainerID, ruleID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		TrainerID: trainerID,
		ActorID:   &trainerID,
		Action:    "availability_deleted",
		Entity:    "availability_rule",
		EntityID:  &ruleID,
	})

	return nil
}
