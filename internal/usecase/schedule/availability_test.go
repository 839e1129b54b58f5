package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evofit/trainer-scheduler/internal/httperr"
)

func TestUpsertAvailability_CreatesAndUpdates(t *testing.T) {
	repo := newStubRepo()
	uc := NewUpsertAvailability(repo, nil)

	saved, err := uc.Execute(context.Background(), 1, []AvailabilityRuleInput{
		{Weekday: 1, StartTime: "09:00", EndTime: "12:00", Location: "Studio A"},
		{Weekday: 3, StartTime: "14:00", EndTime: "18:00"},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.True(t, saved[0].IsAvailable, "availability defaults to open")

	// Same (weekday, start) updates in place instead of duplicating.
	saved, err = uc.Execute(context.Background(), 1, []AvailabilityRuleInput{
		{Weekday: 1, StartTime: "09:00", EndTime: "13:00"},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "13:00", saved[0].EndTime)

	rules, err := repo.ListAvailabilityRules(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, rules, 2)
}

func TestUpsertAvailability_OneBadRuleRejectsTheBatch(t *testing.T) {
	repo := newStubRepo()
	uc := NewUpsertAvailability(repo, nil)

	_, err := uc.Execute(context.Background(), 1, []AvailabilityRuleInput{
		{Weekday: 1, StartTime: "09:00", EndTime: "12:00"},
		{Weekday: 2, StartTime: "15:00", EndTime: "10:00"},
	})
	require.True(t, httperr.IsBusiness(err, "invalid_time_range"), "got %v", err)
	assert.Equal(t, "15:00 - 10:00", httperr.BusinessDetail(err))

	rules, err := repo.ListAvailabilityRules(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, rules, "a rejected batch must write nothing")
}

func TestUpsertAvailability_Validation(t *testing.T) {
	repo := newStubRepo()
	uc := NewUpsertAvailability(repo, nil)

	cases := []struct {
		name string
		in   AvailabilityRuleInput
		code string
	}{
		{"weekday out of range", AvailabilityRuleInput{Weekday: 7, StartTime: "09:00", EndTime: "10:00"}, "invalid_weekday"},
		{"bad start clock", AvailabilityRuleInput{Weekday: 1, StartTime: "9am", EndTime: "10:00"}, "invalid_time_range"},
		{"bad end clock", AvailabilityRuleInput{Weekday: 1, StartTime: "09:00", EndTime: "25:00"}, "invalid_time_range"},
		{"equal start and end", AvailabilityRuleInput{Weekday: 1, StartTime: "09:00", EndTime: "09:00"}, "invalid_time_range"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), 1, []AvailabilityRuleInput{tc.in})
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}
}

func TestUpsertAvailability_EmptyBatch(t *testing.T) {
	repo := newStubRepo()
	uc := NewUpsertAvailability(repo, nil)

	_, err := uc.Execute(context.Background(), 1, nil)
	assert.True(t, httperr.IsBusiness(err, "missing_rules"), "got %v", err)
}

func TestDeleteAvailability(t *testing.T) {
	repo := newStubRepo()
	repo.addRule(1, 1, "09:00", "12:00")
	ruleID := repo.rules[0].ID

	uc := NewDeleteAvailability(repo, nil)

	require.NoError(t, uc.Execute(context.Background(), 1, ruleID))

	rules, err := repo.ListAvailabilityRules(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestDeleteAvailability_MissingRuleIsNotFound(t *testing.T) {
	repo := newStubRepo()

	uc := NewDeleteAvailability(repo, nil)

	err := uc.Execute(context.Background(), 1, 404)
	assert.True(t, httperr.IsBusiness(err, "availability_rule_not_found"), "got %v", err)
}

func TestDeleteAvailability_OtherTrainersRuleReadsAsMissing(t *testing.T) {
	repo := newStubRepo()
	repo.addRule(2, 1, "09:00", "12:00")
	ruleID := repo.rules[0].ID

	uc := NewDeleteAvailability(repo, nil)

	err := uc.Execute(context.Background(), 1, ruleID)
	assert.True(t, httperr.IsBusiness(err, "availability_rule_not_found"), "got %v", err)

	rules, listErr := repo.ListAvailabilityRules(context.Background(), 2)
	require.NoError(t, listErr)
	assert.Len(t, rules, 1, "the other trainer's rule must survive")
}
