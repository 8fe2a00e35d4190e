package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRunSteps_BestEffortFailuresBecomeWarnings(t *testing.T) {
	var order []string
	steps := []Step{
		{Name: "first", Policy: StepBestEffort, Run: func(ctx context.Context) error {
			order = append(order, "first")
			return errors.New("boom")
		}},
		{Name: "second", Policy: StepRequired, Run: func(ctx context.Context) error {
			order = append(order, "second")
			return nil
		}},
	}

	warnings, err := RunSteps(context.Background(), zap.NewNop(), steps)
	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "first")
	assert.Contains(t, warnings[0], "boom")
}

func TestRunSteps_RequiredFailureAborts(t *testing.T) {
	ran := false
	steps := []Step{
		{Name: "warn", Policy: StepBestEffort, Run: func(ctx context.Context) error {
			return errors.New("minor")
		}},
		{Name: "critical", Policy: StepRequired, Run: func(ctx context.Context) error {
			return errors.New("fatal")
		}},
		{Name: "after", Policy: StepRequired, Run: func(ctx context.Context) error {
			ran = true
			return nil
		}},
	}

	warnings, err := RunSteps(context.Background(), zap.NewNop(), steps)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "critical")
	assert.False(t, ran, "steps after a required failure must not run")
	// Warnings collected before the abort are preserved.
	assert.Len(t, warnings, 1)
}

func TestRunSteps_Empty(t *testing.T) {
	warnings, err := RunSteps(context.Background(), zap.NewNop(), nil)
	assert.NoError(t, err)
	assert.Empty(t, warnings)
}
