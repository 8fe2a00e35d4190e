package booking

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// StepPolicy tags a submission step as required or best-effort.
type StepPolicy string

const (
	StepRequired   StepPolicy = "required"
	StepBestEffort StepPolicy = "best-effort"
)

// Step is one unit of work in the submission pipeline.
type Step struct {
	Name   string
	Policy StepPolicy
	Run    func(ctx context.Context) error
}

// RunSteps executes steps in order. A failing best-effort step is logged and
// recorded as a warning; a failing required step aborts the pipeline and
// returns the error together with the warnings accumulated so far.
func RunSteps(ctx context.Context, logger *zap.Logger, steps []Step) ([]string, error) {
	var warnings []string
	for _, step := range steps {
		if err := step.Run(ctx); err != nil {
			if step.Policy == StepBestEffort {
				logger.Warn("best-effort step failed",
					zap.String("step", step.Name), zap.Error(err))
				warnings = append(warnings, fmt.Sprintf("%s: %v", step.Name, err))
				continue
			}
			return warnings, fmt.Errorf("%s failed: %w", step.Name, err)
		}
	}
	return warnings, nil
}
