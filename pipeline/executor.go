package pipeline

import (
	"context"
	"log/slog"
)

// StageFunc runs one stage's algorithm to completion.
type StageFunc func(ctx context.Context) error

// Executor runs the eight stages in order against a concrete set of
// per-stage functions and a completion checker backed by output state.
type Executor struct {
	Checker CompletionChecker
	Stages  map[Stage]StageFunc
	Log     *slog.Logger
}

// Execute runs every stage per opts, skipping the longest completed prefix
// when Resume is set, and clearing+re-running every stage when Force is set.
func Execute(ctx context.Context, ex *Executor, opts Options) (Result, error) {
	var result Result

	// inPrefix stays true while every stage so far was found complete; the
	// first incomplete stage ends the skippable prefix.
	inPrefix := opts.Resume
	for _, stage := range Stages() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if opts.Force {
			if err := ex.Checker.Clear(ctx, stage); err != nil {
				return result, &StageError{Stage: stage, Cause: err}
			}
		} else if inPrefix {
			complete, err := ex.Checker.IsComplete(ctx, stage)
			if err != nil {
				return result, &StageError{Stage: stage, Cause: err}
			}
			if complete {
				result.Skipped = append(result.Skipped, stage)
				if ex.Log != nil {
					ex.Log.Info("stage already complete, skipping", "stage", stage.String())
				}
				continue
			}
			inPrefix = false
		}

		fn, ok := ex.Stages[stage]
		if !ok {
			continue
		}
		if ex.Log != nil {
			ex.Log.Info("running stage", "stage", stage.String())
		}
		if err := fn(ctx); err != nil {
			return result, &StageError{Stage: stage, Cause: err}
		}
		result.Ran = append(result.Ran, stage)
	}

	return result, nil
}
