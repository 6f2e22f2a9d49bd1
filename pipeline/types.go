// Package pipeline implements the Executor: it runs the eight precomputation
// stages in order, detecting completion from output state rather than a
// meta flag, and supports resuming or forcing a re-run.
package pipeline

import (
	"context"
	"fmt"
)

// Stage identifies one of the eight pipeline stages, in execution order.
type Stage int

const (
	StageBuild Stage = iota
	StageEntrances
	StageTeleportEntrances
	StageIntra
	StageIntraTrim
	StageInter
	StageTeleportEdges
	StageJPS
	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageBuild:
		return "build"
	case StageEntrances:
		return "entrances"
	case StageTeleportEntrances:
		return "teleport-entrances"
	case StageIntra:
		return "intra"
	case StageIntraTrim:
		return "intra-trim"
	case StageInter:
		return "inter"
	case StageTeleportEdges:
		return "teleport-edges"
	case StageJPS:
		return "jps"
	default:
		return "unknown"
	}
}

// Stages enumerates every stage in execution order.
func Stages() []Stage {
	out := make([]Stage, stageCount)
	for i := range out {
		out[i] = Stage(i)
	}
	return out
}

// StageError wraps a failure with the stage it occurred in, so the executor
// can report progress precisely and callers can resume from the right point.
type StageError struct {
	Stage Stage
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline: stage %s: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error { return e.Cause }

// CompletionChecker reports whether a stage's output state already reflects
// a completed run, and can clear that state for a forced re-run.
type CompletionChecker interface {
	// IsComplete inspects output-table state for evidence the stage already
	// ran (existence of at least one row meeting a stage-specific
	// condition), not a meta flag.
	IsComplete(ctx context.Context, stage Stage) (bool, error)
	// Clear removes a stage's own output state, used before a forced
	// re-run.
	Clear(ctx context.Context, stage Stage) error
}

// Runner executes one stage's algorithm against the wired store.
type Runner interface {
	Run(ctx context.Context, stage Stage) error
}

// Options controls one Execute invocation.
type Options struct {
	// Resume skips the longest completed prefix of stages.
	Resume bool
	// Force ignores completion state: every stage clears its own output
	// and re-executes regardless of prior state.
	Force bool
}

// Result summarizes one Execute invocation.
type Result struct {
	Ran     []Stage
	Skipped []Stage
}
