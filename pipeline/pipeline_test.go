package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hpagen/pipeline"
)

type fakeChecker struct {
	complete map[pipeline.Stage]bool
	cleared  []pipeline.Stage
}

func (f *fakeChecker) IsComplete(_ context.Context, stage pipeline.Stage) (bool, error) {
	return f.complete[stage], nil
}

func (f *fakeChecker) Clear(_ context.Context, stage pipeline.Stage) error {
	f.cleared = append(f.cleared, stage)
	return nil
}

func TestExecuteRunsEveryStageInOrder(t *testing.T) {
	var ran []pipeline.Stage
	stages := map[pipeline.Stage]pipeline.StageFunc{}
	for _, s := range pipeline.Stages() {
		s := s
		stages[s] = func(ctx context.Context) error {
			ran = append(ran, s)
			return nil
		}
	}

	ex := &pipeline.Executor{Checker: &fakeChecker{complete: map[pipeline.Stage]bool{}}, Stages: stages}
	result, err := pipeline.Execute(context.Background(), ex, pipeline.Options{})

	require.NoError(t, err)
	assert.Equal(t, pipeline.Stages(), ran)
	assert.Equal(t, pipeline.Stages(), result.Ran)
	assert.Empty(t, result.Skipped)
}

func TestExecuteResumeSkipsCompletedPrefix(t *testing.T) {
	var ran []pipeline.Stage
	stages := map[pipeline.Stage]pipeline.StageFunc{}
	for _, s := range pipeline.Stages() {
		s := s
		stages[s] = func(ctx context.Context) error {
			ran = append(ran, s)
			return nil
		}
	}

	checker := &fakeChecker{complete: map[pipeline.Stage]bool{
		pipeline.StageBuild:     true,
		pipeline.StageEntrances: true,
	}}
	ex := &pipeline.Executor{Checker: checker, Stages: stages}
	result, err := pipeline.Execute(context.Background(), ex, pipeline.Options{Resume: true})

	require.NoError(t, err)
	assert.NotContains(t, ran, pipeline.StageBuild)
	assert.NotContains(t, ran, pipeline.StageEntrances)
	assert.Contains(t, ran, pipeline.StageJPS)
	assert.ElementsMatch(t, []pipeline.Stage{pipeline.StageBuild, pipeline.StageEntrances}, result.Skipped)
}

func TestExecuteForceClearsEveryStage(t *testing.T) {
	checker := &fakeChecker{complete: map[pipeline.Stage]bool{pipeline.StageBuild: true}}
	stages := map[pipeline.Stage]pipeline.StageFunc{}
	for _, s := range pipeline.Stages() {
		stages[s] = func(ctx context.Context) error { return nil }
	}

	ex := &pipeline.Executor{Checker: checker, Stages: stages}
	result, err := pipeline.Execute(context.Background(), ex, pipeline.Options{Force: true, Resume: true})

	require.NoError(t, err)
	assert.Equal(t, pipeline.Stages(), checker.cleared)
	assert.Equal(t, pipeline.Stages(), result.Ran)
	assert.Empty(t, result.Skipped)
}

func TestExecuteWrapsStageErrorAndStops(t *testing.T) {
	boom := errors.New("boom")
	stages := map[pipeline.Stage]pipeline.StageFunc{
		pipeline.StageBuild: func(ctx context.Context) error { return nil },
		pipeline.StageEntrances: func(ctx context.Context) error {
			return boom
		},
		pipeline.StageJPS: func(ctx context.Context) error {
			t.Fatal("later stages must not run after a failure")
			return nil
		},
	}

	ex := &pipeline.Executor{Checker: &fakeChecker{complete: map[pipeline.Stage]bool{}}, Stages: stages}
	_, err := pipeline.Execute(context.Background(), ex, pipeline.Options{})

	require.Error(t, err)
	var stageErr *pipeline.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, pipeline.StageEntrances, stageErr.Stage)
	assert.ErrorIs(t, err, boom)
}

func TestExecuteSkipsUnwiredStages(t *testing.T) {
	ex := &pipeline.Executor{
		Checker: &fakeChecker{complete: map[pipeline.Stage]bool{}},
		Stages:  map[pipeline.Stage]pipeline.StageFunc{},
	}
	result, err := pipeline.Execute(context.Background(), ex, pipeline.Options{})

	require.NoError(t, err)
	assert.Empty(t, result.Ran)
	assert.Empty(t, result.Skipped)
}
