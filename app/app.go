// Package app wires the concrete store-backed Reader/Writer implementations
// into a runnable pipeline.Executor. It is the one place allowed to import
// both store and every algorithm package, since store itself depends on
// pipeline (for pipeline.CompletionChecker) and so cannot be imported back
// from pipeline without a cycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/hpagen/cluster"
	"github.com/katalvlaran/hpagen/config"
	"github.com/katalvlaran/hpagen/entrance"
	"github.com/katalvlaran/hpagen/inter"
	"github.com/katalvlaran/hpagen/intra"
	"github.com/katalvlaran/hpagen/jps"
	"github.com/katalvlaran/hpagen/logging"
	"github.com/katalvlaran/hpagen/pipeline"
	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/store"
	"github.com/katalvlaran/hpagen/teleport"
	"github.com/katalvlaran/hpagen/trim"
)

// App holds everything one pipeline invocation needs: the opened stores,
// resolved configuration, the movement policy in effect, and a logger.
type App struct {
	DB     *store.DB
	Cfg    *config.Config
	Policy policy.Policy
	Log    *slog.Logger
	RunID  string
}

// Open connects to both databases and resolves the movement policy: the
// first run against a fresh output store seeds movement_policy from cfg,
// every later run reads the persisted value back regardless of what cfg
// says, since the policy must stay fixed once clusters are built against it.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger, runID string) (*App, error) {
	db, err := store.Open(ctx, cfg.TilesDBPath, cfg.OutDBPath)
	if err != nil {
		return nil, err
	}

	polStore := store.MovementPolicyStore{DB: db}
	pol, ok, err := polStore.Load(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	if !ok {
		pol = policy.Policy{
			AllowDiagonals: cfg.AllowDiagonals,
			AllowCornerCut: cfg.AllowCornerCut,
			UnitRadius:     cfg.UnitRadius,
		}
		if !cfg.DryRun {
			if err := polStore.Save(ctx, pol.AllowDiagonals, pol.AllowCornerCut, pol.UnitRadius); err != nil {
				db.Close()
				return nil, err
			}
		}
	}

	return &App{DB: db, Cfg: cfg, Policy: pol, Log: log, RunID: runID}, nil
}

func (a *App) Close() error { return a.DB.Close() }

// RunStage runs exactly one stage's function, ignoring resume/force
// bookkeeping — used by the single-stage CLI subcommands.
func (a *App) RunStage(ctx context.Context, stage pipeline.Stage) error {
	ex := a.Executor()
	fn, ok := ex.Stages[stage]
	if !ok {
		return fmt.Errorf("app: no function wired for stage %s", stage)
	}
	return fn(ctx)
}

// Executor assembles the pipeline.Executor against this App's store and
// configuration: one StageFunc closure per stage, plus the output-state
// completion checker.
func (a *App) Executor() *pipeline.Executor {
	movementCost := intra.MovementCost{
		Straight: a.Cfg.MovementCostStraight,
		Diagonal: a.Cfg.MovementCostDiagonal,
	}

	stages := map[pipeline.Stage]pipeline.StageFunc{
		pipeline.StageBuild: func(ctx context.Context) error {
			stats, err := cluster.Build(ctx,
				store.ClusterReader{DB: a.DB}, store.ClusterWriter{DB: a.DB},
				a.Policy, a.Cfg.Scope, a.Log)
			a.logStats(ctx, pipeline.StageBuild, stats, err)
			return err
		},
		pipeline.StageEntrances: func(ctx context.Context) error {
			stats, err := entrance.Discover(ctx,
				store.EntranceReader{DB: a.DB}, store.EntranceWriter{DB: a.DB},
				a.Cfg.Scope, a.Log)
			a.logStats(ctx, pipeline.StageEntrances, stats, err)
			return err
		},
		pipeline.StageTeleportEntrances: func(ctx context.Context) error {
			stats, err := teleport.EnsureEntrances(ctx,
				store.TeleportEntranceReader{DB: a.DB}, store.TeleportEntranceWriter{DB: a.DB}, a.Log)
			a.logStats(ctx, pipeline.StageTeleportEntrances, stats, err)
			return err
		},
		pipeline.StageIntra: func(ctx context.Context) error {
			stats, err := intra.Connect(ctx,
				store.IntraReader{DB: a.DB}, store.IntraWriter{DB: a.DB},
				a.Policy, movementCost, a.Cfg.StorePaths, a.Log)
			a.logStats(ctx, pipeline.StageIntra, stats, err)
			return err
		},
		pipeline.StageIntraTrim: func(ctx context.Context) error {
			stats, err := trim.Trim(ctx,
				store.TrimReader{DB: a.DB}, store.TrimWriter{DB: a.DB}, a.Log)
			a.logStats(ctx, pipeline.StageIntraTrim, stats, err)
			return err
		},
		pipeline.StageInter: func(ctx context.Context) error {
			stats, err := inter.Connect(ctx,
				store.InterReader{DB: a.DB}, store.InterWriter{DB: a.DB},
				a.Cfg.MovementCostStraight, a.Log)
			a.logStats(ctx, pipeline.StageInter, stats, err)
			return err
		},
		pipeline.StageTeleportEdges: func(ctx context.Context) error {
			stats, err := teleport.CreateEdges(ctx,
				store.TeleportEdgeReader{DB: a.DB}, store.TeleportEdgeWriter{DB: a.DB}, a.Log)
			a.logStats(ctx, pipeline.StageTeleportEdges, stats, err)
			return err
		},
		pipeline.StageJPS: func(ctx context.Context) error {
			stats, err := jps.Accelerate(ctx,
				store.JPSReader{DB: a.DB}, store.JPSWriter{DB: a.DB}, a.Policy, a.Cfg.Threads, a.Log)
			a.logStats(ctx, pipeline.StageJPS, stats, err)
			return err
		},
	}

	for stage, fn := range stages {
		stages[stage] = a.withAudit(stage, fn)
	}

	if a.Cfg.DryRun {
		for stage := range stages {
			stage := stage
			stages[stage] = func(ctx context.Context) error {
				if a.Log != nil {
					a.Log.Info("dry run: skipping stage", "stage", stage.String())
				}
				return nil
			}
		}
	}

	return &pipeline.Executor{
		Checker: store.Completion{DB: a.DB},
		Stages:  stages,
		Log:     a.Log,
	}
}

// withAudit records a pipeline_runs row around fn and qualifies any error
// with the stage name, logged under the same attribute set every line for
// this stage carries.
func (a *App) withAudit(stage pipeline.Stage, fn pipeline.StageFunc) pipeline.StageFunc {
	return func(ctx context.Context) error {
		runLog := store.RunLog{DB: a.DB}
		// pipeline_runs keys one row per (run_id): since one invocation of
		// exec runs every stage under the same RunID, each stage gets its
		// own audit row keyed by "<run_id>:<stage>".
		stageRunID := a.RunID + ":" + stage.String()
		now := time.Now().UTC().Format(time.RFC3339)
		if !a.Cfg.DryRun {
			if err := runLog.Start(ctx, stageRunID, stage.String(), now); err != nil && a.Log != nil {
				a.Log.Warn("recording run start failed", append(logging.StageFields(stage.String()), "error", err)...)
			}
		}

		err := fn(ctx)

		if !a.Cfg.DryRun {
			status, detail := "ok", ""
			if err != nil {
				status, detail = "error", err.Error()
			}
			finishedAt := time.Now().UTC().Format(time.RFC3339)
			if rerr := runLog.Finish(ctx, stageRunID, finishedAt, status, detail); rerr != nil && a.Log != nil {
				a.Log.Warn("recording run finish failed", append(logging.StageFields(stage.String()), "error", rerr)...)
			}
		}

		if err != nil {
			return logging.Wrap(stage.String(), err)
		}
		return nil
	}
}

func (a *App) logStats(_ context.Context, stage pipeline.Stage, stats any, err error) {
	if a.Log == nil || err != nil {
		return
	}
	a.Log.Info(fmt.Sprintf("%s stats", stage), "stats", fmt.Sprintf("%+v", stats))
}
