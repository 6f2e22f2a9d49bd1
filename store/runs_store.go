package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/katalvlaran/hpagen/policy"
)

// RunRecord is one row of the pipeline_runs audit trail.
type RunRecord struct {
	RunID     string
	Stage     string
	StartedAt string
	EndedAt   *string
	Status    string
	Detail    string
}

// RunLog appends and updates pipeline_runs audit rows.
type RunLog struct{ DB *DB }

func (l RunLog) Start(ctx context.Context, runID, stage, startedAt string) error {
	_, err := l.DB.Out.ExecContext(ctx,
		"INSERT INTO pipeline_runs (run_id, stage, started_at, status) VALUES (?,?,?,'running')",
		runID, stage, startedAt)
	if err != nil {
		return fmt.Errorf("store: recording run start: %w", err)
	}
	return nil
}

func (l RunLog) Finish(ctx context.Context, runID, endedAt, status, detail string) error {
	_, err := l.DB.Out.ExecContext(ctx,
		"UPDATE pipeline_runs SET ended_at = ?, status = ?, detail = ? WHERE run_id = ?",
		endedAt, status, detail, runID)
	if err != nil {
		return fmt.Errorf("store: recording run finish: %w", err)
	}
	return nil
}

// MovementPolicyStore persists the single movement_policy row (policy_id=1).
type MovementPolicyStore struct{ DB *DB }

func (m MovementPolicyStore) Save(ctx context.Context, allowDiagonals, allowCornerCut bool, unitRadius int) error {
	_, err := m.DB.Out.ExecContext(ctx, `
		INSERT INTO movement_policy (policy_id, allow_diagonals, allow_corner_cut, unit_radius_tiles)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(policy_id) DO UPDATE SET
			allow_diagonals = excluded.allow_diagonals,
			allow_corner_cut = excluded.allow_corner_cut,
			unit_radius_tiles = excluded.unit_radius_tiles`,
		boolToInt(allowDiagonals), boolToInt(allowCornerCut), unitRadius)
	if err != nil {
		return fmt.Errorf("store: saving movement policy: %w", err)
	}
	return nil
}

// Load reads the singleton movement_policy row, reporting ok=false when no
// policy has ever been saved (first run of a fresh output store).
func (m MovementPolicyStore) Load(ctx context.Context) (policy.Policy, bool, error) {
	var diag, corner, radius int
	err := m.DB.Out.QueryRowContext(ctx,
		"SELECT allow_diagonals, allow_corner_cut, unit_radius_tiles FROM movement_policy WHERE policy_id = 1").
		Scan(&diag, &corner, &radius)
	if err == sql.ErrNoRows {
		return policy.Policy{}, false, nil
	}
	if err != nil {
		return policy.Policy{}, false, fmt.Errorf("store: loading movement policy: %w", err)
	}
	return policy.Policy{AllowDiagonals: diag != 0, AllowCornerCut: corner != 0, UnitRadius: radius}, true, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
