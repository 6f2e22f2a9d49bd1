package store

import (
	"context"
	"fmt"

	"github.com/katalvlaran/hpagen/pipeline"
)

// Completion implements pipeline.CompletionChecker against output-table
// state. Each predicate is an existence check unique to that stage. Build
// and Entrances with no output rows are treated as not done. The later
// stages are also reported done when their input offers nothing to produce
// (no teleport edges, no cluster with two entrances, no boundary entrances,
// no walkable tiles); a stage whose output is empty although it had input
// is treated as not done and re-run, since every stage's write path is
// idempotent.
type Completion struct{ DB *DB }

func (c Completion) IsComplete(ctx context.Context, stage pipeline.Stage) (bool, error) {
	var query string
	switch stage {
	case pipeline.StageBuild:
		query = "SELECT EXISTS(SELECT 1 FROM clusters)"
	case pipeline.StageEntrances:
		query = "SELECT EXISTS(SELECT 1 FROM cluster_entrances WHERE teleport_edge_id IS NULL)"
	case pipeline.StageTeleportEntrances:
		query = `SELECT EXISTS(SELECT 1 FROM cluster_entrances WHERE teleport_edge_id IS NOT NULL)
		         OR NOT EXISTS(SELECT 1 FROM abstract_teleport_edges)`
	case pipeline.StageIntra:
		query = `SELECT EXISTS(SELECT 1 FROM cluster_intraconnections)
		         OR NOT EXISTS(
		             SELECT 1 FROM cluster_entrances GROUP BY cluster_id HAVING COUNT(*) >= 2
		         )`
	case pipeline.StageIntraTrim:
		query = `SELECT NOT EXISTS(
		             SELECT entrance_from FROM cluster_intraconnections
		             GROUP BY entrance_from HAVING COUNT(*) > ?
		         )`
		return c.boolQuery(ctx, query, 5)
	case pipeline.StageInter:
		query = `SELECT EXISTS(SELECT 1 FROM cluster_interconnections)
		         OR NOT EXISTS(SELECT 1 FROM cluster_entrances WHERE teleport_edge_id IS NULL)`
	case pipeline.StageTeleportEdges:
		query = `SELECT EXISTS(
		             SELECT 1 FROM cluster_interconnections ci
		             JOIN cluster_entrances e ON e.entrance_id = ci.entrance_from
		             WHERE e.teleport_edge_id IS NOT NULL
		         ) OR NOT EXISTS(SELECT 1 FROM cluster_entrances WHERE teleport_edge_id IS NOT NULL)`
	case pipeline.StageJPS:
		done, err := c.boolQuery(ctx, "SELECT EXISTS(SELECT 1 FROM jps_spans)")
		if err != nil || done {
			return done, err
		}
		// Walkable tiles live in the separate input tiles database.
		var anyWalkable bool
		if err := c.DB.Tiles.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM tiles WHERE walk_mask != 0)").Scan(&anyWalkable); err != nil {
			return false, fmt.Errorf("store: checking stage completion: %w", err)
		}
		return !anyWalkable, nil
	default:
		return false, fmt.Errorf("store: unknown stage %v", stage)
	}
	return c.boolQuery(ctx, query)
}

func (c Completion) boolQuery(ctx context.Context, query string, args ...any) (bool, error) {
	var done bool
	if err := c.DB.Out.QueryRowContext(ctx, query, args...).Scan(&done); err != nil {
		return false, fmt.Errorf("store: checking stage completion: %w", err)
	}
	return done, nil
}

// Clear removes a stage's own output rows, used before a forced re-run.
func (c Completion) Clear(ctx context.Context, stage pipeline.Stage) error {
	var stmts []string
	switch stage {
	case pipeline.StageBuild:
		stmts = []string{"DELETE FROM cluster_tiles", "DELETE FROM clusters"}
	case pipeline.StageEntrances:
		stmts = []string{"DELETE FROM cluster_entrances WHERE teleport_edge_id IS NULL"}
	case pipeline.StageTeleportEntrances:
		stmts = []string{"DELETE FROM cluster_entrances WHERE teleport_edge_id IS NOT NULL"}
	case pipeline.StageIntra:
		stmts = []string{"DELETE FROM cluster_intraconnections"}
	case pipeline.StageIntraTrim:
		// Trimming only deletes rows; there's nothing to clear independent
		// of re-running the Intra Connector, so this is a no-op.
		return nil
	case pipeline.StageInter:
		stmts = []string{"DELETE FROM cluster_interconnections WHERE entrance_from IN (SELECT entrance_id FROM cluster_entrances WHERE teleport_edge_id IS NULL)"}
	case pipeline.StageTeleportEdges:
		stmts = []string{"DELETE FROM cluster_interconnections WHERE entrance_from IN (SELECT entrance_id FROM cluster_entrances WHERE teleport_edge_id IS NOT NULL)"}
	case pipeline.StageJPS:
		stmts = []string{"DELETE FROM jps_spans", "DELETE FROM jps_jump"}
	default:
		return fmt.Errorf("store: unknown stage %v", stage)
	}

	for _, s := range stmts {
		if _, err := c.DB.Out.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("store: clearing stage %v: %w", stage, err)
		}
	}
	return nil
}
