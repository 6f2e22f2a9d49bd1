package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/katalvlaran/hpagen/jps"
	"github.com/katalvlaran/hpagen/policy"
)

// JPSReader implements jps.Reader over the input tiles database's walk
// masks.
type JPSReader struct{ DB *DB }

func (r JPSReader) Planes(ctx context.Context) ([]int32, error) {
	return queryPlanes(ctx, r.DB.Tiles, "SELECT DISTINCT plane FROM tiles ORDER BY plane")
}

func (r JPSReader) WalkableTiles(ctx context.Context, plane int32) ([]jps.Tile, error) {
	rows, err := r.DB.Tiles.QueryContext(ctx, "SELECT x, y, walk_mask FROM tiles WHERE plane = ? AND walk_mask != 0", plane)
	if err != nil {
		return nil, fmt.Errorf("store: querying walkable tiles: %w", err)
	}
	defer rows.Close()

	var out []jps.Tile
	for rows.Next() {
		var t jps.Tile
		var mask int64
		if err := rows.Scan(&t.X, &t.Y, &mask); err != nil {
			return nil, err
		}
		t.Plane = plane
		t.Mask = policy.WalkMask(mask)
		out = append(out, t)
	}
	return out, rows.Err()
}

// JPSWriter implements jps.Writer.
type JPSWriter struct{ DB *DB }

func (w JPSWriter) RebuildPlane(ctx context.Context, plane int32, spans []jps.Span, jumps []jps.Jump) error {
	return withTx(ctx, w.DB.Out, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM jps_spans WHERE plane = ?", plane); err != nil {
			return fmt.Errorf("store: deleting jps_spans: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM jps_jump WHERE plane = ?", plane); err != nil {
			return fmt.Errorf("store: deleting jps_jump: %w", err)
		}

		spanStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO jps_spans (x, y, plane, left_block_at, right_block_at, up_block_at, down_block_at)
			VALUES (?,?,?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer spanStmt.Close()
		for _, s := range spans {
			if _, err := spanStmt.ExecContext(ctx, s.X, s.Y, s.Plane, s.LeftBlockAt, s.RightBlockAt, s.UpBlockAt, s.DownBlockAt); err != nil {
				return fmt.Errorf("store: inserting jps span: %w", err)
			}
		}

		jumpStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO jps_jump (x, y, plane, dir, next_x, next_y) VALUES (?,?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer jumpStmt.Close()
		for _, j := range jumps {
			if _, err := jumpStmt.ExecContext(ctx, j.X, j.Y, j.Plane, int(j.Dir), j.NextX, j.NextY); err != nil {
				return fmt.Errorf("store: inserting jps jump: %w", err)
			}
		}
		return nil
	})
}
