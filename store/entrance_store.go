package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/katalvlaran/hpagen/entrance"
)

// EntranceReader implements entrance.Reader over the output database's
// cluster_tiles, which the Cluster Builder already populated.
type EntranceReader struct{ DB *DB }

func (r EntranceReader) Planes(ctx context.Context) ([]int32, error) {
	return queryPlanes(ctx, r.DB.Out, "SELECT DISTINCT plane FROM clusters ORDER BY plane")
}

func (r EntranceReader) ClusterTilesByPlane(ctx context.Context, plane int32) ([]entrance.ClusterTile, error) {
	rows, err := r.DB.Out.QueryContext(ctx, "SELECT cluster_id, x, y FROM cluster_tiles WHERE plane = ?", plane)
	if err != nil {
		return nil, fmt.Errorf("store: querying cluster tiles: %w", err)
	}
	defer rows.Close()

	var out []entrance.ClusterTile
	for rows.Next() {
		var t entrance.ClusterTile
		if err := rows.Scan(&t.ClusterID, &t.X, &t.Y); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// EntranceWriter implements entrance.Writer over the output database.
type EntranceWriter struct{ DB *DB }

func (w EntranceWriter) RebuildPlane(ctx context.Context, plane int32, entrances []entrance.Entrance) error {
	return withTx(ctx, w.DB.Out, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM cluster_entrances WHERE plane = ? AND teleport_edge_id IS NULL`, plane); err != nil {
			return fmt.Errorf("store: deleting boundary entrances: %w", err)
		}

		ins, err := tx.PrepareContext(ctx,
			`INSERT INTO cluster_entrances (cluster_id, x, y, plane, neighbor_dir) VALUES (?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer ins.Close()
		for _, e := range entrances {
			if _, err := ins.ExecContext(ctx, e.ClusterID, e.X, e.Y, plane, e.NeighborDir.String()); err != nil {
				return fmt.Errorf("store: inserting entrance: %w", err)
			}
		}
		return nil
	})
}
