package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/katalvlaran/hpagen/cluster"
	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/tilegraph"
)

// ClusterReader implements cluster.Reader over the input tiles database.
type ClusterReader struct{ DB *DB }

func (r ClusterReader) Planes(ctx context.Context) ([]int32, error) {
	return queryPlanes(ctx, r.DB.Tiles, "SELECT DISTINCT plane FROM tiles ORDER BY plane")
}

func (r ClusterReader) PlaneTiles(ctx context.Context, plane int32) ([]cluster.Snapshot, error) {
	rows, err := r.DB.Tiles.QueryContext(ctx, "SELECT x, y, walk_mask FROM tiles WHERE plane = ?", plane)
	if err != nil {
		return nil, fmt.Errorf("store: querying plane tiles: %w", err)
	}
	defer rows.Close()

	var out []cluster.Snapshot
	for rows.Next() {
		var x, y int32
		var mask int64
		if err := rows.Scan(&x, &y, &mask); err != nil {
			return nil, fmt.Errorf("store: scanning tile: %w", err)
		}
		out = append(out, cluster.Snapshot{
			Coord: tilegraph.Coord{X: x, Y: y, Plane: plane},
			Mask:  policy.WalkMask(mask),
		})
	}
	return out, rows.Err()
}

// ClusterWriter implements cluster.Writer over the output database.
type ClusterWriter struct{ DB *DB }

func (w ClusterWriter) RebuildPlane(ctx context.Context, plane int32, clusters []cluster.Cluster, tiles []cluster.Tile) error {
	return withTx(ctx, w.DB.Out, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM cluster_tiles WHERE plane = ?", plane); err != nil {
			return fmt.Errorf("store: deleting cluster_tiles: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM clusters WHERE plane = ?", plane); err != nil {
			return fmt.Errorf("store: deleting clusters: %w", err)
		}

		insCluster, err := tx.PrepareContext(ctx, "INSERT INTO clusters (cluster_id, plane, label, tile_count) VALUES (?,?,?,?)")
		if err != nil {
			return err
		}
		defer insCluster.Close()
		for _, c := range clusters {
			if _, err := insCluster.ExecContext(ctx, c.ID, c.Plane, c.Label, c.TileCount); err != nil {
				return fmt.Errorf("store: inserting cluster: %w", err)
			}
		}

		insTile, err := tx.PrepareContext(ctx, "INSERT INTO cluster_tiles (cluster_id, x, y, plane) VALUES (?,?,?,?)")
		if err != nil {
			return err
		}
		defer insTile.Close()
		for _, t := range tiles {
			if _, err := insTile.ExecContext(ctx, t.ClusterID, t.X, t.Y, t.Plane); err != nil {
				return fmt.Errorf("store: inserting cluster tile: %w", err)
			}
		}
		return nil
	})
}

func queryPlanes(ctx context.Context, db *sql.DB, query string) ([]int32, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: querying planes: %w", err)
	}
	defer rows.Close()

	var out []int32
	for rows.Next() {
		var p int32
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
