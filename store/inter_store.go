package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/katalvlaran/hpagen/inter"
	"github.com/katalvlaran/hpagen/policy"
)

// InterReader implements inter.Reader.
type InterReader struct{ DB *DB }

func (r InterReader) BoundaryEntrances(ctx context.Context) ([]inter.BoundaryEntrance, error) {
	rows, err := r.DB.Out.QueryContext(ctx, `
		SELECT entrance_id, cluster_id, x, y, plane, neighbor_dir FROM cluster_entrances
		WHERE neighbor_dir IN ('N','E','S','W')
		ORDER BY entrance_id`)
	if err != nil {
		return nil, fmt.Errorf("store: querying boundary entrances: %w", err)
	}
	defer rows.Close()

	var out []inter.BoundaryEntrance
	for rows.Next() {
		var e inter.BoundaryEntrance
		var dirStr string
		if err := rows.Scan(&e.ID, &e.ClusterID, &e.X, &e.Y, &e.Plane, &dirStr); err != nil {
			return nil, err
		}
		e.Dir = parseDir(dirStr)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r InterReader) TileMask(ctx context.Context, x, y, plane int32) (policy.WalkMask, bool, error) {
	var mask int64
	err := r.DB.Tiles.QueryRowContext(ctx, "SELECT walk_mask FROM tiles WHERE x=? AND y=? AND plane=?", x, y, plane).Scan(&mask)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("store: querying tile mask: %w", err)
	}
	return policy.WalkMask(mask), true, nil
}

// InterWriter implements inter.Writer with MIN-merge upsert semantics.
type InterWriter struct{ DB *DB }

func (w InterWriter) UpsertEdges(ctx context.Context, edges []inter.Edge) error {
	return withTx(ctx, w.DB.Out, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO cluster_interconnections (entrance_from, entrance_to, cost)
			VALUES (?,?,?)
			ON CONFLICT(entrance_from, entrance_to) DO UPDATE SET
				cost = MIN(cluster_interconnections.cost, excluded.cost)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, e := range edges {
			if _, err := stmt.ExecContext(ctx, e.From, e.To, e.Cost); err != nil {
				return fmt.Errorf("store: upserting inter edge: %w", err)
			}
		}
		return nil
	})
}
