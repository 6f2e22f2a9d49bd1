package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/trim"
)

// TrimReader implements trim.Reader, resolving each intra edge's external
// cluster the same way the Intra Connector's Reader does.
type TrimReader struct{ DB *DB }

func (r TrimReader) IntraEdges(ctx context.Context) ([]trim.IntraEdge, error) {
	rows, err := r.DB.Out.QueryContext(ctx, `
		SELECT c.rowid, c.entrance_from, c.entrance_to, c.cost,
		       e.x, e.y, e.plane, e.neighbor_dir, e.cluster_id
		FROM cluster_intraconnections c
		JOIN cluster_entrances e ON e.entrance_id = c.entrance_to`)
	if err != nil {
		return nil, fmt.Errorf("store: querying intra edges: %w", err)
	}
	defer rows.Close()

	var out []trim.IntraEdge
	for rows.Next() {
		var rowID int64
		var ie trim.IntraEdge
		var x, y, plane int32
		var dirStr string
		var clusterID int64
		if err := rows.Scan(&rowID, &ie.EntranceFrom, &ie.EntranceTo, &ie.Cost, &x, &y, &plane, &dirStr, &clusterID); err != nil {
			return nil, err
		}
		ie.ID = rowID

		dir := parseDir(dirStr)
		if dir != policy.DirTP {
			dx, dy := dir.Offset()
			var extID sql.NullInt64
			row := r.DB.Out.QueryRowContext(ctx, "SELECT cluster_id FROM cluster_tiles WHERE x=? AND y=? AND plane=?", x+dx, y+dy, plane)
			if err := row.Scan(&extID); err == nil && extID.Valid && extID.Int64 != clusterID {
				v := extID.Int64
				ie.ExternalCluster = &v
			}
		}
		out = append(out, ie)
	}
	return out, rows.Err()
}

// TrimWriter implements trim.Writer over the output database.
type TrimWriter struct{ DB *DB }

func (w TrimWriter) DeleteEdges(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return withTx(ctx, w.DB.Out, func(tx *sql.Tx) error {
		placeholders := make([]string, len(ids))
		args := make([]any, len(ids))
		for i, id := range ids {
			placeholders[i] = "?"
			args[i] = id
		}
		q := "DELETE FROM cluster_intraconnections WHERE rowid IN (" + strings.Join(placeholders, ",") + ")"
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("store: deleting trimmed edges: %w", err)
		}
		return nil
	})
}
