package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/teleport"
)

// TeleportEntranceReader implements teleport.EntranceReader (Phase A).
type TeleportEntranceReader struct{ DB *DB }

func (r TeleportEntranceReader) Edges(ctx context.Context) ([]teleport.AbstractTeleportEdge, error) {
	rows, err := r.DB.Out.QueryContext(ctx, `
		SELECT edge_id, kind, src_x, src_y, src_plane, dst_x, dst_y, dst_plane, cost, next_kind, next_edge_id
		FROM abstract_teleport_edges ORDER BY edge_id`)
	if err != nil {
		return nil, fmt.Errorf("store: querying teleport edges: %w", err)
	}
	defer rows.Close()

	var out []teleport.AbstractTeleportEdge
	for rows.Next() {
		var e teleport.AbstractTeleportEdge
		var kind string
		var sx, sy, sp, dx, dy, dp sql.NullInt64
		var nextKind sql.NullString
		var nextEdgeID sql.NullInt64
		if err := rows.Scan(&e.ID, &kind, &sx, &sy, &sp, &dx, &dy, &dp, &e.Cost, &nextKind, &nextEdgeID); err != nil {
			return nil, err
		}
		e.Kind = teleport.Kind(kind)
		if sx.Valid && sy.Valid && sp.Valid {
			e.Src = teleport.Endpoint{X: int32(sx.Int64), Y: int32(sy.Int64), Plane: int32(sp.Int64), Present: true}
		}
		e.Dst = teleport.Endpoint{X: int32(dx.Int64), Y: int32(dy.Int64), Plane: int32(dp.Int64), Present: true}
		if nextKind.Valid {
			k := teleport.Kind(nextKind.String)
			e.NextKind = &k
		}
		if nextEdgeID.Valid {
			id := nextEdgeID.Int64
			e.NextEdgeID = &id
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r TeleportEntranceReader) ClusterOf(ctx context.Context, x, y, plane int32) (int64, bool, error) {
	var clusterID int64
	err := r.DB.Out.QueryRowContext(ctx, "SELECT cluster_id FROM cluster_tiles WHERE x=? AND y=? AND plane=?", x, y, plane).Scan(&clusterID)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("store: resolving cluster for teleport endpoint: %w", err)
	}
	return clusterID, true, nil
}

func (r TeleportEntranceReader) UsedDirs(ctx context.Context, clusterID int64, x, y, plane int32) (map[policy.Dir]bool, error) {
	rows, err := r.DB.Out.QueryContext(ctx,
		"SELECT neighbor_dir FROM cluster_entrances WHERE cluster_id=? AND x=? AND y=? AND plane=?", clusterID, x, y, plane)
	if err != nil {
		return nil, fmt.Errorf("store: querying used entrance slots: %w", err)
	}
	defer rows.Close()

	used := make(map[policy.Dir]bool)
	for rows.Next() {
		var dirStr string
		if err := rows.Scan(&dirStr); err != nil {
			return nil, err
		}
		used[parseDir(dirStr)] = true
	}
	return used, rows.Err()
}

// TeleportEntranceWriter implements teleport.EntranceWriter (Phase A).
type TeleportEntranceWriter struct{ DB *DB }

func (w TeleportEntranceWriter) DeleteScopedTeleportEntrances(ctx context.Context) error {
	_, err := w.DB.Out.ExecContext(ctx, "DELETE FROM cluster_entrances WHERE teleport_edge_id IS NOT NULL")
	if err != nil {
		return fmt.Errorf("store: deleting teleport entrances: %w", err)
	}
	return nil
}

func (w TeleportEntranceWriter) InsertEntrances(ctx context.Context, entrances []teleport.NewEntrance) ([]int64, error) {
	ids := make([]int64, len(entrances))
	err := withTx(ctx, w.DB.Out, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO cluster_entrances (cluster_id, x, y, plane, neighbor_dir, teleport_edge_id) VALUES (?,?,?,?,?,?)")
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, e := range entrances {
			res, err := stmt.ExecContext(ctx, e.ClusterID, e.X, e.Y, e.Plane, e.Dir.String(), e.TeleportEdgeID)
			if err != nil {
				return fmt.Errorf("store: inserting teleport entrance: %w", err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			ids[i] = id
		}
		return nil
	})
	return ids, err
}

func (w TeleportEntranceWriter) SetEdgeEndpoints(ctx context.Context, edgeID int64, src, dst *int64) error {
	_, err := w.DB.Out.ExecContext(ctx,
		"UPDATE abstract_teleport_edges SET src_entrance = COALESCE(?, src_entrance), dst_entrance = COALESCE(?, dst_entrance) WHERE edge_id = ?",
		src, dst, edgeID)
	if err != nil {
		return fmt.Errorf("store: updating teleport edge endpoints: %w", err)
	}
	return nil
}

// TeleportEdgeReader implements teleport.EdgeReader (Phase C).
type TeleportEdgeReader struct{ DB *DB }

func (r TeleportEdgeReader) Edges(ctx context.Context) ([]teleport.AbstractTeleportEdge, error) {
	return TeleportEntranceReader{DB: r.DB}.Edges(ctx)
}

func (r TeleportEdgeReader) TeleportEntrancesByEdge(ctx context.Context) (map[int64][]teleport.MaterializedEntrance, error) {
	rows, err := r.DB.Out.QueryContext(ctx, `
		SELECT entrance_id, teleport_edge_id, x, y, plane FROM cluster_entrances
		WHERE teleport_edge_id IS NOT NULL ORDER BY entrance_id`)
	if err != nil {
		return nil, fmt.Errorf("store: querying teleport entrances: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]teleport.MaterializedEntrance)
	for rows.Next() {
		var id, edgeID int64
		var x, y, plane int32
		if err := rows.Scan(&id, &edgeID, &x, &y, &plane); err != nil {
			return nil, err
		}
		out[edgeID] = append(out[edgeID], teleport.MaterializedEntrance{EntranceID: id, X: x, Y: y, Plane: plane})
	}
	return out, rows.Err()
}

// TeleportEdgeWriter implements teleport.EdgeWriter (Phase C).
type TeleportEdgeWriter struct{ DB *DB }

func (w TeleportEdgeWriter) DeleteTeleportSourcedInterconnections(ctx context.Context) error {
	_, err := w.DB.Out.ExecContext(ctx, `
		DELETE FROM cluster_interconnections WHERE entrance_from IN (
			SELECT entrance_id FROM cluster_entrances WHERE teleport_edge_id IS NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("store: deleting teleport-sourced interconnections: %w", err)
	}
	return nil
}

func (w TeleportEdgeWriter) UpsertInterconnections(ctx context.Context, edges []teleport.Interconnection) error {
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
				return fmt.Errorf("store: upserting teleport interconnection: %w", err)
			}
		}
		return nil
	})
}
