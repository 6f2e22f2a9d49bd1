package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/katalvlaran/hpagen/intra"
	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/tilegraph"
)

// IntraReader implements intra.Reader, joining the output database's
// clusters/cluster_tiles/cluster_entrances with the input tiles database's
// walk masks (the two live in separate SQLite files, so the join happens in
// Go rather than in SQL).
type IntraReader struct{ DB *DB }

func (r IntraReader) ClustersWithMultipleEntrances(ctx context.Context) ([]intra.ClusterWork, error) {
	rows, err := r.DB.Out.QueryContext(ctx, `
		SELECT cluster_id, plane FROM clusters
		WHERE cluster_id IN (
			SELECT cluster_id FROM cluster_entrances GROUP BY cluster_id HAVING COUNT(*) >= 2
		)
		ORDER BY cluster_id`)
	if err != nil {
		return nil, fmt.Errorf("store: querying eligible clusters: %w", err)
	}
	type clusterPlane struct {
		id    int64
		plane int32
	}
	var targets []clusterPlane
	for rows.Next() {
		var cp clusterPlane
		if err := rows.Scan(&cp.id, &cp.plane); err != nil {
			rows.Close()
			return nil, err
		}
		targets = append(targets, cp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	planeMaskCache := make(map[int32]map[tilegraph.Coord]policy.WalkMask)
	var out []intra.ClusterWork
	for _, cp := range targets {
		maskByCoord, ok := planeMaskCache[cp.plane]
		if !ok {
			maskByCoord, err = loadPlaneMasks(ctx, r.DB.Tiles, cp.plane)
			if err != nil {
				return nil, err
			}
			planeMaskCache[cp.plane] = maskByCoord
		}

		tiles := make(map[tilegraph.Coord]policy.WalkMask)
		tileRows, err := r.DB.Out.QueryContext(ctx, "SELECT x, y FROM cluster_tiles WHERE cluster_id = ?", cp.id)
		if err != nil {
			return nil, fmt.Errorf("store: querying cluster tiles: %w", err)
		}
		for tileRows.Next() {
			var x, y int32
			if err := tileRows.Scan(&x, &y); err != nil {
				tileRows.Close()
				return nil, err
			}
			c := tilegraph.Coord{X: x, Y: y, Plane: cp.plane}
			tiles[c] = maskByCoord[c]
		}
		tileRows.Close()
		if err := tileRows.Err(); err != nil {
			return nil, err
		}

		entrances, err := loadClusterEntrances(ctx, r.DB.Out, cp.id, cp.plane)
		if err != nil {
			return nil, err
		}

		out = append(out, intra.ClusterWork{
			ClusterID: cp.id,
			Plane:     cp.plane,
			Tiles:     tiles,
			Entrances: entrances,
		})
	}
	return out, nil
}

func loadPlaneMasks(ctx context.Context, db *sql.DB, plane int32) (map[tilegraph.Coord]policy.WalkMask, error) {
	rows, err := db.QueryContext(ctx, "SELECT x, y, walk_mask FROM tiles WHERE plane = ?", plane)
	if err != nil {
		return nil, fmt.Errorf("store: querying tile masks: %w", err)
	}
	defer rows.Close()

	out := make(map[tilegraph.Coord]policy.WalkMask)
	for rows.Next() {
		var x, y int32
		var mask int64
		if err := rows.Scan(&x, &y, &mask); err != nil {
			return nil, err
		}
		out[tilegraph.Coord{X: x, Y: y, Plane: plane}] = policy.WalkMask(mask)
	}
	return out, rows.Err()
}

// loadClusterEntrances returns a cluster's entrances with ExternalCluster
// resolved: the cluster owning the tile immediately across the entrance's
// direction, or nil if none (teleport entrance, or the neighbor tile belongs
// to this same cluster, or lies outside the loaded set). nil rather than a
// bare 0, since cluster id 0 is itself a legitimate cluster id.
func loadClusterEntrances(ctx context.Context, db *sql.DB, clusterID int64, plane int32) ([]intra.ClusterEntrance, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT entrance_id, x, y, neighbor_dir FROM cluster_entrances
		WHERE cluster_id = ? ORDER BY entrance_id`, clusterID)
	if err != nil {
		return nil, fmt.Errorf("store: querying cluster entrances: %w", err)
	}
	defer rows.Close()

	var out []intra.ClusterEntrance
	for rows.Next() {
		var id int64
		var x, y int32
		var dirStr string
		if err := rows.Scan(&id, &x, &y, &dirStr); err != nil {
			return nil, err
		}
		dir := parseDir(dirStr)
		var ext *int64
		if dir != policy.DirTP {
			dx, dy := dir.Offset()
			var extID sql.NullInt64
			row := db.QueryRowContext(ctx, "SELECT cluster_id FROM cluster_tiles WHERE x=? AND y=? AND plane=?", x+dx, y+dy, plane)
			if err := row.Scan(&extID); err == nil && extID.Valid && extID.Int64 != clusterID {
				v := extID.Int64
				ext = &v
			}
		}
		out = append(out, intra.ClusterEntrance{ID: id, X: x, Y: y, Dir: dir, ExternalCluster: ext})
	}
	return out, rows.Err()
}

func parseDir(s string) policy.Dir {
	switch s {
	case "N":
		return policy.DirN
	case "E":
		return policy.DirE
	case "S":
		return policy.DirS
	case "W":
		return policy.DirW
	case "NE":
		return policy.DirNE
	case "SE":
		return policy.DirSE
	case "SW":
		return policy.DirSW
	case "NW":
		return policy.DirNW
	default:
		return policy.DirTP
	}
}

// IntraWriter implements intra.Writer over the output database, upserting
// one cluster's intra edges inside a single transaction with MIN-merge cost
// semantics and path-blob preservation on conflict.
type IntraWriter struct{ DB *DB }

func (w IntraWriter) UpsertCluster(ctx context.Context, clusterID int64, edges []intra.Edge) error {
	return withTx(ctx, w.DB.Out, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO cluster_intraconnections (entrance_from, entrance_to, cost, path_blob)
			VALUES (?,?,?,?)
			ON CONFLICT(entrance_from, entrance_to) DO UPDATE SET
				cost = MIN(cluster_intraconnections.cost, excluded.cost),
				path_blob = COALESCE(cluster_intraconnections.path_blob, excluded.path_blob)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, e := range edges {
			var blob []byte
			if len(e.Path) > 0 {
				blob = encodePathBlob(e.Path)
			}
			if _, err := stmt.ExecContext(ctx, e.From, e.To, e.Cost, blob); err != nil {
				return fmt.Errorf("store: upserting intra edge: %w", err)
			}
		}
		return nil
	})
}
