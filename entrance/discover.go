package entrance

import (
	"context"
	"log/slog"
	"sort"

	"github.com/katalvlaran/hpagen/config"
	"github.com/katalvlaran/hpagen/policy"
)

// entranceKey is the natural dedup key from §4.4: (cluster_id, x, y, plane,
// neighbor_dir).
type entranceKey struct {
	clusterID int64
	x, y      int32
	dir       policy.Dir
}

// Discover finds, for every in-scope plane, every cardinal-adjacent tile
// pair that belongs to different clusters, and emits one entrance record
// per side. Complexity: O(T) per plane, T = tiles in that plane's clusters.
func Discover(ctx context.Context, r Reader, w Writer, scope config.Scope, log *slog.Logger) (Stats, error) {
	var stats Stats

	planes, err := r.Planes(ctx)
	if err != nil {
		return stats, err
	}

	for _, plane := range planes {
		if !scope.IncludesPlane(plane) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		tiles, err := r.ClusterTilesByPlane(ctx, plane)
		if err != nil {
			return stats, err
		}
		if len(tiles) == 0 {
			if log != nil {
				log.Info("plane has no cluster tiles, skipping entrance discovery", "plane", plane)
			}
			continue
		}

		owner := make(map[tileCoord]int64, len(tiles))
		for _, t := range tiles {
			owner[tileCoord{X: t.X, Y: t.Y}] = t.ClusterID
		}

		seen := make(map[entranceKey]struct{})
		var entrances []Entrance
		for _, t := range tiles {
			here := tileCoord{X: t.X, Y: t.Y}
			for _, d := range policy.CardinalDirs {
				dx, dy := d.Offset()
				there := tileCoord{X: here.X + dx, Y: here.Y + dy}
				otherCluster, ok := owner[there]
				if !ok || otherCluster == t.ClusterID {
					continue
				}
				k := entranceKey{clusterID: t.ClusterID, x: here.X, y: here.Y, dir: d}
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
				entrances = append(entrances, Entrance{
					ClusterID:   t.ClusterID,
					X:           here.X,
					Y:           here.Y,
					Plane:       plane,
					NeighborDir: d,
				})
			}
		}

		sort.Slice(entrances, func(i, j int) bool {
			a, b := entrances[i], entrances[j]
			if a.ClusterID != b.ClusterID {
				return a.ClusterID < b.ClusterID
			}
			if a.X != b.X {
				return a.X < b.X
			}
			if a.Y != b.Y {
				return a.Y < b.Y
			}
			return a.NeighborDir < b.NeighborDir
		})

		if err := w.RebuildPlane(ctx, plane, entrances); err != nil {
			return stats, err
		}

		stats.PlanesProcessed++
		stats.EntrancesCreated += len(entrances)
	}

	return stats, nil
}
