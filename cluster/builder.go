package cluster

import (
	"context"
	"log/slog"
	"sort"

	"github.com/katalvlaran/hpagen/config"
	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/tilegraph"
)

// component is one connected component discovered during flood-fill, kept
// in lexicographic tile order as required by §4.3's canonical enumeration.
type component struct {
	tiles []tilegraph.Coord
}

func (c component) firstTile() tilegraph.Coord { return c.tiles[0] }

// Build partitions the walkable tiles of every in-scope plane into bounded
// connected components and rebuilds that plane's clusters in the output
// store. Complexity per plane: O(T*d) where T is the number of walkable
// tiles and d is the neighborhood size (4 or 8).
func Build(ctx context.Context, r Reader, w Writer, pol policy.Policy, scope config.Scope, log *slog.Logger) (Stats, error) {
	var stats Stats

	planes, err := r.Planes(ctx)
	if err != nil {
		return stats, err
	}
	if len(planes) == 0 {
		return stats, ErrNoPlanes
	}

	for _, plane := range planes {
		if !scope.IncludesPlane(plane) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		snaps, err := r.PlaneTiles(ctx, plane)
		if err != nil {
			return stats, err
		}
		snaps = filterScope(snaps, scope)
		if len(snaps) == 0 {
			if log != nil {
				log.Info("plane has no walkable tiles in scope, skipping", "plane", plane)
			}
			stats.PlanesSkipped++
			continue
		}

		clusters, tiles := buildPlane(snaps, pol, plane)
		if err := w.RebuildPlane(ctx, plane, clusters, tiles); err != nil {
			return stats, err
		}

		stats.PlanesProcessed++
		stats.ClustersCreated += len(clusters)
	}

	return stats, nil
}

func filterScope(snaps []Snapshot, scope config.Scope) []Snapshot {
	if scope.ChunkRange == nil {
		return snaps
	}
	out := snaps[:0:0]
	for _, s := range snaps {
		if scope.ChunkRange.Contains(s.Coord.X, s.Coord.Y) {
			out = append(out, s)
		}
	}
	return out
}

// buildPlane runs the deterministic flood-fill over one plane's tiles and
// returns the resulting clusters with their member tiles, ID-assigned per
// the canonical (first_tile, length) component ordering.
func buildPlane(snaps []Snapshot, pol policy.Policy, plane int32) ([]Cluster, []Tile) {
	masks := make(map[tilegraph.Coord]policy.WalkMask, len(snaps))
	for _, s := range snaps {
		masks[s.Coord] = s.Mask
	}
	masks = policy.Reconcile(masks)
	oracle := policy.NewOracle(pol, masks)

	seeds := make([]tilegraph.Coord, 0, len(snaps))
	for c := range masks {
		if !masks[c].IsZero() {
			seeds = append(seeds, c)
		}
	}
	sort.Slice(seeds, func(i, j int) bool { return seeds[i].Less(seeds[j]) })

	visited := make(map[tilegraph.Coord]bool, len(seeds))
	neighborhood := pol.Neighborhood()
	var comps []component

	for _, seed := range seeds {
		if visited[seed] {
			continue
		}
		comps = append(comps, floodFill(seed, oracle, neighborhood, visited))
	}

	sort.Slice(comps, func(i, j int) bool {
		fi, fj := comps[i].firstTile(), comps[j].firstTile()
		if fi != fj {
			return fi.Less(fj)
		}
		return len(comps[i].tiles) < len(comps[j].tiles)
	})

	clusters := make([]Cluster, 0, len(comps))
	var tiles []Tile
	for idx, comp := range comps {
		id := encodeClusterID(plane, int64(idx))
		clusters = append(clusters, Cluster{ID: id, Plane: plane, Label: int32(idx), TileCount: len(comp.tiles)})
		for _, c := range comp.tiles {
			tiles = append(tiles, Tile{ClusterID: id, X: c.X, Y: c.Y, Plane: plane})
		}
	}
	return clusters, tiles
}

// floodFill grows one component from seed using a FIFO queue, the shape
// the teacher's gridgraph.ConnectedComponents uses, extended with the
// Oracle admission test and the 64x64 bounding-box cap: a candidate
// neighbor that would blow the box is rejected and left for a later seed
// to claim instead of aborting the whole component.
func floodFill(seed tilegraph.Coord, oracle *policy.Oracle, neighborhood []policy.Dir, visited map[tilegraph.Coord]bool) component {
	visited[seed] = true
	queue := []tilegraph.Coord{seed}
	comp := []tilegraph.Coord{seed}
	minX, maxX := seed.X, seed.X
	minY, maxY := seed.Y, seed.Y

	for qi := 0; qi < len(queue); qi++ {
		cur := queue[qi]
		for _, d := range neighborhood {
			nb := policy.Neighbor(cur, d)
			if visited[nb] || !oracle.Walkable(nb) {
				continue
			}
			if !oracle.CanStep(cur, d) {
				continue
			}
			newMinX, newMaxX := minInt32(minX, nb.X), maxInt32(maxX, nb.X)
			newMinY, newMaxY := minInt32(minY, nb.Y), maxInt32(maxY, nb.Y)
			if newMaxX-newMinX >= MaxBBoxSide || newMaxY-newMinY >= MaxBBoxSide {
				continue // rejected by bbox; may still be claimed by a later component
			}
			minX, maxX, minY, maxY = newMinX, newMaxX, newMinY, newMaxY
			visited[nb] = true
			queue = append(queue, nb)
			comp = append(comp, nb)
		}
	}

	sort.Slice(comp, func(i, j int) bool { return comp[i].Less(comp[j]) })
	return component{tiles: comp}
}

// encodeClusterID packs plane into the top 8 bits and localIndex into the
// lower 56, per §3's cluster id encoding.
func encodeClusterID(plane int32, localIndex int64) int64 {
	return (int64(uint8(plane)) << 56) | (localIndex & 0x00FFFFFFFFFFFFFF)
}

func minInt32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
