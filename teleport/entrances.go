package teleport

import (
	"context"
	"log/slog"
	"sort"

	"github.com/katalvlaran/hpagen/policy"
)

// slotCandidates is the order in which direction slots are tried for a new
// teleport entrance: TP first (the natural label), then the four cardinals
// as overflow when more than one teleport edge shares an endpoint tile and
// the (cluster,x,y,plane,dir) uniqueness constraint would otherwise collide.
var slotCandidates = []policy.Dir{policy.DirTP, policy.DirN, policy.DirE, policy.DirS, policy.DirW}

// EnsureEntrances runs Phase A: for every AbstractTeleportEdge, materialize
// an entrance row at each present endpoint. Idempotent: pre-deletes every
// existing teleport entrance before inserting. Endpoint ordering within an
// edge is (src, dst), matching the edge id's ascending iteration order, so
// a replay produces identical entrance ids.
func EnsureEntrances(ctx context.Context, r EntranceReader, w EntranceWriter, log *slog.Logger) (Stats, error) {
	var stats Stats

	edges, err := r.Edges(ctx)
	if err != nil {
		return stats, err
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })

	if err := w.DeleteScopedTeleportEntrances(ctx); err != nil {
		return stats, err
	}

	type pending struct {
		edgeID int64
		isSrc  bool
		new    NewEntrance
	}
	var plan []pending

	// usedByTile accumulates slot assignments made earlier in this same call,
	// keyed by the physical tile. Consulted before r.UsedDirs, since every
	// insert is deferred to a single batch at the end of the loop below —
	// r.UsedDirs alone would see the same (stale, pre-insert) state for every
	// endpoint and let two edges sharing a tile both pick DirTP.
	type tileKey struct {
		clusterID   int64
		x, y, plane int32
	}
	usedByTile := make(map[tileKey]map[policy.Dir]bool)

	for _, e := range edges {
		for _, ep := range []struct {
			endpoint Endpoint
			isSrc    bool
		}{{e.Src, true}, {e.Dst, false}} {
			if !ep.endpoint.Present {
				continue
			}
			clusterID, ok, err := r.ClusterOf(ctx, ep.endpoint.X, ep.endpoint.Y, ep.endpoint.Plane)
			if err != nil {
				return stats, err
			}
			if !ok {
				continue
			}

			key := tileKey{clusterID: clusterID, x: ep.endpoint.X, y: ep.endpoint.Y, plane: ep.endpoint.Plane}
			used, seen := usedByTile[key]
			if !seen {
				fromStore, err := r.UsedDirs(ctx, clusterID, ep.endpoint.X, ep.endpoint.Y, ep.endpoint.Plane)
				if err != nil {
					return stats, err
				}
				used = make(map[policy.Dir]bool, len(fromStore)+len(slotCandidates))
				for d, v := range fromStore {
					used[d] = v
				}
				usedByTile[key] = used
			}

			dir, free := pickFreeSlot(used)
			if !free {
				stats.EntrancesSkipped++
				continue
			}
			// Mark the slot used for subsequent endpoints at the same tile
			// within this same call, so two edges sharing an endpoint don't
			// both pick DirTP — this persists across loop iterations since
			// usedByTile is keyed outside the loop, unlike the insert itself.
			used[dir] = true

			plan = append(plan, pending{
				edgeID: e.ID,
				isSrc:  ep.isSrc,
				new: NewEntrance{
					ClusterID:      clusterID,
					X:              ep.endpoint.X,
					Y:              ep.endpoint.Y,
					Plane:          ep.endpoint.Plane,
					Dir:            dir,
					TeleportEdgeID: e.ID,
				},
			})
		}
	}

	if len(plan) == 0 {
		return stats, nil
	}

	newEntrances := make([]NewEntrance, len(plan))
	for i, p := range plan {
		newEntrances[i] = p.new
	}
	ids, err := w.InsertEntrances(ctx, newEntrances)
	if err != nil {
		return stats, err
	}

	byEdge := make(map[int64]struct{ src, dst *int64 })
	for i, p := range plan {
		id := ids[i]
		if id == 0 {
			continue
		}
		stats.EntrancesCreated++
		rec := byEdge[p.edgeID]
		idCopy := id
		if p.isSrc {
			rec.src = &idCopy
		} else {
			rec.dst = &idCopy
		}
		byEdge[p.edgeID] = rec
	}

	edgeIDs := make([]int64, 0, len(byEdge))
	for id := range byEdge {
		edgeIDs = append(edgeIDs, id)
	}
	sort.Slice(edgeIDs, func(i, j int) bool { return edgeIDs[i] < edgeIDs[j] })

	for _, edgeID := range edgeIDs {
		rec := byEdge[edgeID]
		if err := w.SetEdgeEndpoints(ctx, edgeID, rec.src, rec.dst); err != nil {
			return stats, err
		}
	}

	if log != nil {
		log.Info("teleport entrances ensured", "created", stats.EntrancesCreated, "skipped", stats.EntrancesSkipped)
	}

	return stats, nil
}

func pickFreeSlot(used map[policy.Dir]bool) (policy.Dir, bool) {
	for _, d := range slotCandidates {
		if !used[d] {
			return d, true
		}
	}
	return 0, false
}
