package inter

import (
	"context"
	"log/slog"
	"sort"

	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/tilegraph"
)

type entranceKey struct {
	x, y, plane int32
	dir         policy.Dir
}

// Connect matches every cardinal boundary entrance against the entrance
// facing it from the opposite direction one tile over, admits the step
// through the Oracle, and upserts a bidirectional unit-cost edge pair.
func Connect(ctx context.Context, r Reader, w Writer, costStraight int64, log *slog.Logger) (Stats, error) {
	var stats Stats

	entrances, err := r.BoundaryEntrances(ctx)
	if err != nil {
		return stats, err
	}

	byKey := make(map[entranceKey]BoundaryEntrance, len(entrances))
	for _, e := range entrances {
		byKey[entranceKey{x: e.X, y: e.Y, plane: e.Plane, dir: e.Dir}] = e
	}

	var edges []Edge
	seenPairs := make(map[[2]int64]bool)

	for _, e := range entrances {
		stats.EntrancesScanned++
		dx, dy := e.Dir.Offset()
		oKey := entranceKey{x: e.X + dx, y: e.Y + dy, plane: e.Plane, dir: e.Dir.Opposite()}
		o, ok := byKey[oKey]
		if !ok {
			continue
		}

		pairID := [2]int64{e.ID, o.ID}
		if pairID[0] > pairID[1] {
			pairID[0], pairID[1] = pairID[1], pairID[0]
		}
		if seenPairs[pairID] {
			continue
		}
		seenPairs[pairID] = true

		if !admits(ctx, r, e, o) {
			continue
		}

		edges = append(edges,
			Edge{From: e.ID, To: o.ID, Cost: costStraight},
			Edge{From: o.ID, To: e.ID, Cost: costStraight},
		)
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})

	if len(edges) > 0 {
		if err := w.UpsertEdges(ctx, edges); err != nil {
			return stats, err
		}
	}
	stats.EdgesCreated = len(edges)

	if log != nil {
		log.Info("inter edges computed", "scanned", stats.EntrancesScanned, "edges", stats.EdgesCreated)
	}

	return stats, nil
}

// admits builds a two-tile Oracle over e and o's coordinates and asks
// whether the cardinal step between them is legal.
func admits(ctx context.Context, r Reader, e, o BoundaryEntrance) bool {
	eCoord := tilegraph.Coord{X: e.X, Y: e.Y, Plane: e.Plane}
	oCoord := tilegraph.Coord{X: o.X, Y: o.Y, Plane: o.Plane}

	eMask, ok, err := r.TileMask(ctx, e.X, e.Y, e.Plane)
	if err != nil || !ok {
		return false
	}
	oMask, ok, err := r.TileMask(ctx, o.X, o.Y, o.Plane)
	if err != nil || !ok {
		return false
	}

	masks := map[tilegraph.Coord]policy.WalkMask{eCoord: eMask, oCoord: oMask}
	oracle := policy.NewOracle(policy.Policy{}, masks)
	return oracle.CanStep(eCoord, e.Dir)
}
