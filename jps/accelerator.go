package jps

import (
	"context"
	"log/slog"
	"runtime"
	"sort"

	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/tilegraph"
	"github.com/katalvlaran/hpagen/workerpool"
)

type tileResult struct {
	span  Span
	jumps []Jump
}

// Accelerate computes spans and jump points for every walkable tile on
// every plane the Reader reports, committing one plane at a time; no plane
// or chunk scope filter is applied. Per-tile work is
// independent, so it runs across a small worker pool; results are collected
// back in the deterministic coordinate order before writing.
func Accelerate(ctx context.Context, r Reader, w Writer, pol policy.Policy, threads int, log *slog.Logger) (Stats, error) {
	var stats Stats

	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	planes, err := r.Planes(ctx)
	if err != nil {
		return stats, err
	}

	directions := policy.CardinalDirs[:]
	if pol.AllowDiagonals {
		full := pol.Neighborhood()
		directions = full
	}

	for _, plane := range planes {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		tiles, err := r.WalkableTiles(ctx, plane)
		if err != nil {
			return stats, err
		}
		if len(tiles) == 0 {
			continue
		}

		masks := make(map[tilegraph.Coord]policy.WalkMask, len(tiles))
		coords := make([]tilegraph.Coord, 0, len(tiles))
		for _, t := range tiles {
			c := tilegraph.Coord{X: t.X, Y: t.Y, Plane: t.Plane}
			masks[c] = t.Mask
			coords = append(coords, c)
		}
		masks = policy.Reconcile(masks)
		oracle := policy.NewOracle(pol, masks)

		sort.Slice(coords, func(i, j int) bool { return coords[i].Less(coords[j]) })

		raw := workerpool.Run(len(coords), threads, func(i int) any {
			c := coords[i]
			var js []Jump
			for _, d := range directions {
				if j, ok := computeJump(c, d, pol.AllowCornerCut, oracle); ok {
					js = append(js, j)
				}
			}
			return tileResult{span: computeSpan(c, oracle), jumps: js}
		})

		var spans []Span
		var jumps []Jump
		for _, r := range raw {
			tr := r.(tileResult)
			spans = append(spans, tr.span)
			jumps = append(jumps, tr.jumps...)
		}

		if err := w.RebuildPlane(ctx, plane, spans, jumps); err != nil {
			return stats, err
		}

		stats.PlanesProcessed++
		stats.SpansCreated += len(spans)
		stats.JumpsCreated += len(jumps)

		if log != nil {
			log.Info("jps accelerated", "plane", plane, "spans", len(spans), "jumps", len(jumps))
		}
	}

	return stats, nil
}
