package policy

import "github.com/katalvlaran/hpagen/tilegraph"

// Reconcile clears, for every tile in masks, any bit whose reciprocal
// direction on the corresponding neighbor is unset, and additionally clears
// a diagonal bit when either of its two composing cardinal bits did not
// survive. This makes passability symmetric: no tile admits a step its
// neighbor would refuse on the way back.
//
// masks is mutated in place and also returned for call-site convenience.
// Tiles not present in masks are treated as non-walkable neighbors; a
// missing neighbor clears the corresponding bit exactly like a blocked one.
//
// Complexity: O(T*d) where T = len(masks), d = up to 8 directions.
func Reconcile(masks map[tilegraph.Coord]WalkMask) map[tilegraph.Coord]WalkMask {
	// First pass: reconcile cardinals (and, implicitly, diagonals' raw bits)
	// against neighbor reciprocals.
	reconciled := make(map[tilegraph.Coord]WalkMask, len(masks))
	for c, m := range masks {
		out := m
		for _, d := range AllDirs {
			if !out.Allows(d) {
				continue
			}
			dx, dy := d.Offset()
			nc := tilegraph.Coord{X: c.X + dx, Y: c.Y + dy, Plane: c.Plane}
			nm, ok := masks[nc]
			if !ok || !nm.Allows(d.Opposite()) {
				out = out.Clear(d)
			}
		}
		reconciled[c] = out
	}

	// Second pass: a diagonal bit can only survive if both of its composing
	// cardinal bits survived reconciliation on the same tile.
	for c, m := range reconciled {
		out := m
		for _, d := range DiagonalDirs {
			if !out.Allows(d) {
				continue
			}
			h, v := composingCardinals(d)
			if !out.Allows(h) || !out.Allows(v) {
				out = out.Clear(d)
			}
		}
		reconciled[c] = out
	}

	for c, m := range reconciled {
		masks[c] = m
	}
	return masks
}

// composingCardinals returns the horizontal then vertical cardinal that
// compose a diagonal direction, e.g. NE -> (E, N).
func composingCardinals(d Dir) (horizontal, vertical Dir) {
	switch d {
	case DirNE:
		return DirE, DirN
	case DirSE:
		return DirE, DirS
	case DirSW:
		return DirW, DirS
	case DirNW:
		return DirW, DirN
	default:
		return d, d
	}
}
