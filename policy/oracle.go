package policy

import "github.com/katalvlaran/hpagen/tilegraph"

// Oracle answers single-step passability questions against a fixed,
// pre-reconciled snapshot of walk masks. Construct one per stage invocation
// (or per plane, if memory favors it) and reuse it across every traversal
// in that scope; it never mutates its input after construction.
type Oracle struct {
	policy Policy
	masks  map[tilegraph.Coord]WalkMask
}

// NewOracle builds an Oracle over masks, which must already have been
// passed through Reconcile. The Oracle retains the map (no copy); callers
// must not mutate it afterwards.
func NewOracle(p Policy, reconciledMasks map[tilegraph.Coord]WalkMask) *Oracle {
	return &Oracle{policy: p, masks: reconciledMasks}
}

// Policy returns the movement policy this Oracle was built with.
func (o *Oracle) Policy() Policy { return o.policy }

// Walkable reports whether c carries a nonzero walk mask in scope.
func (o *Oracle) Walkable(c tilegraph.Coord) bool {
	m, ok := o.masks[c]
	return ok && !m.IsZero()
}

// Neighbor returns the coordinate one step from c in direction d.
func Neighbor(c tilegraph.Coord, d Dir) tilegraph.Coord {
	dx, dy := d.Offset()
	return tilegraph.Coord{X: c.X + dx, Y: c.Y + dy, Plane: c.Plane}
}

// canStepCardinal reports whether a single cardinal (non-diagonal) step
// from 'from' in direction d is admitted: both tiles walkable, from's bit
// for d set, and the destination's reciprocal bit set.
func (o *Oracle) canStepCardinal(from tilegraph.Coord, d Dir) bool {
	mf, ok := o.masks[from]
	if !ok || mf.IsZero() || !mf.Allows(d) {
		return false
	}
	to := Neighbor(from, d)
	mt, ok := o.masks[to]
	if !ok || mt.IsZero() || !mt.Allows(d.Opposite()) {
		return false
	}
	return true
}

// CanStep reports whether a single step from 'from' in direction d is
// legal under this Oracle's policy, per §4.1 of the design: both endpoints
// walkable, reciprocal bits set, and — for diagonals — the composing
// cardinals satisfy the configured corner-cut rule.
func (o *Oracle) CanStep(from tilegraph.Coord, d Dir) bool {
	mf, ok := o.masks[from]
	if !ok || mf.IsZero() {
		return false
	}
	to := Neighbor(from, d)
	mt, ok := o.masks[to]
	if !ok || mt.IsZero() {
		return false
	}

	if !d.IsDiagonal() {
		return mf.Allows(d) && mt.Allows(d.Opposite())
	}

	h, v := composingCardinals(d)
	pathHV := o.canStepCardinal(from, h) && o.canStepCardinal(Neighbor(from, h), v)
	pathVH := o.canStepCardinal(from, v) && o.canStepCardinal(Neighbor(from, v), h)

	if o.policy.AllowCornerCut {
		// One open L-shaped detour suffices; the other corner tile may be
		// missing or blocked.
		return pathHV || pathVH
	}
	// Both adjacent cardinal tiles must be walkable and both L-shaped
	// detours must pass the reciprocal check.
	return pathHV && pathVH
}

// CanStepTo is a convenience wrapper for callers that already know the
// destination coordinate rather than the direction; it derives d from the
// delta and returns false for any delta outside the 8-neighborhood.
func (o *Oracle) CanStepTo(from, to tilegraph.Coord) bool {
	d, ok := dirFromDelta(to.X-from.X, to.Y-from.Y)
	if !ok {
		return false
	}
	return o.CanStep(from, d)
}

func dirFromDelta(dx, dy int32) (Dir, bool) {
	for _, d := range AllDirs {
		odx, ody := d.Offset()
		if odx == dx && ody == dy {
			return d, true
		}
	}
	return 0, false
}
