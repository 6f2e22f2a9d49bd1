package jps

import (
	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/tilegraph"
)

// perpendiculars returns the two cardinal directions orthogonal to a
// cardinal direction d (e.g. E -> N,S), used to test forced neighbors.
func perpendiculars(d policy.Dir) (p1, p2 policy.Dir) {
	switch d {
	case policy.DirN, policy.DirS:
		return policy.DirE, policy.DirW
	default:
		return policy.DirN, policy.DirS
	}
}

// cardinalForcedNeighbor reports whether moving from t to nt along d exposes
// a forced neighbor: a perpendicular tile blocked behind t but open beside nt.
func cardinalForcedNeighbor(t, nt tilegraph.Coord, oracle *policy.Oracle) bool {
	// direction of travel is implicit in t->nt; perpendiculars only depend on axis
	dx := nt.X - t.X
	var d policy.Dir
	if dx != 0 {
		d = policy.DirE
	} else {
		d = policy.DirN
	}
	p1, p2 := perpendiculars(d)
	for _, p := range [2]policy.Dir{p1, p2} {
		behind := policy.Neighbor(t, p)
		beside := policy.Neighbor(nt, p)
		if !oracle.Walkable(behind) && oracle.Walkable(beside) {
			return true
		}
	}
	return false
}

// jumpCardinal walks from start along d, stopping at the first jump point
// (a cell exposing a forced neighbor) or returning ok=false if the path is
// blocked or the safety bound is reached first.
func jumpCardinal(start tilegraph.Coord, d policy.Dir, oracle *policy.Oracle) (tilegraph.Coord, bool) {
	cur := start
	for steps := 0; steps < maxScanTiles; steps++ {
		if !oracle.CanStep(cur, d) {
			return tilegraph.Coord{}, false
		}
		next := policy.Neighbor(cur, d)
		if cardinalForcedNeighbor(cur, next, oracle) {
			return next, true
		}
		cur = next
	}
	return tilegraph.Coord{}, false
}

// jumpDiagonal walks from start along diagonal d, recursively probing the
// two composing cardinals from each newly entered cell; a hit in either
// sub-scan makes that cell a jump point, per the design's diagonal rule.
func jumpDiagonal(start tilegraph.Coord, d policy.Dir, allowCornerCut bool, oracle *policy.Oracle) (tilegraph.Coord, bool) {
	h, v := composingCardinalsOf(d)
	cur := start

	for steps := 0; steps < maxScanTiles; steps++ {
		if !allowCornerCut {
			if !oracle.Walkable(policy.Neighbor(cur, h)) || !oracle.Walkable(policy.Neighbor(cur, v)) {
				return tilegraph.Coord{}, false
			}
		}
		if !oracle.CanStep(cur, d) {
			return tilegraph.Coord{}, false
		}
		next := policy.Neighbor(cur, d)

		if _, ok := jumpCardinal(next, h, oracle); ok {
			return next, true
		}
		if _, ok := jumpCardinal(next, v, oracle); ok {
			return next, true
		}
		cur = next
	}
	return tilegraph.Coord{}, false
}

func composingCardinalsOf(d policy.Dir) (horizontal, vertical policy.Dir) {
	switch d {
	case policy.DirNE:
		return policy.DirE, policy.DirN
	case policy.DirSE:
		return policy.DirE, policy.DirS
	case policy.DirSW:
		return policy.DirW, policy.DirS
	case policy.DirNW:
		return policy.DirW, policy.DirN
	default:
		return policy.DirN, policy.DirS
	}
}

// computeJump dispatches to the cardinal or diagonal walk and, if a jump
// point is found, returns the Jump row for (from, d).
func computeJump(from tilegraph.Coord, d policy.Dir, allowCornerCut bool, oracle *policy.Oracle) (Jump, bool) {
	var dest tilegraph.Coord
	var ok bool
	if d.IsDiagonal() {
		dest, ok = jumpDiagonal(from, d, allowCornerCut, oracle)
	} else {
		dest, ok = jumpCardinal(from, d, oracle)
	}
	if !ok {
		return Jump{}, false
	}
	return Jump{X: from.X, Y: from.Y, Plane: from.Plane, Dir: d, NextX: dest.X, NextY: dest.Y}, true
}
