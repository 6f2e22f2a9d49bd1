package jps

import (
	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/tilegraph"
)

// computeSpan scans outward from c along both axes until a non-walkable
// tile is found or the safety bound is hit, recording the blocking
// coordinate on each side.
func computeSpan(c tilegraph.Coord, oracle *policy.Oracle) Span {
	return Span{
		X: c.X, Y: c.Y, Plane: c.Plane,
		LeftBlockAt:  scanAxis(c, policy.DirW, oracle),
		RightBlockAt: scanAxis(c, policy.DirE, oracle),
		UpBlockAt:    scanAxis(c, policy.DirN, oracle),
		DownBlockAt:  scanAxis(c, policy.DirS, oracle),
	}
}

// scanAxis walks from c in direction d until a non-walkable tile is found,
// returning its coordinate along the axis of travel (X for E/W, Y for N/S),
// or nil if the safety bound is reached first.
func scanAxis(c tilegraph.Coord, d policy.Dir, oracle *policy.Oracle) *int32 {
	dx, _ := d.Offset()
	cur := c
	for steps := 0; steps < maxScanTiles; steps++ {
		cur = policy.Neighbor(cur, d)
		if !oracle.Walkable(cur) {
			v := cur.Y
			if dx != 0 {
				v = cur.X
			}
			return &v
		}
	}
	return nil
}
