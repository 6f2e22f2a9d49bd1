// Package jps implements the JPS Accelerator: per-tile axis spans and
// per-direction jump points, precomputed once so later pathfinding over the
// abstract graph can skip runs of uninteresting tiles.
package jps

import (
	"context"

	"github.com/katalvlaran/hpagen/policy"
)

// maxScanTiles is the world-bound safeguard: no single-axis or single-
// direction scan walks further than this many tiles before giving up.
const maxScanTiles = 10000

// Span records, for one tile, the first non-walkable coordinate reached
// scanning outward along each cardinal axis. A nil field means the scan hit
// the safety bound without finding a blocker.
type Span struct {
	X, Y, Plane                                       int32
	LeftBlockAt, RightBlockAt, UpBlockAt, DownBlockAt *int32
}

// Jump records the jump point reached from one tile in one direction.
type Jump struct {
	X, Y, Plane int32
	Dir         policy.Dir
	NextX       int32
	NextY       int32
}

// Tile is a walkable tile the accelerator needs to process, carrying its
// directional walk mask as stored; Accelerate reconciles each plane's masks
// before using them.
type Tile struct {
	X, Y, Plane int32
	Mask        policy.WalkMask
}

// Reader is the narrow read surface the JPS Accelerator needs.
type Reader interface {
	WalkableTiles(ctx context.Context, plane int32) ([]Tile, error)
	Planes(ctx context.Context) ([]int32, error)
}

// Writer persists the computed spans and jumps for one plane.
type Writer interface {
	RebuildPlane(ctx context.Context, plane int32, spans []Span, jumps []Jump) error
}

// Stats summarizes one Accelerate invocation.
type Stats struct {
	PlanesProcessed int
	SpansCreated    int
	JumpsCreated    int
}
