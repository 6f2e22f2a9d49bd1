// Package inter implements the Inter Connector: unit-cost boundary edges
// between the two entrances facing each other across a cluster boundary.
package inter

import (
	"context"

	"github.com/katalvlaran/hpagen/policy"
)

// BoundaryEntrance is a cardinal-direction entrance loaded from the output
// store, keyed so its opposite-direction counterpart can be located.
type BoundaryEntrance struct {
	ID          int64
	ClusterID   int64
	X, Y, Plane int32
	Dir         policy.Dir
}

// Edge is one directed inter-cluster connection.
type Edge struct {
	From, To int64
	Cost     int64
}

// Reader is the narrow read surface the Inter Connector needs: every
// cardinal boundary entrance in scope, plus the walk masks needed to
// rebuild an Oracle over the tiles each pair straddles.
type Reader interface {
	BoundaryEntrances(ctx context.Context) ([]BoundaryEntrance, error)
	TileMask(ctx context.Context, x, y, plane int32) (policy.WalkMask, bool, error)
}

// Writer upserts inter edges with MIN-merge semantics on cost collision.
type Writer interface {
	UpsertEdges(ctx context.Context, edges []Edge) error
}

// Stats summarizes one Connect invocation.
type Stats struct {
	EntrancesScanned int
	EdgesCreated     int
}
