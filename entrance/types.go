// Package entrance implements the Entrance Discoverer: it finds
// cardinal-adjacent tile pairs belonging to different clusters on the same
// plane and materializes a pair of boundary Entrance rows for each.
// Teleport endpoints are handled separately by the teleport package's
// Phase A (the TeleportEntrances stage), not here.
package entrance

import (
	"context"

	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/tilegraph"
)

// Entrance is a boundary tile of a cluster, labeled with the outward
// direction toward the neighboring cluster it exits into.
type Entrance struct {
	ID             int64
	ClusterID      int64
	X, Y, Plane    int32
	NeighborDir    policy.Dir
	TeleportEdgeID *int64
}

// ClusterTile associates a tile with the cluster that owns it, as loaded
// back from the output store (produced by the Cluster Builder).
type ClusterTile struct {
	ClusterID int64
	X, Y      int32
}

// Reader is the narrow read surface the Entrance Discoverer needs.
type Reader interface {
	Planes(ctx context.Context) ([]int32, error)
	ClusterTilesByPlane(ctx context.Context, plane int32) ([]ClusterTile, error)
}

// Writer is the narrow write surface. RebuildPlane must delete every
// existing boundary entrance on plane (teleport entrances are left in
// place) before inserting the new set, atomically, implementing the
// idempotence required by §4.4.
type Writer interface {
	RebuildPlane(ctx context.Context, plane int32, entrances []Entrance) error
}

// Stats summarizes one Discover invocation.
type Stats struct {
	PlanesProcessed  int
	EntrancesCreated int
}

// tileCoord is a 2D coordinate without a plane component, used for the
// per-plane tile->cluster map since the map itself is already plane-scoped.
type tileCoord struct{ X, Y int32 }

func toCoord(c tileCoord, plane int32) tilegraph.Coord {
	return tilegraph.Coord{X: c.X, Y: c.Y, Plane: plane}
}
