// Package cluster implements the Cluster Builder: it partitions the
// walkable tiles of each in-scope plane into connected components bounded
// to a 64x64 tile bounding box, assigning each component a deterministic
// cluster id.
package cluster

import (
	"context"
	"errors"

	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/tilegraph"
)

// MaxBBoxSide is the maximum width and height, in tiles, a cluster's
// bounding box may span.
const MaxBBoxSide = 64

// Sentinel errors for cluster operations.
var (
	// ErrNoPlanes indicates the tile reader reported zero planes in scope.
	ErrNoPlanes = errors.New("cluster: no planes in scope")
)

// Cluster is one connected component of walkable tiles, bounded to a
// 64x64 bbox. ID is assigned deterministically per §4.3: (plane<<56)|local.
type Cluster struct {
	ID        int64
	Plane     int32
	Label     int32
	TileCount int
}

// Tile is a single member tile of a Cluster.
type Tile struct {
	ClusterID int64
	X, Y      int32
	Plane     int32
}

// Snapshot pairs a coordinate with its decoded (not yet reconciled) walk
// mask, as read from the tile store.
type Snapshot struct {
	Coord tilegraph.Coord
	Mask  policy.WalkMask
}

// Reader is the narrow read surface the Cluster Builder needs from the
// tile store.
type Reader interface {
	// Planes returns every plane id present in the tile store.
	Planes(ctx context.Context) ([]int32, error)
	// PlaneTiles returns every walkable tile on plane, in no particular
	// order; the builder is responsible for sorting.
	PlaneTiles(ctx context.Context, plane int32) ([]Snapshot, error)
}

// Writer is the narrow write surface the Cluster Builder needs from the
// output store. RebuildPlane must delete any existing clusters (and their
// tiles) for plane before inserting the new set, atomically.
type Writer interface {
	RebuildPlane(ctx context.Context, plane int32, clusters []Cluster, tiles []Tile) error
}

// Stats summarizes one Build invocation.
type Stats struct {
	PlanesProcessed int
	PlanesSkipped   int
	ClustersCreated int
}
