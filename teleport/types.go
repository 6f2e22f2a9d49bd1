// Package teleport implements the Teleport Connector's two phases: Phase A
// materializes entrance rows for each AbstractTeleportEdge endpoint before
// the Intra Connector runs; Phase C wires the directed interconnections
// after the Inter Connector runs.
package teleport

import (
	"context"

	"github.com/katalvlaran/hpagen/policy"
)

// Kind distinguishes a door (bidirectional) teleport from one-way kinds
// (npc, object, lodestone, item, ifslot).
type Kind string

const (
	KindDoor      Kind = "door"
	KindNPC       Kind = "npc"
	KindObject    Kind = "object"
	KindLodestone Kind = "lodestone"
	KindItem      Kind = "item"
	KindIfSlot    Kind = "ifslot"
)

// Endpoint is one side of an AbstractTeleportEdge; a nil coordinate (all
// three fields absent) models a lodestone-like edge with no source tile.
type Endpoint struct {
	X, Y, Plane int32
	Present     bool
}

// AbstractTeleportEdge is a teleport link as loaded from the input store,
// independent of any entrance materialization.
type AbstractTeleportEdge struct {
	ID          int64
	Kind        Kind
	Src, Dst    Endpoint
	Cost        int64
	SrcEntrance *int64
	DstEntrance *int64
	NextKind    *Kind  // supplemental chain metadata, carried inert per design
	NextEdgeID  *int64 // never chased by this pipeline
}

// NewEntrance is a teleport entrance Phase A wants to insert.
type NewEntrance struct {
	ClusterID      int64
	X, Y, Plane    int32
	Dir            policy.Dir // DirTP, or a cardinal slot when DirTP is taken on that tile
	TeleportEdgeID int64
}

// EntranceReader is Phase A's read surface.
type EntranceReader interface {
	Edges(ctx context.Context) ([]AbstractTeleportEdge, error)
	ClusterOf(ctx context.Context, x, y, plane int32) (clusterID int64, ok bool, err error)
	// UsedDirs returns the neighbor_dir slots already occupied at
	// (cluster_id,x,y,plane), so Phase A can pick a free one.
	UsedDirs(ctx context.Context, clusterID int64, x, y, plane int32) (map[policy.Dir]bool, error)
}

// EntranceWriter is Phase A's write surface. DeleteScopedTeleportEntrances
// removes every existing TP entrance in scope before re-inserting (the
// idempotence rule); InsertEntrances returns the assigned entrance ids in
// the same order as the input slice. Endpoints with no free direction slot
// are dropped by EnsureEntrances and never passed to InsertEntrances.
type EntranceWriter interface {
	DeleteScopedTeleportEntrances(ctx context.Context) error
	InsertEntrances(ctx context.Context, entrances []NewEntrance) ([]int64, error)
	SetEdgeEndpoints(ctx context.Context, edgeID int64, srcEntrance, dstEntrance *int64) error
}

// Interconnection is one directed teleport-sourced routing edge.
type Interconnection struct {
	From, To int64
	Cost     int64
}

// EdgeReader is Phase C's read surface: teleport entrances materialized by
// Phase A, keyed by edge id.
type EdgeReader interface {
	TeleportEntrancesByEdge(ctx context.Context) (map[int64][]MaterializedEntrance, error)
	Edges(ctx context.Context) ([]AbstractTeleportEdge, error)
}

// MaterializedEntrance is a teleport entrance already written by Phase A.
type MaterializedEntrance struct {
	EntranceID  int64
	X, Y, Plane int32
}

// EdgeWriter is Phase C's write surface.
type EdgeWriter interface {
	DeleteTeleportSourcedInterconnections(ctx context.Context) error
	UpsertInterconnections(ctx context.Context, edges []Interconnection) error
}

// Stats summarizes one phase invocation.
type Stats struct {
	EntrancesCreated int
	EntrancesSkipped int
	EdgesCreated     int
}
