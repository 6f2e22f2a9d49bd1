// Package intra implements the Intra Connector: deterministic all-pairs
// shortest paths between a cluster's entrances, restricted to that
// cluster's own tile set.
package intra

import (
	"context"

	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/tilegraph"
)

// MovementCost holds the per-step costs used by the deterministic Dijkstra,
// loaded from configuration rather than hardcoded.
type MovementCost struct {
	Straight int64
	Diagonal int64
}

// ClusterEntrance is an entrance belonging to the cluster currently being
// processed, as loaded back from the output store. ExternalCluster is the
// id of the cluster this entrance exits into, or nil if none (e.g. a
// teleport entrance, or the neighbor tile falls outside the loaded plane)
// — computed by the Reader, which has the full cross-cluster tile
// ownership map. A pointer, not a bare 0, since cluster id 0 is itself a
// legitimate encodeClusterID(plane=0, localIndex=0) value and must stay
// distinguishable from "no external cluster".
type ClusterEntrance struct {
	ID              int64
	X, Y            int32
	Dir             policy.Dir
	ExternalCluster *int64
}

// Edge is one directed intra-cluster connection between two entrances.
type Edge struct {
	From, To int64
	Cost     int64
	Path     []tilegraph.Coord // breakpoints only, endpoints included; nil unless store_paths
}

// ClusterWork is everything the connector needs for one cluster: its tile
// set (as walk masks, so the Oracle can be rebuilt locally) and its
// entrances.
type ClusterWork struct {
	ClusterID  int64
	Plane      int32
	Tiles      map[tilegraph.Coord]policy.WalkMask
	Entrances  []ClusterEntrance
}

// Reader is the narrow read surface the Intra Connector needs.
type Reader interface {
	// ClustersWithMultipleEntrances returns, across every plane, the
	// clusters having at least two entrances, pre-loaded with their tiles
	// and entrances; no plane or chunk scope filter is applied.
	ClustersWithMultipleEntrances(ctx context.Context) ([]ClusterWork, error)
}

// Writer is the narrow write surface. UpsertCluster must be committed as a
// single transaction per cluster, keeping the minimum cost and preserving
// any existing path blob on conflict, per the MIN-merge upsert semantics.
type Writer interface {
	UpsertCluster(ctx context.Context, clusterID int64, edges []Edge) error
}

// Stats summarizes one Connect invocation.
type Stats struct {
	ClustersProcessed int
	EdgesCreated      int
}
