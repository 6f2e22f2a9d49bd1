// Package trim implements the Intra Trimmer: caps the fan-out of each
// entrance's intra edges toward any single external cluster.
package trim

import "context"

// MaxPerGroup is the retention cap K from the design: at most this many
// intra edges survive per (entrance_from, external_cluster) group.
const MaxPerGroup = 5

// IntraEdge mirrors the subset of an intra edge's columns the trimmer needs
// to decide what survives.
type IntraEdge struct {
	ID           int64
	EntranceFrom int64
	EntranceTo   int64
	// ExternalCluster is nil when the edge's destination entrance has no
	// external cluster (a dead-end, never trimmed). A pointer, not a bare
	// 0, since cluster id 0 is itself a legitimate cluster id and must stay
	// distinguishable from "none".
	ExternalCluster *int64
	Cost            int64
}

// Reader loads every intra edge, in no particular order (the caller groups
// them by EntranceFrom and ExternalCluster).
type Reader interface {
	IntraEdges(ctx context.Context) ([]IntraEdge, error)
}

// Writer deletes the edges that didn't survive trimming, by id.
type Writer interface {
	DeleteEdges(ctx context.Context, ids []int64) error
}

// Stats summarizes one Trim invocation.
type Stats struct {
	GroupsEvaluated int
	EdgesDeleted    int
}
