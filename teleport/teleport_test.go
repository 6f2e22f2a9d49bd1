package teleport_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/teleport"
)

type fakeEntranceReader struct {
	edges   []teleport.AbstractTeleportEdge
	cluster map[[3]int32]int64
}

func (f fakeEntranceReader) Edges(context.Context) ([]teleport.AbstractTeleportEdge, error) {
	return f.edges, nil
}
func (f fakeEntranceReader) ClusterOf(_ context.Context, x, y, plane int32) (int64, bool, error) {
	id, ok := f.cluster[[3]int32{x, y, plane}]
	return id, ok, nil
}
func (f fakeEntranceReader) UsedDirs(context.Context, int64, int32, int32, int32) (map[policy.Dir]bool, error) {
	return map[policy.Dir]bool{}, nil
}

type fakeEntranceWriter struct {
	nextID    int64
	inserted  []teleport.NewEntrance
	endpoints map[int64]struct{ src, dst *int64 }
}

func (f *fakeEntranceWriter) DeleteScopedTeleportEntrances(context.Context) error { return nil }
func (f *fakeEntranceWriter) InsertEntrances(_ context.Context, entrances []teleport.NewEntrance) ([]int64, error) {
	ids := make([]int64, len(entrances))
	for i, e := range entrances {
		f.nextID++
		ids[i] = f.nextID
		f.inserted = append(f.inserted, e)
	}
	return ids, nil
}
func (f *fakeEntranceWriter) SetEdgeEndpoints(_ context.Context, edgeID int64, src, dst *int64) error {
	if f.endpoints == nil {
		f.endpoints = make(map[int64]struct{ src, dst *int64 })
	}
	f.endpoints[edgeID] = struct{ src, dst *int64 }{src, dst}
	return nil
}

// TestTeleportDoorEndToEnd grounds scenario S6.
func TestTeleportDoorEndToEnd(t *testing.T) {
	edge := teleport.AbstractTeleportEdge{
		ID:   1,
		Kind: teleport.KindDoor,
		Src:  teleport.Endpoint{X: 10, Y: 10, Plane: 0, Present: true},
		Dst:  teleport.Endpoint{X: 20, Y: 20, Plane: 0, Present: true},
		Cost: 500,
	}
	r := fakeEntranceReader{
		edges: []teleport.AbstractTeleportEdge{edge},
		cluster: map[[3]int32]int64{
			{10, 10, 0}: 100,
			{20, 20, 0}: 200,
		},
	}
	w := &fakeEntranceWriter{}

	stats, err := teleport.EnsureEntrances(context.Background(), r, w, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.EntrancesCreated)
	require.Len(t, w.inserted, 2)
	assert.Equal(t, policy.DirTP, w.inserted[0].Dir)
	assert.Equal(t, policy.DirTP, w.inserted[1].Dir)

	ep := w.endpoints[1]
	require.NotNil(t, ep.src)
	require.NotNil(t, ep.dst)

	entrancesByEdge := map[int64][]teleport.MaterializedEntrance{
		1: {
			{EntranceID: *ep.src, X: 10, Y: 10, Plane: 0},
			{EntranceID: *ep.dst, X: 20, Y: 20, Plane: 0},
		},
	}
	er := fakeEdgeReader{edges: []teleport.AbstractTeleportEdge{edge}, byEdge: entrancesByEdge}
	ew := &fakeEdgeWriter{}

	edgeStats, err := teleport.CreateEdges(context.Background(), er, ew, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, edgeStats.EdgesCreated)
	require.Len(t, ew.upserted, 2)
	for _, ic := range ew.upserted {
		assert.Equal(t, int64(500), ic.Cost)
	}
}

type fakeEdgeReader struct {
	edges  []teleport.AbstractTeleportEdge
	byEdge map[int64][]teleport.MaterializedEntrance
}

func (f fakeEdgeReader) TeleportEntrancesByEdge(context.Context) (map[int64][]teleport.MaterializedEntrance, error) {
	return f.byEdge, nil
}
func (f fakeEdgeReader) Edges(context.Context) ([]teleport.AbstractTeleportEdge, error) {
	return f.edges, nil
}

type fakeEdgeWriter struct{ upserted []teleport.Interconnection }

func (f *fakeEdgeWriter) DeleteTeleportSourcedInterconnections(context.Context) error { return nil }
func (f *fakeEdgeWriter) UpsertInterconnections(_ context.Context, edges []teleport.Interconnection) error {
	f.upserted = edges
	return nil
}

// TestSharedEndpointTileGetsDistinctSlots guards against the batched-insert
// regression: two edges converging on the same tile within one invocation
// must not both pick DirTP, even though neither insert is visible to
// UsedDirs until the whole batch commits at the end of the call.
func TestSharedEndpointTileGetsDistinctSlots(t *testing.T) {
	shared := teleport.Endpoint{X: 10, Y: 10, Plane: 0, Present: true}
	edges := []teleport.AbstractTeleportEdge{
		{ID: 1, Kind: teleport.KindLodestone, Dst: shared, Cost: 0},
		{ID: 2, Kind: teleport.KindLodestone, Dst: shared, Cost: 0},
		{ID: 3, Kind: teleport.KindLodestone, Dst: shared, Cost: 0},
	}
	r := fakeEntranceReader{
		edges:   edges,
		cluster: map[[3]int32]int64{{10, 10, 0}: 100},
	}
	w := &fakeEntranceWriter{}

	stats, err := teleport.EnsureEntrances(context.Background(), r, w, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.EntrancesCreated)
	assert.Equal(t, 0, stats.EntrancesSkipped)
	require.Len(t, w.inserted, 3)

	seen := make(map[policy.Dir]bool)
	for _, e := range w.inserted {
		assert.False(t, seen[e.Dir], "direction %v reused on the same tile", e.Dir)
		seen[e.Dir] = true
	}
	assert.True(t, seen[policy.DirTP])
}

func TestSkippedWhenClusterNotFound(t *testing.T) {
	edge := teleport.AbstractTeleportEdge{
		ID:   1,
		Kind: teleport.KindLodestone,
		Dst:  teleport.Endpoint{X: 5, Y: 5, Plane: 0, Present: true},
		Cost: 0,
	}
	r := fakeEntranceReader{edges: []teleport.AbstractTeleportEdge{edge}, cluster: map[[3]int32]int64{}}
	w := &fakeEntranceWriter{}

	stats, err := teleport.EnsureEntrances(context.Background(), r, w, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.EntrancesCreated)
}
