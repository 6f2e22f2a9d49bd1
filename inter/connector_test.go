package inter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hpagen/inter"
	"github.com/katalvlaran/hpagen/policy"
)

const fullMask = policy.WalkMask(0xFF)

type fakeReader struct {
	entrances []inter.BoundaryEntrance
	masks     map[[3]int32]policy.WalkMask
}

func (f fakeReader) BoundaryEntrances(context.Context) ([]inter.BoundaryEntrance, error) {
	return f.entrances, nil
}

func (f fakeReader) TileMask(_ context.Context, x, y, plane int32) (policy.WalkMask, bool, error) {
	m, ok := f.masks[[3]int32{x, y, plane}]
	return m, ok, nil
}

type fakeWriter struct{ edges []inter.Edge }

func (f *fakeWriter) UpsertEdges(_ context.Context, edges []inter.Edge) error {
	f.edges = edges
	return nil
}

// TestBoundaryPairProducesBidirectionalEdges grounds the second half of
// scenario S2.
func TestBoundaryPairProducesBidirectionalEdges(t *testing.T) {
	r := fakeReader{
		entrances: []inter.BoundaryEntrance{
			{ID: 1, ClusterID: 100, X: 63, Y: 0, Plane: 0, Dir: policy.DirE},
			{ID: 2, ClusterID: 200, X: 64, Y: 0, Plane: 0, Dir: policy.DirW},
		},
		masks: map[[3]int32]policy.WalkMask{
			{63, 0, 0}: fullMask,
			{64, 0, 0}: fullMask,
		},
	}
	w := &fakeWriter{}

	stats, err := inter.Connect(context.Background(), r, w, 1024, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.EdgesCreated)
	require.Len(t, w.edges, 2)
	for _, e := range w.edges {
		assert.Equal(t, int64(1024), e.Cost)
	}
}

func TestNoOppositeEntranceProducesNoEdge(t *testing.T) {
	r := fakeReader{
		entrances: []inter.BoundaryEntrance{
			{ID: 1, ClusterID: 100, X: 63, Y: 0, Plane: 0, Dir: policy.DirE},
		},
		masks: map[[3]int32]policy.WalkMask{{63, 0, 0}: fullMask},
	}
	w := &fakeWriter{}

	stats, err := inter.Connect(context.Background(), r, w, 1024, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.EdgesCreated)
}
