package intra_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hpagen/intra"
	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/tilegraph"
)

const fullMask = policy.WalkMask(0xFF)

func ptr(v int64) *int64 { return &v }

var defaultCost = intra.MovementCost{Straight: 1024, Diagonal: 1448}

type fakeReader struct{ work []intra.ClusterWork }

func (f fakeReader) ClustersWithMultipleEntrances(context.Context) ([]intra.ClusterWork, error) {
	return f.work, nil
}

type fakeWriter struct {
	edgesByCluster map[int64][]intra.Edge
}

func (f *fakeWriter) UpsertCluster(_ context.Context, clusterID int64, edges []intra.Edge) error {
	if f.edgesByCluster == nil {
		f.edgesByCluster = make(map[int64][]intra.Edge)
	}
	f.edgesByCluster[clusterID] = edges
	return nil
}

func twoTileCluster() intra.ClusterWork {
	return intra.ClusterWork{
		ClusterID: 1,
		Plane:     0,
		Tiles: map[tilegraph.Coord]policy.WalkMask{
			{X: 0, Y: 0}: fullMask,
			{X: 1, Y: 0}: fullMask,
		},
		Entrances: []intra.ClusterEntrance{
			{ID: 10, X: 0, Y: 0, Dir: policy.DirW, ExternalCluster: ptr(2)},
			{ID: 11, X: 1, Y: 0, Dir: policy.DirE, ExternalCluster: ptr(3)},
		},
	}
}

// TestTwoTileLineNoBlobs grounds scenario S3 with store_paths=false.
func TestTwoTileLineNoBlobs(t *testing.T) {
	r := fakeReader{work: []intra.ClusterWork{twoTileCluster()}}
	w := &fakeWriter{}

	stats, err := intra.Connect(context.Background(), r, w, policy.Default(), defaultCost, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.EdgesCreated)

	edges := w.edgesByCluster[1]
	require.Len(t, edges, 2)
	for _, e := range edges {
		assert.Equal(t, int64(1024), e.Cost)
		assert.Nil(t, e.Path)
	}
}

// TestTwoTileLineWithBlobs grounds scenario S3 with store_paths=true.
func TestTwoTileLineWithBlobs(t *testing.T) {
	r := fakeReader{work: []intra.ClusterWork{twoTileCluster()}}
	w := &fakeWriter{}

	_, err := intra.Connect(context.Background(), r, w, policy.Default(), defaultCost, true, nil)
	require.NoError(t, err)

	edges := w.edgesByCluster[1]
	require.Len(t, edges, 2)
	for _, e := range edges {
		require.Len(t, e.Path, 2)
	}
}

func TestRedundantPairSkippedWhenSameExternalCluster(t *testing.T) {
	cw := twoTileCluster()
	cw.Entrances[1].ExternalCluster = ptr(2) // same external cluster as entrance 10
	r := fakeReader{work: []intra.ClusterWork{cw}}
	w := &fakeWriter{}

	stats, err := intra.Connect(context.Background(), r, w, policy.Default(), defaultCost, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.EdgesCreated)
}

// TestRedundantPairSkippedWhenBothExternalClusterZero guards against
// regressing to a bare-int64 sentinel: cluster id 0 is a legitimate external
// cluster and two entrances sharing it must still be treated as redundant.
func TestRedundantPairSkippedWhenBothExternalClusterZero(t *testing.T) {
	cw := twoTileCluster()
	cw.Entrances[0].ExternalCluster = ptr(0)
	cw.Entrances[1].ExternalCluster = ptr(0)
	r := fakeReader{work: []intra.ClusterWork{cw}}
	w := &fakeWriter{}

	stats, err := intra.Connect(context.Background(), r, w, policy.Default(), defaultCost, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.EdgesCreated)
}

func TestSingleEntranceClusterProducesNoEdges(t *testing.T) {
	cw := twoTileCluster()
	cw.Entrances = cw.Entrances[:1]
	r := fakeReader{work: []intra.ClusterWork{cw}}
	w := &fakeWriter{}

	stats, err := intra.Connect(context.Background(), r, w, policy.Default(), defaultCost, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.EdgesCreated)
}
