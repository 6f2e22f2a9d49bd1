package entrance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hpagen/config"
	"github.com/katalvlaran/hpagen/entrance"
	"github.com/katalvlaran/hpagen/policy"
)

type fakeReader struct {
	planes []int32
	tiles  map[int32][]entrance.ClusterTile
}

func (f fakeReader) Planes(context.Context) ([]int32, error) { return f.planes, nil }
func (f fakeReader) ClusterTilesByPlane(_ context.Context, plane int32) ([]entrance.ClusterTile, error) {
	return f.tiles[plane], nil
}

type fakeWriter struct {
	entrances []entrance.Entrance
}

func (f *fakeWriter) RebuildPlane(_ context.Context, _ int32, entrances []entrance.Entrance) error {
	f.entrances = entrances
	return nil
}

// TestBoundaryEntrancePair grounds scenario S2.
func TestBoundaryEntrancePair(t *testing.T) {
	r := fakeReader{
		planes: []int32{0},
		tiles: map[int32][]entrance.ClusterTile{
			0: {
				{ClusterID: 1, X: 63, Y: 0},
				{ClusterID: 2, X: 64, Y: 0},
			},
		},
	}
	w := &fakeWriter{}

	stats, err := entrance.Discover(context.Background(), r, w, config.Scope{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.EntrancesCreated)
	require.Len(t, w.entrances, 2)

	assert.Equal(t, int64(1), w.entrances[0].ClusterID)
	assert.Equal(t, int32(63), w.entrances[0].X)
	assert.Equal(t, policy.DirE, w.entrances[0].NeighborDir)

	assert.Equal(t, int64(2), w.entrances[1].ClusterID)
	assert.Equal(t, int32(64), w.entrances[1].X)
	assert.Equal(t, policy.DirW, w.entrances[1].NeighborDir)
}

func TestNoEntranceWithinSingleCluster(t *testing.T) {
	r := fakeReader{
		planes: []int32{0},
		tiles: map[int32][]entrance.ClusterTile{
			0: {
				{ClusterID: 1, X: 0, Y: 0},
				{ClusterID: 1, X: 1, Y: 0},
			},
		},
	}
	w := &fakeWriter{}
	stats, err := entrance.Discover(context.Background(), r, w, config.Scope{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.EntrancesCreated)
}
