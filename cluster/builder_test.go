package cluster_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hpagen/cluster"
	"github.com/katalvlaran/hpagen/config"
	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/tilegraph"
)

const fullMask = policy.WalkMask(0xFF)

type fakeReader struct {
	planes []int32
	tiles  map[int32][]cluster.Snapshot
}

func (f fakeReader) Planes(context.Context) ([]int32, error) { return f.planes, nil }
func (f fakeReader) PlaneTiles(_ context.Context, plane int32) ([]cluster.Snapshot, error) {
	return f.tiles[plane], nil
}

type fakeWriter struct {
	clusters []cluster.Cluster
	tiles    []cluster.Tile
}

func (f *fakeWriter) RebuildPlane(_ context.Context, _ int32, clusters []cluster.Cluster, tiles []cluster.Tile) error {
	f.clusters = clusters
	f.tiles = tiles
	return nil
}

// TestTwoTileCorridor grounds scenario S1.
func TestTwoTileCorridor(t *testing.T) {
	r := fakeReader{
		planes: []int32{0},
		tiles: map[int32][]cluster.Snapshot{
			0: {
				{Coord: tilegraph.Coord{X: 0, Y: 0, Plane: 0}, Mask: fullMask},
				{Coord: tilegraph.Coord{X: 1, Y: 0, Plane: 0}, Mask: fullMask},
			},
		},
	}
	w := &fakeWriter{}

	stats, err := cluster.Build(context.Background(), r, w, policy.Default(), config.Scope{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ClustersCreated)
	require.Len(t, w.clusters, 1)
	assert.Equal(t, 2, w.clusters[0].TileCount)
	assert.Len(t, w.tiles, 2)
}

func TestBoundingBoxSplitsOversizedComponent(t *testing.T) {
	var snaps []cluster.Snapshot
	for x := int32(0); x < 65; x++ {
		snaps = append(snaps, cluster.Snapshot{Coord: tilegraph.Coord{X: x, Y: 0}, Mask: fullMask})
	}
	r := fakeReader{planes: []int32{0}, tiles: map[int32][]cluster.Snapshot{0: snaps}}
	w := &fakeWriter{}

	stats, err := cluster.Build(context.Background(), r, w, policy.Default(), config.Scope{}, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.ClustersCreated, 2)

	for _, c := range w.clusters {
		var minX, maxX int32 = 1 << 30, -(1 << 30)
		for _, tl := range w.tiles {
			if tl.ClusterID != c.ID {
				continue
			}
			if tl.X < minX {
				minX = tl.X
			}
			if tl.X > maxX {
				maxX = tl.X
			}
		}
		assert.Less(t, maxX-minX, int32(cluster.MaxBBoxSide))
	}
}

func TestEmptyPlaneSkipped(t *testing.T) {
	r := fakeReader{planes: []int32{0}, tiles: map[int32][]cluster.Snapshot{}}
	w := &fakeWriter{}
	stats, err := cluster.Build(context.Background(), r, w, policy.Default(), config.Scope{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PlanesSkipped)
	assert.Equal(t, 0, stats.ClustersCreated)
}

func TestScopeFiltersPlanes(t *testing.T) {
	r := fakeReader{
		planes: []int32{0, 1},
		tiles: map[int32][]cluster.Snapshot{
			0: {{Coord: tilegraph.Coord{X: 0, Y: 0}, Mask: fullMask}},
			1: {{Coord: tilegraph.Coord{X: 0, Y: 0, Plane: 1}, Mask: fullMask}},
		},
	}
	w := &fakeWriter{}
	stats, err := cluster.Build(context.Background(), r, w, policy.Default(), config.Scope{Planes: []int32{1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PlanesProcessed)
}
