package jps_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hpagen/jps"
	"github.com/katalvlaran/hpagen/policy"
)

const fullMask = policy.WalkMask(0xFF)

type fakeReader struct {
	planes []int32
	tiles  map[int32][]jps.Tile
}

func (f fakeReader) Planes(context.Context) ([]int32, error) { return f.planes, nil }
func (f fakeReader) WalkableTiles(_ context.Context, plane int32) ([]jps.Tile, error) {
	return f.tiles[plane], nil
}

type fakeWriter struct {
	spans map[int32][]jps.Span
	jumps map[int32][]jps.Jump
}

func (f *fakeWriter) RebuildPlane(_ context.Context, plane int32, spans []jps.Span, jumps []jps.Jump) error {
	if f.spans == nil {
		f.spans = make(map[int32][]jps.Span)
		f.jumps = make(map[int32][]jps.Jump)
	}
	f.spans[plane] = spans
	f.jumps[plane] = jumps
	return nil
}

// TestSimpleCorridor grounds scenario S7.
func TestSimpleCorridor(t *testing.T) {
	r := fakeReader{
		planes: []int32{0},
		tiles: map[int32][]jps.Tile{
			0: {
				{X: -1, Y: 0, Mask: fullMask},
				{X: 0, Y: 0, Mask: fullMask},
				{X: 1, Y: 0, Mask: fullMask},
			},
		},
	}
	w := &fakeWriter{}

	stats, err := jps.Accelerate(context.Background(), r, w, policy.Policy{AllowDiagonals: false}, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PlanesProcessed)

	var origin jps.Span
	for _, s := range w.spans[0] {
		if s.X == 0 && s.Y == 0 {
			origin = s
		}
	}
	require.NotNil(t, origin.LeftBlockAt)
	require.NotNil(t, origin.RightBlockAt)
	assert.Equal(t, int32(-2), *origin.LeftBlockAt)
	assert.Equal(t, int32(2), *origin.RightBlockAt)
}
