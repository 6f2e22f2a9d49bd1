package tilegraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hpagen/tilegraph"
)

func TestAddEdgeMirrorsUndirected(t *testing.T) {
	g := tilegraph.New()
	a := tilegraph.Coord{X: 0, Y: 0, Plane: 0}
	b := tilegraph.Coord{X: 1, Y: 0, Plane: 0}

	require.NoError(t, g.AddEdge(a, b, 1024))

	nbrsA, err := g.Neighbors(a)
	require.NoError(t, err)
	require.Len(t, nbrsA, 1)
	assert.Equal(t, b, nbrsA[0].To)
	assert.Equal(t, int64(1024), nbrsA[0].Weight)

	nbrsB, err := g.Neighbors(b)
	require.NoError(t, err)
	require.Len(t, nbrsB, 1)
	assert.Equal(t, a, nbrsB[0].To)
}

func TestAddEdgeRejectsNegativeWeight(t *testing.T) {
	g := tilegraph.New()
	a := tilegraph.Coord{X: 0, Y: 0}
	b := tilegraph.Coord{X: 0, Y: 1}
	assert.ErrorIs(t, g.AddEdge(a, b, -1), tilegraph.ErrNegativeWeight)
}

func TestNeighborsUnknownVertex(t *testing.T) {
	g := tilegraph.New()
	_, err := g.Neighbors(tilegraph.Coord{X: 9, Y: 9})
	assert.ErrorIs(t, err, tilegraph.ErrVertexNotFound)
}

func TestVerticesDeterministicOrder(t *testing.T) {
	g := tilegraph.New()
	g.AddVertex(tilegraph.Coord{X: 5, Y: 0})
	g.AddVertex(tilegraph.Coord{X: 1, Y: 9})
	g.AddVertex(tilegraph.Coord{X: 1, Y: 0})

	got := g.Vertices()
	want := []tilegraph.Coord{{X: 1, Y: 0}, {X: 1, Y: 9}, {X: 5, Y: 0}}
	assert.Equal(t, want, got)
}
