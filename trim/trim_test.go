package trim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hpagen/trim"
)

func ptr(v int64) *int64 { return &v }

type fakeReader struct{ edges []trim.IntraEdge }

func (f fakeReader) IntraEdges(context.Context) ([]trim.IntraEdge, error) { return f.edges, nil }

type fakeWriter struct{ deleted []int64 }

func (f *fakeWriter) DeleteEdges(_ context.Context, ids []int64) error {
	f.deleted = ids
	return nil
}

// TestTrimmerCap grounds scenario S5.
func TestTrimmerCap(t *testing.T) {
	costs := []int64{10, 11, 12, 13, 14, 15, 16}
	var edges []trim.IntraEdge
	for i, c := range costs {
		edges = append(edges, trim.IntraEdge{
			ID:              int64(i + 1),
			EntranceFrom:    1,
			EntranceTo:      int64(100 + i),
			ExternalCluster: ptr(9),
			Cost:            c,
		})
	}
	r := fakeReader{edges: edges}
	w := &fakeWriter{}

	stats, err := trim.Trim(context.Background(), r, w, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.GroupsEvaluated)
	assert.Equal(t, 2, stats.EdgesDeleted)
	assert.ElementsMatch(t, []int64{6, 7}, w.deleted) // costs 15,16 dropped
}

func TestDeadEndsNeverTrimmed(t *testing.T) {
	var edges []trim.IntraEdge
	for i := 0; i < 10; i++ {
		edges = append(edges, trim.IntraEdge{ID: int64(i + 1), EntranceFrom: 1, EntranceTo: int64(i), ExternalCluster: nil, Cost: int64(i)})
	}
	r := fakeReader{edges: edges}
	w := &fakeWriter{}

	stats, err := trim.Trim(context.Background(), r, w, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.EdgesDeleted)
	assert.Nil(t, w.deleted)
}

// TestExternalClusterZeroIsTrimmedLikeAnyOther guards against regressing to
// a bare-int64 sentinel: cluster id 0 is a legitimate external cluster (the
// first cluster on plane 0) and must be trimmed the same as any other group.
func TestExternalClusterZeroIsTrimmedLikeAnyOther(t *testing.T) {
	costs := []int64{10, 11, 12, 13, 14, 15, 16}
	var edges []trim.IntraEdge
	for i, c := range costs {
		edges = append(edges, trim.IntraEdge{
			ID:              int64(i + 1),
			EntranceFrom:    1,
			EntranceTo:      int64(100 + i),
			ExternalCluster: ptr(0),
			Cost:            c,
		})
	}
	r := fakeReader{edges: edges}
	w := &fakeWriter{}

	stats, err := trim.Trim(context.Background(), r, w, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.GroupsEvaluated)
	assert.Equal(t, 2, stats.EdgesDeleted)
	assert.ElementsMatch(t, []int64{6, 7}, w.deleted)
}
