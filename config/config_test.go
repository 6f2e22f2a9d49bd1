package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hpagen/config"
)

func TestParseChunkRange(t *testing.T) {
	r, err := config.ParseChunkRange("0:5,-2:2")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, int32(0), r.XMin)
	assert.Equal(t, int32(5), r.XMax)
	assert.Equal(t, int32(-2), r.ZMin)
	assert.Equal(t, int32(2), r.ZMax)

	r, err = config.ParseChunkRange("")
	require.NoError(t, err)
	assert.Nil(t, r)

	_, err = config.ParseChunkRange("garbage")
	assert.Error(t, err)
}

func TestChunkRangeContains(t *testing.T) {
	r := &config.ChunkRange{XMin: 0, XMax: 1, ZMin: 0, ZMax: 0}
	assert.True(t, r.Contains(63, 0))
	assert.True(t, r.Contains(64, 0))
	assert.False(t, r.Contains(128, 0))

	var nilRange *config.ChunkRange
	assert.True(t, nilRange.Contains(100000, -100000))
}

func TestParsePlanes(t *testing.T) {
	planes, err := config.ParsePlanes("0, 1,2")
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 1, 2}, planes)

	planes, err = config.ParsePlanes("")
	require.NoError(t, err)
	assert.Nil(t, planes)
}

func TestScopeIncludes(t *testing.T) {
	s := config.Scope{Planes: []int32{0, 2}}
	assert.True(t, s.IncludesPlane(0))
	assert.False(t, s.IncludesPlane(1))

	allPlanes := config.Scope{}
	assert.True(t, allPlanes.IncludesPlane(42))
}
