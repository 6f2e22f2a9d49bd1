package store

import (
	"encoding/binary"

	"github.com/katalvlaran/hpagen/tilegraph"
)

// encodePathBlob packs breakpoints as little-endian (x,y,plane) int32
// triples, 12 bytes each, in path order.
func encodePathBlob(path []tilegraph.Coord) []byte {
	if len(path) == 0 {
		return nil
	}
	buf := make([]byte, 12*len(path))
	for i, c := range path {
		off := i * 12
		binary.LittleEndian.PutUint32(buf[off:], uint32(c.X))
		binary.LittleEndian.PutUint32(buf[off+4:], uint32(c.Y))
		binary.LittleEndian.PutUint32(buf[off+8:], uint32(c.Plane))
	}
	return buf
}

func decodePathBlob(buf []byte) []tilegraph.Coord {
	if len(buf) == 0 {
		return nil
	}
	n := len(buf) / 12
	out := make([]tilegraph.Coord, n)
	for i := 0; i < n; i++ {
		off := i * 12
		out[i] = tilegraph.Coord{
			X:     int32(binary.LittleEndian.Uint32(buf[off:])),
			Y:     int32(binary.LittleEndian.Uint32(buf[off+4:])),
			Plane: int32(binary.LittleEndian.Uint32(buf[off+8:])),
		}
	}
	return out
}
