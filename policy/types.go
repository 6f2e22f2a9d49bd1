// Package policy defines the Movement Policy and the Passability Oracle: the
// two leaf components every other stage of the pipeline reads from. Nothing
// in this package touches persistent storage; it operates purely over an
// in-memory map of decoded walk masks supplied by the caller for the
// duration of one stage.
package policy

import "errors"

// Sentinel errors for policy operations.
var (
	// ErrUnknownTile indicates a coordinate has no entry in the walk-mask map
	// supplied to an Oracle, and is therefore treated as non-walkable.
	ErrUnknownTile = errors.New("policy: tile not present in scope")
)

// Dir is a cardinal or diagonal movement direction, matching the JPS
// direction index convention: 0=N,1=E,2=S,3=W,4=NE,5=SE,6=SW,7=NW.
type Dir int

const (
	DirN Dir = iota
	DirE
	DirS
	DirW
	DirNE
	DirSE
	DirSW
	DirNW
	// DirTP labels a teleport entrance. It never appears in CardinalDirs,
	// DiagonalDirs, or AllDirs and carries no offset — Offset returns (0,0).
	DirTP
)

// String returns the single/double-letter label used in entrance rows and logs.
func (d Dir) String() string {
	switch d {
	case DirN:
		return "N"
	case DirE:
		return "E"
	case DirS:
		return "S"
	case DirW:
		return "W"
	case DirNE:
		return "NE"
	case DirSE:
		return "SE"
	case DirSW:
		return "SW"
	case DirNW:
		return "NW"
	case DirTP:
		return "TP"
	default:
		return "?"
	}
}

// Opposite returns the reciprocal direction: N<->S, E<->W, NE<->SW, NW<->SE.
func (d Dir) Opposite() Dir {
	switch d {
	case DirN:
		return DirS
	case DirS:
		return DirN
	case DirE:
		return DirW
	case DirW:
		return DirE
	case DirNE:
		return DirSW
	case DirSW:
		return DirNE
	case DirSE:
		return DirNW
	case DirNW:
		return DirSE
	default:
		return d
	}
}

// IsDiagonal reports whether d is one of the four diagonal directions.
func (d Dir) IsDiagonal() bool { return d >= DirNE }

// Offset is the (dx,dy) delta for a direction. Per the specification:
// N=(0,+1), S=(0,-1), E=(+1,0), W=(-1,0).
func (d Dir) Offset() (dx, dy int32) {
	switch d {
	case DirN:
		return 0, 1
	case DirS:
		return 0, -1
	case DirE:
		return 1, 0
	case DirW:
		return -1, 0
	case DirNE:
		return 1, 1
	case DirSE:
		return 1, -1
	case DirSW:
		return -1, -1
	case DirNW:
		return -1, 1
	default:
		return 0, 0
	}
}

// CardinalDirs and AllDirs enumerate the canonical direction orderings used
// for deterministic iteration (never range over a map when direction order
// is sort-critical).
var (
	CardinalDirs = [4]Dir{DirN, DirE, DirS, DirW}
	DiagonalDirs = [4]Dir{DirNE, DirSE, DirSW, DirNW}
	AllDirs      = [8]Dir{DirN, DirE, DirS, DirW, DirNE, DirSE, DirSW, DirNW}
)

// WalkMask is the 8-slot directional bitmask, canonical bit order:
// [left, bottom, right, top, topleft, bottomleft, bottomright, topright].
type WalkMask uint8

const (
	bitLeft WalkMask = 1 << iota
	bitBottom
	bitRight
	bitTop
	bitTopLeft
	bitBottomLeft
	bitBottomRight
	bitTopRight
)

// bitForDir maps a Dir to the bit that governs "can this tile move in dir".
func bitForDir(d Dir) WalkMask {
	switch d {
	case DirW:
		return bitLeft
	case DirS:
		return bitBottom
	case DirE:
		return bitRight
	case DirN:
		return bitTop
	case DirNW:
		return bitTopLeft
	case DirSW:
		return bitBottomLeft
	case DirSE:
		return bitBottomRight
	case DirNE:
		return bitTopRight
	default:
		return 0
	}
}

// Allows reports whether the mask permits movement in direction d.
func (m WalkMask) Allows(d Dir) bool { return m&bitForDir(d) != 0 }

// Clear returns m with direction d's bit cleared.
func (m WalkMask) Clear(d Dir) WalkMask { return m &^ bitForDir(d) }

// IsZero reports whether the tile carries no permitted directions at all,
// the Oracle's definition of "not walkable".
func (m WalkMask) IsZero() bool { return m == 0 }

// Policy governs neighborhood shape and corner-cut permission.
type Policy struct {
	// AllowDiagonals appends the four diagonal offsets to the neighborhood.
	AllowDiagonals bool
	// AllowCornerCut relaxes the diagonal-step rule to admit an L-shaped
	// detour when only one of the two composing cardinals is open.
	AllowCornerCut bool
	// UnitRadius is reserved for wider-unit extensions; default 1.
	UnitRadius int
}

// Default returns the policy used when no configuration overrides it:
// diagonals allowed, corner-cutting disallowed, unit radius 1.
func Default() Policy {
	return Policy{AllowDiagonals: true, AllowCornerCut: false, UnitRadius: 1}
}

// Neighborhood returns the offsets a flood-fill or Dijkstra should consider,
// in canonical order: cardinals first, then diagonals if enabled.
func (p Policy) Neighborhood() []Dir {
	if !p.AllowDiagonals {
		out := make([]Dir, 4)
		copy(out, CardinalDirs[:])
		return out
	}
	out := make([]Dir, 0, 8)
	out = append(out, CardinalDirs[:]...)
	out = append(out, DiagonalDirs[:]...)
	return out
}
