// Package hpagen precomputes a hierarchical pathfinding graph over a tile
// world stored in SQLite, so that long-range pathfinding at query time can
// search a small abstract graph instead of walking raw tiles.
//
// The pipeline runs eight stages in order, each reading and writing a
// dedicated slice of the output schema:
//
//	cluster   — partitions walkable tiles into bounded-box connected components
//	entrance  — discovers boundary entrances between adjacent clusters
//	teleport  — materializes entrance rows for teleport edges, then wires
//	            directed interconnections between them
//	intra     — computes breakpoint-compressed shortest paths between every
//	            pair of entrances within a cluster
//	trim      — caps the fan-out of intra-cluster edges per entrance
//	inter     — wires unit-cost edges between matched boundary entrances
//	jps       — precomputes jump-point spans and jumps per walkable tile
//
// pipeline orchestrates the eight stages with resume/force semantics,
// detecting completion from output-table state rather than a meta flag.
// store adapts every stage's narrow Reader/Writer interfaces onto a single
// SQLite output database plus a read-only input tiles database. app wires
// the store-backed implementations into a runnable Executor; cmd/hpagen is
// the cobra-based command-line entry point.
//
//	go run ./cmd/hpagen exec --tiles-db tiles.db --out-db out.db
package hpagen
