package store

// schema is the full output-database DDL, applied with CREATE TABLE/INDEX
// IF NOT EXISTS so it is safe to run on every invocation. Table shapes
// follow the tile/teleport/cluster schema of the wider extraction toolkit
// this pipeline plugs into, extended with pipeline_runs for audit.
const schema = `
CREATE TABLE IF NOT EXISTS clusters (
  cluster_id INTEGER PRIMARY KEY,
  plane      INTEGER NOT NULL,
  label      INTEGER NOT NULL,
  tile_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS cluster_tiles (
  cluster_id INTEGER NOT NULL REFERENCES clusters(cluster_id),
  x          INTEGER NOT NULL,
  y          INTEGER NOT NULL,
  plane      INTEGER NOT NULL,
  PRIMARY KEY (x, y, plane)
);

CREATE TABLE IF NOT EXISTS cluster_entrances (
  entrance_id      INTEGER PRIMARY KEY,
  cluster_id       INTEGER NOT NULL REFERENCES clusters(cluster_id),
  x                INTEGER NOT NULL,
  y                INTEGER NOT NULL,
  plane            INTEGER NOT NULL,
  neighbor_dir     TEXT NOT NULL CHECK (neighbor_dir IN ('N','S','E','W','TP')),
  teleport_edge_id INTEGER REFERENCES abstract_teleport_edges(edge_id),
  UNIQUE (cluster_id, x, y, plane, neighbor_dir)
);

CREATE TABLE IF NOT EXISTS cluster_intraconnections (
  entrance_from INTEGER NOT NULL REFERENCES cluster_entrances(entrance_id),
  entrance_to   INTEGER NOT NULL REFERENCES cluster_entrances(entrance_id),
  cost          INTEGER NOT NULL,
  path_blob     BLOB,
  PRIMARY KEY (entrance_from, entrance_to)
);

CREATE TABLE IF NOT EXISTS cluster_interconnections (
  entrance_from INTEGER NOT NULL REFERENCES cluster_entrances(entrance_id),
  entrance_to   INTEGER NOT NULL REFERENCES cluster_entrances(entrance_id),
  cost          INTEGER NOT NULL,
  PRIMARY KEY (entrance_from, entrance_to)
);

CREATE TABLE IF NOT EXISTS abstract_teleport_edges (
  edge_id        INTEGER PRIMARY KEY,
  kind           TEXT NOT NULL,
  src_x          INTEGER,
  src_y          INTEGER,
  src_plane      INTEGER,
  dst_x          INTEGER NOT NULL,
  dst_y          INTEGER NOT NULL,
  dst_plane      INTEGER NOT NULL,
  cost           INTEGER NOT NULL,
  src_entrance   INTEGER,
  dst_entrance   INTEGER,
  next_kind      TEXT,
  next_edge_id   INTEGER
);

CREATE TABLE IF NOT EXISTS tiles (
  x         INTEGER NOT NULL,
  y         INTEGER NOT NULL,
  plane     INTEGER NOT NULL,
  walk_mask INTEGER NOT NULL,
  PRIMARY KEY (x, y, plane)
);

CREATE TABLE IF NOT EXISTS meta (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS movement_policy (
  policy_id         INTEGER PRIMARY KEY CHECK (policy_id = 1),
  allow_diagonals   INTEGER NOT NULL,
  allow_corner_cut  INTEGER NOT NULL,
  unit_radius_tiles INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS jps_spans (
  x              INTEGER NOT NULL,
  y              INTEGER NOT NULL,
  plane          INTEGER NOT NULL,
  left_block_at  INTEGER,
  right_block_at INTEGER,
  up_block_at    INTEGER,
  down_block_at  INTEGER,
  PRIMARY KEY (x, y, plane)
);

CREATE TABLE IF NOT EXISTS jps_jump (
  x      INTEGER NOT NULL,
  y      INTEGER NOT NULL,
  plane  INTEGER NOT NULL,
  dir    INTEGER NOT NULL,
  next_x INTEGER,
  next_y INTEGER,
  PRIMARY KEY (x, y, plane, dir)
);

CREATE TABLE IF NOT EXISTS pipeline_runs (
  run_id     TEXT PRIMARY KEY,
  stage      TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at   TEXT,
  status     TEXT NOT NULL,
  detail     TEXT
);

CREATE INDEX IF NOT EXISTS idx_cluster_tiles_cluster ON cluster_tiles(cluster_id);
CREATE INDEX IF NOT EXISTS idx_cluster_entrances_plane_xy ON cluster_entrances(plane, x, y);
CREATE INDEX IF NOT EXISTS idx_cluster_intra_from ON cluster_intraconnections(entrance_from);
CREATE INDEX IF NOT EXISTS idx_cluster_inter_to ON cluster_interconnections(entrance_to);
CREATE INDEX IF NOT EXISTS idx_abstract_teleport_src ON abstract_teleport_edges(src_plane, src_x, src_y);
CREATE INDEX IF NOT EXISTS idx_abstract_teleport_dst ON abstract_teleport_edges(dst_plane, dst_x, dst_y);
`
