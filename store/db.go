// Package store wires the pipeline's narrow per-stage Reader/Writer
// interfaces to a single SQLite-backed output database, plus read-only
// access to the separate input tiles database. It is the only package that
// imports database/sql.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB wraps the output database connection and the read-only input tiles
// connection every stage ultimately reads from.
type DB struct {
	Out   *sql.DB
	Tiles *sql.DB
}

// Open connects to the output database at outPath (creating it and applying
// schema if needed) and the read-only input tiles database at tilesPath.
func Open(ctx context.Context, tilesPath, outPath string) (*DB, error) {
	out, err := sql.Open("sqlite3", outPath)
	if err != nil {
		return nil, fmt.Errorf("store: opening output db: %w", err)
	}
	if _, err := out.ExecContext(ctx, schema); err != nil {
		out.Close()
		return nil, fmt.Errorf("store: applying schema: %w", err)
	}

	tiles, err := sql.Open("sqlite3", tilesPath+"?mode=ro")
	if err != nil {
		out.Close()
		return nil, fmt.Errorf("store: opening tiles db: %w", err)
	}

	return &DB{Out: out, Tiles: tiles}, nil
}

// Close releases both underlying connections.
func (d *DB) Close() error {
	errTiles := d.Tiles.Close()
	errOut := d.Out.Close()
	if errOut != nil {
		return errOut
	}
	return errTiles
}

// withTx runs fn inside a write transaction against the output database,
// committing on success and rolling back on error or panic. The transaction
// is opened with the driver's default BEGIN, which SQLite runs in deferred
// mode, not IMMEDIATE.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: committing transaction: %w", err)
	}
	return nil
}
