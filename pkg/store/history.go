package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"wg-mesh/pkg/model"
)

// Snapshot is one recorded topology version.
type Snapshot struct {
	Version int64
	Op      string
	Hash    string
	Nodes   int
	Time    time.Time
	Data    []byte
}

// SnapshotNotFoundError is returned by Get for an unknown version.
type SnapshotNotFoundError struct {
	Version int64
}

func (e SnapshotNotFoundError) Error() string {
	return fmt.Sprintf("no snapshot with version %d", e.Version)
}

// History records every topology written by the CLI in a local SQLite file.
type History struct {
	db *sql.DB
}

const historySchema = `CREATE TABLE IF NOT EXISTS snapshots(
	version INTEGER PRIMARY KEY AUTOINCREMENT,
	op TEXT NOT NULL,
	hash TEXT NOT NULL,
	nodes INTEGER NOT NULL,
	ts INTEGER NOT NULL,
	data BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_hash ON snapshots(hash);`

// OpenHistory opens or creates the history database at path.
func OpenHistory(ctx context.Context, path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history mkdir: %w", err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("history open: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history schema: %w", err)
	}
	return &History{db: db}, nil
}

func (h *History) Close() error {
	return h.db.Close()
}

// hashTopology produces a stable content hash of the encoded topology.
func hashTopology(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Record stores t under a new version and returns that version.
func (h *History) Record(ctx context.Context, op string, t *model.Topology) (int64, error) {
	data, err := model.Save(t)
	if err != nil {
		return 0, err
	}
	res, err := h.db.ExecContext(ctx,
		`INSERT INTO snapshots(op, hash, nodes, ts, data) VALUES(?,?,?,?,?)`,
		op, hashTopology(data), len(t.Nodes), time.Now().Unix(), data)
	if err != nil {
		return 0, fmt.Errorf("history record: %w", err)
	}
	return res.LastInsertId()
}

// List returns up to limit snapshots, newest first, without their data.
// A non-positive limit returns all of them.
func (h *History) List(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT version, op, hash, nodes, ts FROM snapshots ORDER BY version DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history list: %w", err)
	}
	defer rows.Close()
	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		var ts int64
		if err := rows.Scan(&s.Version, &s.Op, &s.Hash, &s.Nodes, &ts); err != nil {
			return nil, err
		}
		s.Time = time.Unix(ts, 0)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get returns a snapshot and its topology. The stored data is validated again.
func (h *History) Get(ctx context.Context, version int64) (Snapshot, *model.Topology, error) {
	var s Snapshot
	var ts int64
	err := h.db.QueryRowContext(ctx,
		`SELECT version, op, hash, nodes, ts, data FROM snapshots WHERE version=?`, version).
		Scan(&s.Version, &s.Op, &s.Hash, &s.Nodes, &ts, &s.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, nil, SnapshotNotFoundError{Version: version}
	}
	if err != nil {
		return Snapshot{}, nil, fmt.Errorf("history get: %w", err)
	}
	s.Time = time.Unix(ts, 0)
	t, err := model.Load(s.Data)
	if err != nil {
		return s, nil, fmt.Errorf("snapshot %d: %w", version, err)
	}
	return s, t, nil
}
