package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tithmeassambo-coder/QCM/internal/game"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS quiz_snapshot (
  id INTEGER PRIMARY KEY,
  data TEXT NOT NULL,
  updated_at INTEGER NOT NULL
);
`

type SQLiteSnapshotStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database file at path. An empty path uses qcm.db.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSnapshotStore, error) {
	if path == "" {
		path = "qcm.db"
	}
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure snapshot schema: %w", err)
	}
	return &SQLiteSnapshotStore{db: db}, nil
}

func (s *SQLiteSnapshotStore) Load(ctx context.Context) ([]game.Question, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM quiz_snapshot WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return DecodeSnapshot([]byte(data))
}

func (s *SQLiteSnapshotStore) Save(ctx context.Context, qs []game.Question) error {
	data, err := EncodeSnapshot(qs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quiz_snapshot (id, data, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, string(data), time.Now().Unix())
	return err
}

func (s *SQLiteSnapshotStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
