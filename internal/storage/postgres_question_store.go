package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tithmeassambo-coder/QCM/internal/game"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS quiz_snapshot (
		id         INTEGER PRIMARY KEY,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

type PostgresSnapshotStore struct {
	db *pgxpool.Pool
}

func NewPostgresSnapshotStore(ctx context.Context, db *pgxpool.Pool) (*PostgresSnapshotStore, error) {
	if _, err := db.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("ensure snapshot schema: %w", err)
	}
	return &PostgresSnapshotStore{db: db}, nil
}

func (s *PostgresSnapshotStore) Load(ctx context.Context) ([]game.Question, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `
		SELECT data
		FROM quiz_snapshot
		WHERE id = 1
	`).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return DecodeSnapshot(data)
}

func (s *PostgresSnapshotStore) Save(ctx context.Context, qs []game.Question) error {
	data, err := EncodeSnapshot(qs)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO quiz_snapshot (id, data, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE
		SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`, data)
	return err
}
