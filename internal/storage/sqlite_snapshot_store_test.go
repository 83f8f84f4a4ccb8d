package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tithmeassambo-coder/QCM/internal/game"
)

func TestSQLiteSnapshotStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "qcm.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Load(ctx)
	require.ErrorIs(t, err, ErrNoSnapshot)

	first := sampleCollection()
	require.NoError(t, s.Save(ctx, first))
	second := append(sampleCollection(), q("Bio", "Cells?"))
	require.NoError(t, s.Save(ctx, second))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, second, got)
}

func TestSQLiteSnapshotStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "qcm.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, []game.Question{q("Math", "Q1")}))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Q1"}, texts(got))
}
