package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tithmeassambo-coder/QCM/internal/game"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockPersister struct {
	mock.Mock
}

func (m *mockPersister) Load(ctx context.Context) ([]game.Question, error) {
	args := m.Called(ctx)
	qs, _ := args.Get(0).([]game.Question)
	return qs, args.Error(1)
}

func (m *mockPersister) Save(ctx context.Context, qs []game.Question) error {
	args := m.Called(ctx, qs)
	return args.Error(0)
}

func TestSnapshotWriter_SavesLatest(t *testing.T) {
	p := NewMemoryPersister()
	w := NewSnapshotWriter(p, time.Second, zap.NewNop())

	s := NewStore(nil, w)
	s.Add(q("Math", "Q1"))
	s.Add(q("Math", "Q2"))
	s.Add(q("Math", "Q3"))
	w.Close()

	got, err := p.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Q1", "Q2", "Q3"}, texts(got))
	require.GreaterOrEqual(t, p.Saves(), 1)
	require.LessOrEqual(t, p.Saves(), 3)
}

func TestSnapshotWriter_IgnoresNotifyAfterClose(t *testing.T) {
	p := NewMemoryPersister()
	w := NewSnapshotWriter(p, time.Second, nil)
	w.Close()

	require.NotPanics(t, func() { w.Notify([]game.Question{q("Math", "Q1")}) })
	require.NotPanics(t, w.Close)

	_, err := p.Load(context.Background())
	require.ErrorIs(t, err, ErrNoSnapshot)
}

func TestSnapshotWriter_LogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := new(mockPersister)
	p.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	w := NewSnapshotWriter(p, time.Second, zap.New(core))
	w.Notify([]game.Question{q("Math", "Q1")})
	w.Close()

	p.AssertExpectations(t)
	require.Equal(t, 1, logs.FilterMessage("snapshot save failed").Len())
}
