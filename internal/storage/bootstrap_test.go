package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tithmeassambo-coder/QCM/internal/game"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBootstrap_PayloadReplacesAndPersists(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister()
	require.NoError(t, p.Save(ctx, []game.Question{q("Old", "old")}))

	payload, err := EncodeStartupPayload([]game.Question{q("New", "new")})
	require.NoError(t, err)

	qs, src := Bootstrap(ctx, p, payload, zap.NewNop())
	require.Equal(t, SourcePayload, src)
	require.Equal(t, []string{"new"}, texts(qs))

	persisted, err := p.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, qs, persisted)
}

func TestBootstrap_MalformedPayloadFallsBackToSnapshot(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	p := NewMemoryPersister()
	require.NoError(t, p.Save(ctx, []game.Question{q("Old", "old")}))

	qs, src := Bootstrap(ctx, p, "@@not base64@@", zap.New(core))
	require.Equal(t, SourceSnapshot, src)
	require.Equal(t, []string{"old"}, texts(qs))
	require.Equal(t, 1, logs.FilterMessage("startup payload decode failed, falling back").Len())
}

func TestBootstrap_NoSnapshotUsesSeed(t *testing.T) {
	qs, src := Bootstrap(context.Background(), NewMemoryPersister(), "", nil)
	require.Equal(t, SourceSeed, src)
	require.Equal(t, SeedQuestions(), qs)
}

func TestBootstrap_CorruptSnapshotUsesSeed(t *testing.T) {
	p := NewMemoryPersister()
	p.SaveRaw([]byte("{corrupt"))

	qs, src := Bootstrap(context.Background(), p, "", nil)
	require.Equal(t, SourceSeed, src)
	require.NotEmpty(t, qs)
}

func TestBootstrap_LoadErrorUsesSeed(t *testing.T) {
	p := new(mockPersister)
	p.On("Load", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	_, src := Bootstrap(context.Background(), p, "", nil)
	require.Equal(t, SourceSeed, src)
	p.AssertExpectations(t)
}

func TestBootstrap_EmptySnapshotIsKept(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister()
	require.NoError(t, p.Save(ctx, nil))

	qs, src := Bootstrap(ctx, p, "", nil)
	require.Equal(t, SourceSnapshot, src)
	require.Empty(t, qs)
}

func TestSeedQuestions_Valid(t *testing.T) {
	for _, sq := range SeedQuestions() {
		require.NoError(t, sq.Validate())
		require.True(t, sq.Active())
	}
}

func TestBootstrap_ReadOnlyKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister()
	require.NoError(t, p.Save(ctx, []game.Question{q("Old", "old")}))

	payload, err := EncodeStartupPayload([]game.Question{q("New", "new")})
	require.NoError(t, err)

	qs, src := Bootstrap(ctx, ReadOnly(p), payload, nil)
	require.Equal(t, SourcePayload, src)
	require.Equal(t, []string{"new"}, texts(qs))

	persisted, err := p.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"old"}, texts(persisted))
	require.Equal(t, 1, p.Saves())

	qs, src = Bootstrap(ctx, ReadOnly(p), "@@not base64@@", nil)
	require.Equal(t, SourceSnapshot, src)
	require.Equal(t, []string{"old"}, texts(qs))
}
