package storage

import (
	"context"
	"errors"

	"github.com/tithmeassambo-coder/QCM/internal/game"
	"go.uber.org/zap"
)

type Source string

const (
	SourcePayload  Source = "payload"
	SourceSnapshot Source = "snapshot"
	SourceSeed     Source = "seed"
)

// Bootstrap picks the initial collection: a decodable startup payload wins and
// is persisted as the new baseline, then the persisted snapshot, then the seed set.
func Bootstrap(ctx context.Context, p Persister, payload string, log *zap.Logger) ([]game.Question, Source) {
	if log == nil {
		log = zap.NewNop()
	}

	if payload != "" {
		qs, err := DecodeStartupPayload(payload)
		if err == nil {
			if err := p.Save(ctx, qs); err != nil {
				log.Warn("startup payload not persisted", zap.Error(err))
			}
			log.Info("questions loaded from startup payload", zap.Int("count", len(qs)))
			return qs, SourcePayload
		}
		log.Warn("startup payload decode failed, falling back", zap.Error(err))
	}

	qs, err := p.Load(ctx)
	switch {
	case err == nil:
		log.Info("questions loaded from snapshot", zap.Int("count", len(qs)))
		return qs, SourceSnapshot
	case errors.Is(err, ErrNoSnapshot):
		log.Info("no snapshot, using seed questions")
	default:
		log.Warn("snapshot load failed, using seed questions", zap.Error(err))
	}
	return SeedQuestions(), SourceSeed
}
