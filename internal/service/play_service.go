package service

import (
	"github.com/tithmeassambo-coder/QCM/internal/game"
	"github.com/tithmeassambo-coder/QCM/internal/storage"
	"go.uber.org/zap"
)

type PlayService interface {
	Subjects() []storage.SubjectCount
	Parts(subject string) []game.Part
	StartAttempt(subject string, partIndex int, cue game.Cue) (*game.Session, error)
}

type playService struct {
	qs   QuestionStore
	log  *zap.Logger
	opts []game.SessionOption
}

// NewPlayService builds sessions over the store's active questions. Extra
// session options are applied to every attempt after the cue.
func NewPlayService(qs QuestionStore, log *zap.Logger, opts ...game.SessionOption) PlayService {
	if log == nil {
		log = zap.NewNop()
	}
	return &playService{qs: qs, log: log, opts: opts}
}

func (s *playService) Subjects() []storage.SubjectCount {
	return s.qs.ActiveSubjects()
}

func (s *playService) Parts(subject string) []game.Part {
	return game.PartsFor(s.qs.ActiveBySubject(subject))
}

func (s *playService) StartAttempt(subject string, partIndex int, cue game.Cue) (*game.Session, error) {
	opts := append([]game.SessionOption{game.WithCue(cue)}, s.opts...)
	sess, err := game.NewSession(subject, partIndex, s.qs.ActiveBySubject(subject), opts...)
	if err != nil {
		s.log.Info("attempt not started",
			zap.String("subject", subject),
			zap.Int("part", partIndex),
			zap.Error(err),
		)
		return nil, err
	}
	s.log.Info("attempt started",
		zap.String("subject", subject),
		zap.Int("part", partIndex),
		zap.Int("total", sess.Total()),
	)
	return sess, nil
}
