package storage

import (
	"context"
	"sync"
	"time"

	"github.com/tithmeassambo-coder/QCM/internal/game"
	"go.uber.org/zap"
)

// SnapshotWriter saves store snapshots in the background. Only the newest
// pending snapshot is kept; save failures are logged and otherwise ignored.
type SnapshotWriter struct {
	p       Persister
	log     *zap.Logger
	timeout time.Duration

	mu      sync.Mutex
	closed  bool
	pending chan []game.Question
	done    chan struct{}
}

func NewSnapshotWriter(p Persister, timeout time.Duration, log *zap.Logger) *SnapshotWriter {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	w := &SnapshotWriter{
		p:       p,
		log:     log,
		timeout: timeout,
		pending: make(chan []game.Question, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *SnapshotWriter) Notify(snapshot []game.Question) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	select {
	case w.pending <- snapshot:
	default:
		select {
		case <-w.pending:
		default:
		}
		w.pending <- snapshot
	}
}

func (w *SnapshotWriter) run() {
	defer close(w.done)
	for snap := range w.pending {
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		err := w.p.Save(ctx, snap)
		cancel()
		if err != nil {
			w.log.Warn("snapshot save failed", zap.Int("questions", len(snap)), zap.Error(err))
			continue
		}
		w.log.Debug("snapshot saved", zap.Int("questions", len(snap)))
	}
}

// Close writes the pending snapshot, if any, and stops the writer.
func (w *SnapshotWriter) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.pending)
	}
	w.mu.Unlock()
	<-w.done
}
