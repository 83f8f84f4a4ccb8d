package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/tithmeassambo-coder/QCM/internal/game"
)

var ErrNoSnapshot = errors.New("no persisted snapshot")

// Persister keeps one snapshot of the whole collection.
type Persister interface {
	Load(ctx context.Context) ([]game.Question, error)
	Save(ctx context.Context, qs []game.Question) error
}

type MemoryPersister struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (m *MemoryPersister) Load(ctx context.Context) ([]game.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoSnapshot
	}
	return DecodeSnapshot(m.data)
}

func (m *MemoryPersister) Save(ctx context.Context, qs []game.Question) error {
	b, err := EncodeSnapshot(qs)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = b
	m.saves++
	return nil
}

// SaveRaw stores bytes as-is, which lets tests plant a corrupt snapshot.
func (m *MemoryPersister) SaveRaw(b []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), b...)
}

func (m *MemoryPersister) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// ReadOnly wraps p so that saves are dropped. Loads still reach p.
func ReadOnly(p Persister) Persister {
	return readOnly{Persister: p}
}

type readOnly struct {
	Persister
}

func (readOnly) Save(context.Context, []game.Question) error { return nil }
