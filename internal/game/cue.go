package game

import "sync/atomic"

type CueKind string

const (
	CueCorrect CueKind = "correct"
	CueWrong   CueKind = "wrong"
)

// Cue plays a correctness sound. Implementations must not block; the session
// never waits on them and drops any panic they raise.
type Cue interface {
	Play(kind CueKind)
}

type NopCue struct{}

func (NopCue) Play(CueKind) {}

type CueFunc func(kind CueKind)

func (f CueFunc) Play(kind CueKind) { f(kind) }

// Mutable silences a cue without replacing it.
type Mutable struct {
	cue   Cue
	muted atomic.Bool
}

func NewMutable(cue Cue) *Mutable {
	if cue == nil {
		cue = NopCue{}
	}
	return &Mutable{cue: cue}
}

func (m *Mutable) SetMuted(muted bool) { m.muted.Store(muted) }

func (m *Mutable) Muted() bool { return m.muted.Load() }

func (m *Mutable) Play(kind CueKind) {
	if m.muted.Load() {
		return
	}
	m.cue.Play(kind)
}
