package game

import (
	"math"
	"math/rand/v2"
	"sync"
)

// Session is one attempt at one part. The shuffled questions are fixed at
// construction; only the progress fields change afterwards.
type Session struct {
	subject   string
	partIndex int
	questions []Question
	cue       Cue

	mu    sync.Mutex
	state State
}

type SessionOption func(*sessionConfig)

type sessionConfig struct {
	rng *rand.Rand
	cue Cue
}

func WithRand(rng *rand.Rand) SessionOption {
	return func(c *sessionConfig) { c.rng = rng }
}

func WithCue(cue Cue) SessionOption {
	return func(c *sessionConfig) { c.cue = cue }
}

// NewSession slices part partIndex out of the subject's active questions and
// shuffles it. It returns ErrEmptyPart when the part has no questions.
func NewSession(subject string, partIndex int, active []Question, opts ...SessionOption) (*Session, error) {
	cfg := sessionConfig{cue: NopCue{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.cue == nil {
		cfg.cue = NopCue{}
	}

	subset := PartQuestions(active, partIndex)
	if len(subset) == 0 {
		return nil, ErrEmptyPart
	}

	questions := make([]Question, 0, len(subset))
	for _, q := range subset {
		questions = append(questions, shuffleOptions(q, cfg.rng))
	}
	cfg.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	return &Session{
		subject:   subject,
		partIndex: partIndex,
		questions: questions,
		cue:       cfg.cue,
		state:     State{Total: len(questions)},
	}, nil
}

type optionWithStatus struct {
	text    string
	correct bool
}

// shuffleOptions permutes a copy of q's options and moves Correct along with
// the originally correct option. A Correct outside the options yields -1.
func shuffleOptions(q Question, rng *rand.Rand) Question {
	out := q.Clone()
	opts := make([]optionWithStatus, len(q.Options))
	for i, text := range q.Options {
		opts[i] = optionWithStatus{text: text, correct: i == q.Correct}
	}
	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })

	out.Correct = -1
	for i, o := range opts {
		out.Options[i] = o.text
		if o.correct {
			out.Correct = i
		}
	}
	return out
}

func (s *Session) Subject() string { return s.subject }

func (s *Session) PartIndex() int { return s.partIndex }

func (s *Session) Total() int { return len(s.questions) }

// Questions returns a copy of the attempt's questions in presentation order.
func (s *Session) Questions() []Question {
	out := make([]Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = q.Clone()
	}
	return out
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() State {
	st := s.state
	if s.state.SelectedAnswer != nil {
		v := *s.state.SelectedAnswer
		st.SelectedAnswer = &v
	}
	return st
}

// Current returns the question being shown. ok is false once the attempt is finished.
func (s *Session) Current() (Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Finished {
		return Question{}, false
	}
	return s.questions[s.state.CurrentIndex].Clone(), true
}

// SelectAnswer records the learner's choice for the current question. It is
// ignored when an answer is already selected, the attempt is finished or idx
// is not an option; applied reports whether the state changed.
func (s *Session) SelectAnswer(idx int) (correct bool, applied bool) {
	s.mu.Lock()
	if s.state.Finished || s.state.SelectedAnswer != nil {
		s.mu.Unlock()
		return false, false
	}
	q := s.questions[s.state.CurrentIndex]
	if idx < 0 || idx >= len(q.Options) {
		s.mu.Unlock()
		return false, false
	}

	correct = idx == q.Correct
	selected := idx
	s.state.SelectedAnswer = &selected
	s.state.RevealAnswer = true
	if correct {
		s.state.Score++
	}
	s.mu.Unlock()

	if correct {
		s.playCue(CueCorrect)
	} else {
		s.playCue(CueWrong)
	}
	return correct, true
}

// Advance moves past a revealed answer, finishing the attempt after the last question.
func (s *Session) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Finished || !s.state.RevealAnswer {
		return false
	}
	if s.state.CurrentIndex+1 < len(s.questions) {
		s.state.CurrentIndex++
		s.state.SelectedAnswer = nil
		s.state.RevealAnswer = false
		return true
	}
	s.state.Finished = true
	return true
}

func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Finished
}

// Result is only available once the attempt is finished.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Finished {
		return Result{}, false
	}
	return NewResult(s.state.Score, len(s.questions)), true
}

func NewResult(score, total int) Result {
	r := Result{Score: score, Total: total}
	if total > 0 {
		r.Percentage = int(math.Round(float64(score) / float64(total) * 100))
	}
	return r
}

func (s *Session) playCue(kind CueKind) {
	defer func() { _ = recover() }()
	s.cue.Play(kind)
}
