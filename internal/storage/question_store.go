package storage

import (
	"errors"
	"strings"
	"sync"

	"github.com/tithmeassambo-coder/QCM/internal/game"
)

var ErrIndexOutOfRange = errors.New("question index out of range")

// Notifier receives the full collection after every mutation. It is called
// with the store locked, so it must not block or call back into the store.
type Notifier interface {
	Notify(snapshot []game.Question)
}

type NotifierFunc func(snapshot []game.Question)

func (f NotifierFunc) Notify(snapshot []game.Question) { f(snapshot) }

type nopNotifier struct{}

func (nopNotifier) Notify([]game.Question) {}

// Store owns the ordered question collection. Positions are the addressing
// scheme for Update and Remove, so no operation reorders untouched elements.
type Store struct {
	mu        sync.RWMutex
	questions []game.Question
	notifier  Notifier
}

func NewStore(initial []game.Question, notifier Notifier) *Store {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Store{questions: cloneAll(initial), notifier: notifier}
}

type SubjectCount struct {
	Subject string `json:"subject"`
	Count   int    `json:"count"`
}

type SubjectVisibility struct {
	Subject  string `json:"subject"`
	IsActive bool   `json:"isActive"`
	Count    int    `json:"count"`
}

type IndexedQuestion struct {
	Index int `json:"index"`
	game.Question
}

func (s *Store) Add(q game.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.questions = append(s.questions, withDefaultActive(q))
	s.notifyLocked()
}

// Update overwrites the question at index but keeps its isActive flag.
func (s *Store) Update(index int, q game.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.questions) {
		return ErrIndexOutOfRange
	}
	next := q.Clone()
	next.IsActive = s.questions[index].Clone().IsActive
	s.questions[index] = next
	s.notifyLocked()
	return nil
}

func (s *Store) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.questions) {
		return ErrIndexOutOfRange
	}
	out := make([]game.Question, 0, len(s.questions)-1)
	out = append(out, s.questions[:index]...)
	out = append(out, s.questions[index+1:]...)
	s.questions = out
	s.notifyLocked()
	return nil
}

// ToggleSubject sets isActive on every question of the subject and returns how many matched.
func (s *Store) ToggleSubject(name string, active bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.questions {
		if s.questions[i].Subject == name {
			s.questions[i].IsActive = game.Bool(active)
			n++
		}
	}
	s.notifyLocked()
	return n
}

// RemoveSubject deletes every question of the subject. Callers confirm before calling it.
func (s *Store) RemoveSubject(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]game.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if q.Subject != name {
			out = append(out, q)
		}
	}
	removed := len(s.questions) - len(out)
	s.questions = out
	s.notifyLocked()
	return removed
}

func (s *Store) BatchAdd(qs []game.Question) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, q := range qs {
		s.questions = append(s.questions, withDefaultActive(q))
	}
	s.notifyLocked()
	return len(qs)
}

// Replace swaps the whole collection verbatim, as loading a shared payload does.
func (s *Store) Replace(qs []game.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.questions = cloneAll(qs)
	s.notifyLocked()
}

func (s *Store) All() []game.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.questions)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions)
}

func (s *Store) Get(index int) (game.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.questions) {
		return game.Question{}, ErrIndexOutOfRange
	}
	return s.questions[index].Clone(), nil
}

// Subjects lists every distinct subject in first-seen order.
func (s *Store) Subjects() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, q := range s.questions {
		if !seen[q.Subject] {
			seen[q.Subject] = true
			out = append(out, q.Subject)
		}
	}
	return out
}

// ActiveSubjects lists subjects that have at least one active question, with active counts.
func (s *Store) ActiveSubjects() []SubjectCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos := make(map[string]int)
	out := make([]SubjectCount, 0)
	for _, q := range s.questions {
		if !q.Active() {
			continue
		}
		i, ok := pos[q.Subject]
		if !ok {
			i = len(out)
			pos[q.Subject] = i
			out = append(out, SubjectCount{Subject: q.Subject})
		}
		out[i].Count++
	}
	return out
}

// SubjectVisibility reports each subject as active when its first question is.
func (s *Store) SubjectVisibility() []SubjectVisibility {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos := make(map[string]int)
	out := make([]SubjectVisibility, 0)
	for _, q := range s.questions {
		i, ok := pos[q.Subject]
		if !ok {
			i = len(out)
			pos[q.Subject] = i
			out = append(out, SubjectVisibility{Subject: q.Subject, IsActive: q.Active()})
		}
		out[i].Count++
	}
	return out
}

func (s *Store) ActiveBySubject(subject string) []game.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]game.Question, 0)
	for _, q := range s.questions {
		if q.Subject == subject && q.Active() {
			out = append(out, q.Clone())
		}
	}
	return out
}

// Search matches query case-insensitively against question text and subject.
// A non-empty subject additionally filters on exact subject.
func (s *Store) Search(query, subject string) []IndexedQuestion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]IndexedQuestion, 0)
	for i, q := range s.questions {
		if subject != "" && q.Subject != subject {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(q.Text), needle) &&
			!strings.Contains(strings.ToLower(q.Subject), needle) {
			continue
		}
		out = append(out, IndexedQuestion{Index: i, Question: q.Clone()})
	}
	return out
}

func (s *Store) notifyLocked() {
	s.notifier.Notify(cloneAll(s.questions))
}

func withDefaultActive(q game.Question) game.Question {
	out := q.Clone()
	if out.IsActive == nil {
		out.IsActive = game.Bool(true)
	}
	return out
}

func cloneAll(qs []game.Question) []game.Question {
	out := make([]game.Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}
