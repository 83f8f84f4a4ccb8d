package service

import (
	"github.com/tithmeassambo-coder/QCM/internal/game"
	"github.com/tithmeassambo-coder/QCM/internal/storage"
)

// QuestionStore is the part of storage.Store the services depend on.
type QuestionStore interface {
	Add(q game.Question)
	Update(index int, q game.Question) error
	Remove(index int) error
	ToggleSubject(name string, active bool) int
	RemoveSubject(name string) int
	BatchAdd(qs []game.Question) int
	Replace(qs []game.Question)

	All() []game.Question
	Search(query, subject string) []storage.IndexedQuestion
	SubjectVisibility() []storage.SubjectVisibility
	ActiveSubjects() []storage.SubjectCount
	ActiveBySubject(subject string) []game.Question
}

var _ QuestionStore = (*storage.Store)(nil)
