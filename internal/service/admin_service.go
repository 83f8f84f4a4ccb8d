package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/tithmeassambo-coder/QCM/internal/bulk"
	"github.com/tithmeassambo-coder/QCM/internal/game"
	"github.com/tithmeassambo-coder/QCM/internal/storage"
	"go.uber.org/zap"
)

type QuestionInput struct {
	Subject string   `json:"subject"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
}

type AdminService interface {
	ListQuestions(query, subject string) []storage.IndexedQuestion
	Subjects() []storage.SubjectVisibility

	AddQuestion(in QuestionInput) (game.Question, error)
	UpdateQuestion(index int, in QuestionInput) (game.Question, error)
	RemoveQuestion(index int) error

	ToggleSubject(name string, active bool) int
	RemoveSubject(name string, confirmed bool) (int, error)

	BulkImport(text, subject string) (int, error)
	ImportFile(r io.Reader) (int, error)
	ImportSheet(r io.Reader, subject string) (int, error)
	ExportSheet(w io.Writer) error

	SharePayload() (string, error)
	LoadPayload(data string) (int, error)
}

type adminService struct {
	qs  QuestionStore
	log *zap.Logger
}

func NewAdminService(qs QuestionStore, log *zap.Logger) AdminService {
	if log == nil {
		log = zap.NewNop()
	}
	return &adminService{qs: qs, log: log}
}

func (a *adminService) ListQuestions(query, subject string) []storage.IndexedQuestion {
	return a.qs.Search(query, strings.TrimSpace(subject))
}

func (a *adminService) Subjects() []storage.SubjectVisibility {
	return a.qs.SubjectVisibility()
}

// validate trims the form fields and requires every one of them.
func validate(in QuestionInput) (game.Question, error) {
	q := game.Question{
		Subject: strings.TrimSpace(in.Subject),
		Text:    strings.TrimSpace(in.Text),
		Correct: in.Correct,
	}
	if q.Subject == "" || q.Text == "" {
		return game.Question{}, fmt.Errorf("%w: subject and question are required", ErrValidation)
	}
	if len(in.Options) != game.OptionCount {
		return game.Question{}, fmt.Errorf("%w: exactly %d options are required", ErrValidation, game.OptionCount)
	}
	q.Options = make([]string, 0, game.OptionCount)
	for i, o := range in.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			return game.Question{}, fmt.Errorf("%w: option %d is empty", ErrValidation, i+1)
		}
		q.Options = append(q.Options, o)
	}
	if err := q.Validate(); err != nil {
		return game.Question{}, fmt.Errorf("%w: correct answer out of range", ErrValidation)
	}
	return q, nil
}

func (a *adminService) AddQuestion(in QuestionInput) (game.Question, error) {
	q, err := validate(in)
	if err != nil {
		return game.Question{}, err
	}
	q.IsActive = game.Bool(true)
	a.qs.Add(q)
	a.log.Info("question added", zap.String("subject", q.Subject))
	return q, nil
}

func (a *adminService) UpdateQuestion(index int, in QuestionInput) (game.Question, error) {
	q, err := validate(in)
	if err != nil {
		return game.Question{}, err
	}
	if err := a.qs.Update(index, q); err != nil {
		return game.Question{}, err
	}
	a.log.Info("question updated", zap.Int("index", index), zap.String("subject", q.Subject))
	return q, nil
}

func (a *adminService) RemoveQuestion(index int) error {
	if err := a.qs.Remove(index); err != nil {
		return err
	}
	a.log.Info("question removed", zap.Int("index", index))
	return nil
}

func (a *adminService) ToggleSubject(name string, active bool) int {
	n := a.qs.ToggleSubject(name, active)
	a.log.Info("subject visibility changed",
		zap.String("subject", name),
		zap.Bool("active", active),
		zap.Int("questions", n),
	)
	return n
}

func (a *adminService) RemoveSubject(name string, confirmed bool) (int, error) {
	if !confirmed {
		return 0, ErrNotConfirmed
	}
	n := a.qs.RemoveSubject(name)
	a.log.Warn("subject removed", zap.String("subject", name), zap.Int("questions", n))
	return n, nil
}

func (a *adminService) BulkImport(text, subject string) (int, error) {
	qs, err := bulk.Parse(text, subject)
	if err != nil {
		return 0, err
	}
	return a.batchAdd("text", qs), nil
}

func (a *adminService) ImportFile(r io.Reader) (int, error) {
	qs, err := bulk.ParseJSONReader(r)
	if err != nil {
		return 0, err
	}
	return a.batchAdd("file", qs), nil
}

func (a *adminService) ImportSheet(r io.Reader, subject string) (int, error) {
	qs, err := bulk.ParseSheet(r, subject)
	if err != nil {
		return 0, err
	}
	return a.batchAdd("sheet", qs), nil
}

func (a *adminService) batchAdd(source string, qs []game.Question) int {
	if len(qs) == 0 {
		a.log.Info("import found no questions", zap.String("source", source))
		return 0
	}
	n := a.qs.BatchAdd(qs)
	a.log.Info("questions imported", zap.String("source", source), zap.Int("count", n))
	return n
}

func (a *adminService) ExportSheet(w io.Writer) error {
	return bulk.WriteSheet(w, a.qs.All())
}

func (a *adminService) SharePayload() (string, error) {
	return storage.EncodeStartupPayload(a.qs.All())
}

func (a *adminService) LoadPayload(data string) (int, error) {
	qs, err := storage.DecodeStartupPayload(data)
	if err != nil {
		a.log.Warn("share payload rejected", zap.Error(err))
		return 0, err
	}
	a.qs.Replace(qs)
	a.log.Info("collection replaced from share payload", zap.Int("count", len(qs)))
	return len(qs), nil
}
