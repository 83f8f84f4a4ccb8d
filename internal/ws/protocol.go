package ws

import (
	"encoding/json"

	"github.com/tithmeassambo-coder/QCM/internal/game"
)

const (
	TypeAttempt   = "attempt"
	TypeState     = "state"
	TypeCue       = "cue"
	TypeFinished  = "finished"
	TypeEmptyPart = "empty_part"
	TypeError     = "error"

	TypeSelectAnswer = "select_answer"
	TypeAdvance      = "advance"
	TypeMute         = "mute"
	TypeExit         = "exit"
)

type Envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type AttemptPayload struct {
	AttemptID string `json:"attemptId"`
	Subject   string `json:"subject"`
	Part      int    `json:"part"`
	Total     int    `json:"total"`
}

// QuestionView hides the correct option until the learner has answered.
type QuestionView struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Correct *int     `json:"correct,omitempty"`
}

type StatePayload struct {
	game.State
	Question *QuestionView `json:"currentQuestion,omitempty"`
	Muted    bool          `json:"muted"`
}

type CuePayload struct {
	Sound game.CueKind `json:"sound"`
}

type EmptyPartPayload struct {
	Subject string `json:"subject"`
	Part    int    `json:"part"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type SelectAnswerPayload struct {
	Index int `json:"index"`
}

type MutePayload struct {
	Muted bool `json:"muted"`
}

type clientMsg struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}
