package game

const OptionCount = 4

type Question struct {
	Subject  string   `json:"subject"`
	Text     string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
	IsActive *bool    `json:"isActive,omitempty"`
}

// Active reports whether learners can see the question. A missing flag counts as active.
func (q Question) Active() bool {
	return q.IsActive == nil || *q.IsActive
}

func (q Question) Validate() error {
	if len(q.Options) != OptionCount {
		return ErrInvalidQuestion
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return ErrInvalidQuestion
	}
	return nil
}

// Clone returns a deep copy so callers can't alias the options slice or the flag.
func (q Question) Clone() Question {
	out := q
	if q.Options != nil {
		out.Options = append([]string(nil), q.Options...)
	}
	if q.IsActive != nil {
		v := *q.IsActive
		out.IsActive = &v
	}
	return out
}

func Bool(v bool) *bool {
	return &v
}

type State struct {
	CurrentIndex   int  `json:"currentIndex"`
	Score          int  `json:"score"`
	Finished       bool `json:"isFinished"`
	SelectedAnswer *int `json:"selectedAnswer"`
	RevealAnswer   bool `json:"revealAnswer"`
	Total          int  `json:"total"`
}

type Result struct {
	Score      int `json:"score"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}
