package bulk

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/tithmeassambo-coder/QCM/internal/game"
)

// ParseJSON accepts an array of questions or a single question object.
// Records are taken as-is; a missing isActive is left for the store to default.
func ParseJSON(data []byte) ([]game.Question, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	if data[0] == '{' {
		var one game.Question
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, parseErr("json object: %v", err)
		}
		return []game.Question{one}, nil
	}

	var qs []game.Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, parseErr("json array: %v", err)
	}
	if qs == nil {
		qs = []game.Question{}
	}
	return qs, nil
}

// ParseJSONReader reads an uploaded question file, which must hold a JSON array.
func ParseJSONReader(r io.Reader) ([]game.Question, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, parseErr("read file: %v", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if data[0] != '[' {
		return nil, parseErr("file must contain a JSON array")
	}
	return ParseJSON(data)
}
