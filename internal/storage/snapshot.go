package storage

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tithmeassambo-coder/QCM/internal/game"
)

var ErrDecode = errors.New("decode question data")

func EncodeSnapshot(qs []game.Question) ([]byte, error) {
	if qs == nil {
		qs = []game.Question{}
	}
	return json.Marshal(qs)
}

func DecodeSnapshot(data []byte) ([]game.Question, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: snapshot is not a JSON array", ErrDecode)
	}
	var qs []game.Question
	if err := json.Unmarshal(trimmed, &qs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return qs, nil
}

var payloadEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodeStartupPayload turns a base64, UTF-8 JSON array into questions.
// Spaces are read as '+', which is what query-string decoding does to them.
func DecodeStartupPayload(payload string) ([]game.Question, error) {
	payload = strings.ReplaceAll(strings.TrimSpace(payload), " ", "+")
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrDecode)
	}

	var raw []byte
	var lastErr error
	for _, enc := range payloadEncodings {
		b, err := enc.DecodeString(payload)
		if err == nil {
			raw = b
			lastErr = nil
			break
		}
		lastErr = err
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, lastErr)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: payload is not valid UTF-8", ErrDecode)
	}
	return DecodeSnapshot(raw)
}

func EncodeStartupPayload(qs []game.Question) (string, error) {
	b, err := EncodeSnapshot(qs)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
