package game

import "errors"

var (
	ErrEmptyPart       = errors.New("part has no questions")
	ErrInvalidQuestion = errors.New("invalid question")
	ErrInvalidPart     = errors.New("invalid part index")
)
