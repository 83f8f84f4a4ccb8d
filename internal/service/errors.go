package service

import "errors"

var (
	ErrValidation   = errors.New("invalid question")
	ErrNotConfirmed = errors.New("subject removal must be confirmed")
)
