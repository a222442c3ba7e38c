package services

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrForbidden            = errors.New("forbidden")
	ErrGenerationFailed     = errors.New("recipe generation failed")
	ErrGeneratorUnavailable = errors.New("recipe generator is not configured")
)
