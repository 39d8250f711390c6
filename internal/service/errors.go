package service

import (
	"errors"
	"fmt"

	"petition-backend/internal/validate"
)

// ValidationError carries every failing field from the validator.
type ValidationError struct {
	Fields validate.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// RateLimitedError reports which dimension tripped.
type RateLimitedError struct {
	Dimension string
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded for dimension %s", e.Dimension)
}

var (
	ErrCaptchaRejected    = errors.New("captcha verification failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotAdmin           = errors.New("not an administrator")
)
