package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad request")
)

// Error carries a failed canteen API envelope so its messages reach the toast unchanged.
type Error struct {
	StatusCode int
	Messages   []string
}

func New(status int, messages ...string) *Error {
	cleaned := make([]string, 0, len(messages))
	for _, msg := range messages {
		if trimmed := strings.TrimSpace(msg); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return &Error{StatusCode: status, Messages: cleaned}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Messages) == 0 {
		return fmt.Sprintf("canteen api status %d", e.StatusCode)
	}
	return fmt.Sprintf("canteen api status %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

// Is lets callers match on the status class with errors.Is(err, apierr.ErrNotFound).
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	}
	return false
}

func (e *Error) HTTPStatus() int {
	if e == nil || e.StatusCode < 400 {
		return http.StatusBadGateway
	}
	return e.StatusCode
}

func (e *Error) ToastMessages() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.Messages...)
}

// Validation groups form validation failures that are reported together.
type Validation struct {
	Messages []string
}

func NewValidation(messages ...string) *Validation {
	return &Validation{Messages: messages}
}

func (v *Validation) Error() string {
	return "validation failed: " + strings.Join(v.Messages, "; ")
}

func (v *Validation) Is(target error) bool {
	return target == ErrBadRequest
}

func (v *Validation) HTTPStatus() int {
	return http.StatusBadRequest
}

func (v *Validation) ToastMessages() []string {
	return append([]string(nil), v.Messages...)
}

// Collector accumulates validation messages and yields nil when none were added.
type Collector struct {
	messages []string
}

func (c *Collector) Add(condition bool, message string) {
	if condition {
		c.messages = append(c.messages, message)
	}
}

func (c *Collector) Err() error {
	if len(c.messages) == 0 {
		return nil
	}
	return NewValidation(c.messages...)
}
