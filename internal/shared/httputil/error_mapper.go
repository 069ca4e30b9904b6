package httputil

import (
	"context"
	"errors"
	"net/http"
)

// HTTPErrorInfo contains the HTTP status code and toast messages for an error.
type HTTPErrorInfo struct {
	Status   int
	Messages []string
	// Redirect is a page the client should move to after showing the toast.
	Redirect string
}

// Message returns the first message, which is what single-line clients show.
func (i HTTPErrorInfo) Message() string {
	if len(i.Messages) == 0 {
		return ""
	}
	return i.Messages[0]
}

// ErrorMapping represents a single error to HTTP status/message mapping.
type ErrorMapping struct {
	Error    error
	Status   int
	Message  string
	Redirect string
}

// StatusCarrier is implemented by errors that already know their HTTP status and messages,
// such as failed canteen API envelopes and form validation errors.
type StatusCarrier interface {
	HTTPStatus() int
	ToastMessages() []string
}

// ErrorMapper maps domain errors to HTTP status codes and toast messages.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

// NewErrorMapper creates a new ErrorMapper with default settings.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		mappings:       make([]ErrorMapping, 0),
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "An unexpected error occurred",
	}
}

// WithMapping adds an error mapping to the mapper.
func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{
		Error:   err,
		Status:  status,
		Message: message,
	})
	return m
}

// WithRedirect adds a mapping that also tells the client where to go next.
func (m *ErrorMapper) WithRedirect(err error, status int, message, redirect string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{
		Error:    err,
		Status:   status,
		Message:  message,
		Redirect: redirect,
	})
	return m
}

// WithMappings appends several mappings at once.
func (m *ErrorMapper) WithMappings(mappings ...ErrorMapping) *ErrorMapper {
	m.mappings = append(m.mappings, mappings...)
	return m
}

// WithDefault sets the default status and message for unmatched errors.
func (m *ErrorMapper) WithDefault(status int, message string) *ErrorMapper {
	m.defaultStatus = status
	m.defaultMessage = message
	return m
}

// Map converts an error to HTTP status and messages.
// Registered mappings win over StatusCarrier errors so handlers can reword upstream failures.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Messages: []string{"request timeout"}}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Messages: []string{"request cancelled"}}
	}

	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Error) {
			return HTTPErrorInfo{Status: mapping.Status, Messages: []string{mapping.Message}, Redirect: mapping.Redirect}
		}
	}

	var carrier StatusCarrier
	if errors.As(err, &carrier) {
		messages := carrier.ToastMessages()
		if len(messages) == 0 {
			messages = []string{m.defaultMessage}
		}
		return HTTPErrorInfo{Status: carrier.HTTPStatus(), Messages: messages}
	}

	return HTTPErrorInfo{Status: m.defaultStatus, Messages: []string{m.defaultMessage}}
}

// QuickMap is a convenience function for quick error mapping without creating a mapper.
func QuickMap(err error, mappings ...ErrorMapping) HTTPErrorInfo {
	return NewErrorMapper().WithMappings(mappings...).Map(err)
}
