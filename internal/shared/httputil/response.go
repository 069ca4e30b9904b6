package httputil

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastInfo    ToastLevel = "info"
)

// Toast is the short notification a page shows after an action.
type Toast struct {
	Level    ToastLevel `json:"level"`
	Messages []string   `json:"messages"`
}

// Page is the JSON view model every page endpoint answers with.
type Page struct {
	Data     any    `json:"data,omitempty"`
	Toast    *Toast `json:"toast,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func Success(messages ...string) *Toast {
	return &Toast{Level: ToastSuccess, Messages: messages}
}

func Failure(messages ...string) *Toast {
	return &Toast{Level: ToastError, Messages: messages}
}

func Info(messages ...string) *Toast {
	return &Toast{Level: ToastInfo, Messages: messages}
}

// Render writes a page with the given status.
func Render(c echo.Context, status int, page Page) error {
	return c.JSON(status, page)
}

// OK renders data with an optional toast.
func OK(c echo.Context, data any, toast *Toast) error {
	return Render(c, http.StatusOK, Page{Data: data, Toast: toast})
}

// Fail maps err through the mapper and renders it as an error toast.
func Fail(c echo.Context, mapper *ErrorMapper, err error) error {
	return FailWithRedirect(c, mapper, err, "")
}

// FailWithRedirect behaves like Fail and adds a client-side redirect hint.
func FailWithRedirect(c echo.Context, mapper *ErrorMapper, err error, redirect string) error {
	if mapper == nil {
		mapper = NewErrorMapper()
	}
	info := mapper.Map(err)
	if redirect == "" {
		redirect = info.Redirect
	}
	attrs := []any{
		slog.String("method", c.Request().Method),
		slog.String("path", c.Request().URL.Path),
		slog.Int("status", info.Status),
		slog.Any("error", err),
	}
	if info.Status >= http.StatusInternalServerError {
		slog.Error("page request failed", attrs...)
	} else {
		slog.Warn("page request rejected", attrs...)
	}
	return Render(c, info.Status, Page{Toast: Failure(info.Messages...), Redirect: redirect})
}
