package httputil

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"canteenWeb/internal/shared/apierr"
	"canteenWeb/internal/shared/upload"
)

// FormFile reads an optional uploaded file. A missing field yields nil.
func FormFile(c echo.Context, field string) (*upload.File, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, apierr.NewValidation("Invalid " + field + " upload")
	}
	file, err := upload.FromHeader(header)
	if errors.Is(err, upload.ErrTooLarge) {
		return nil, apierr.NewValidation("Photo must be 5 MB or smaller")
	}
	return file, err
}
