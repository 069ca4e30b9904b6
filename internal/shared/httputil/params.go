package httputil

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"canteenWeb/internal/shared/apierr"
)

// ParamID reads a positive integer path parameter.
func ParamID(c echo.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apierr.NewValidation("Invalid " + name)
	}
	return id, nil
}

// FormOrJSON binds the request body, which pages send either as JSON or as a form.
func FormOrJSON(c echo.Context, out any) error {
	if err := c.Bind(out); err != nil {
		return apierr.NewValidation("Invalid request body")
	}
	return nil
}
