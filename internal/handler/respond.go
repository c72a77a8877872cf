package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "readscape/internal/errors"
)

// MessageResponse is the body of every successful mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// fail converts a service error into the HTTP error echo writes to the client.
// Errors without a domain mapping are logged and redacted.
func fail(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func invalid(message string) error {
	httpErr := apperrors.Validation(message)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// pathID parses a positive integer path parameter. Anything else is a 404,
// the same as an id that does not exist.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil {
		return 0, echo.ErrNotFound
	}
	return uint(id), nil
}

// NumericParam answers 404 for a non-integer path parameter before any later
// middleware runs, so a malformed id never reaches authentication.
func NumericParam(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := pathID(c, name); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// categoryFilter returns the ?category= value, or nil when absent or empty.
func categoryFilter(c echo.Context) *string {
	category := c.QueryParam("category")
	if category == "" {
		return nil
	}
	return &category
}
