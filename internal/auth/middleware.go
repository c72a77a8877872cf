package auth

import (
	"github.com/labstack/echo/v4"

	apperrors "readscape/internal/errors"
)

const (
	userIDContextKey   = "user_id"
	identityContextKey = "identity"
)

// RequireAuth rejects requests without a valid bearer credential and exposes
// the caller's user id to downstream handlers.
func RequireAuth(a *Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential := ExtractCredential(c.Request().Header.Get(echo.HeaderAuthorization))
			identity, err := a.Authenticate(c.Request().Context(), credential)
			if err != nil {
				if apperrors.IsInternal(err) {
					c.Logger().Errorf("authenticate: %v", err)
				}
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			c.Set(userIDContextKey, identity.UserID)
			c.Set(identityContextKey, identity)
			return next(c)
		}
	}
}

// UserID returns the authenticated user id, or 0 outside RequireAuth.
func UserID(c echo.Context) uint {
	id, _ := c.Get(userIDContextKey).(uint)
	return id
}

// IdentityFrom returns the authenticated identity, or nil outside RequireAuth.
func IdentityFrom(c echo.Context) *Identity {
	identity, _ := c.Get(identityContextKey).(*Identity)
	return identity
}
