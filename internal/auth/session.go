package auth

import (
	stderrors "errors"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"dailydiet/internal/errors"
	"dailydiet/internal/model"
	"dailydiet/internal/repository"
)

const (
	// SessionCookieName is the cookie carrying the opaque session token.
	SessionCookieName = "sessionId"
	// SessionMaxAge is the cookie validity set at registration.
	SessionMaxAge = 7 * 24 * time.Hour

	// UserContextKey is the echo context key holding the resolved user.
	UserContextKey = "session_user"
)

// Middleware resolves the session cookie to a User before the handler runs.
// Requests with a missing or unknown token are rejected with 401 and never
// reach the handler. The resolved user is stashed on the echo context;
// handlers read it once via CurrentUser and pass the identity explicitly
// into service calls.
func Middleware(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				httpErr := errors.MapErrorToHTTP(errors.ErrUnauthenticated)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			user, err := users.FindBySessionToken(c.Request().Context(), cookie.Value)
			if err != nil {
				mapped := errors.ErrUnauthenticated
				if !stderrors.Is(err, gorm.ErrRecordNotFound) {
					mapped = err
				}
				httpErr := errors.MapErrorToHTTP(mapped)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by Middleware for this request.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(UserContextKey).(*model.User)
	return user, ok
}
