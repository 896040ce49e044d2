package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dailydiet/internal/auth"
	"dailydiet/internal/errors"
	"dailydiet/internal/service"
)

// UserHandler handles the registration endpoint.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents a registration request.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// CreateUser godoc
// @Summary Register a user
// @Description Creates a user and binds it to the session cookie. A new cookie is minted when the caller has none.
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User payload"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Reuse the caller's existing session token so registration is
	// idempotent with respect to the cookie; mint one otherwise.
	sessionToken := ""
	hadCookie := false
	if cookie, err := c.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
		sessionToken = cookie.Value
		hadCookie = true
	}

	user, err := h.userService.Register(c.Request().Context(), req.Name, req.Email, sessionToken)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if !hadCookie {
		c.SetCookie(&http.Cookie{
			Name:   auth.SessionCookieName,
			Value:  user.SessionToken,
			Path:   "/",
			MaxAge: int(auth.SessionMaxAge.Seconds()),
		})
	}

	return c.JSON(http.StatusCreated, user)
}
