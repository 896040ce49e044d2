package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dailydiet/internal/auth"
	"dailydiet/internal/errors"
	"dailydiet/internal/model"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, name, email, sessionToken string) (*model.User, error) {
	args := m.Called(ctx, name, email, sessionToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newUserContext(t *testing.T, body string, cookie string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &echoValidator{validator: validator.New()}

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestUserHandler_CreateUser_MintsCookie(t *testing.T) {
	minted := uuid.New().String()
	svc := new(MockUserService)
	svc.On("Register", mock.Anything, "Test User", "test@example.com", "").
		Return(&model.User{ID: uuid.New(), Name: "Test User", Email: "test@example.com", SessionToken: minted}, nil)

	h := NewUserHandler(svc)
	c, rec := newUserContext(t, `{"name":"Test User","email":"test@example.com"}`, "")

	err := h.CreateUser(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	cookie := sessionCookie(rec)
	assert.NotNil(t, cookie)
	assert.Equal(t, minted, cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 604800, cookie.MaxAge)
	svc.AssertExpectations(t)
}

func TestUserHandler_CreateUser_ReusesExistingCookie(t *testing.T) {
	existing := uuid.New().String()
	svc := new(MockUserService)
	svc.On("Register", mock.Anything, "Test User", "test@example.com", existing).
		Return(&model.User{ID: uuid.New(), Name: "Test User", Email: "test@example.com", SessionToken: existing}, nil)

	h := NewUserHandler(svc)
	c, rec := newUserContext(t, `{"name":"Test User","email":"test@example.com"}`, existing)

	err := h.CreateUser(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	// cookie set only when absent
	assert.Nil(t, sessionCookie(rec))
	svc.AssertExpectations(t)
}

func TestUserHandler_CreateUser_DuplicateEmail(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Register", mock.Anything, "Test User", "taken@example.com", "").
		Return(nil, errors.ErrEmailTaken)

	h := NewUserHandler(svc)
	c, _ := newUserContext(t, `{"name":"Test User","email":"taken@example.com"}`, "")

	err := h.CreateUser(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	svc.AssertExpectations(t)
}

func TestUserHandler_CreateUser_InvalidEmail(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(svc)

	c, _ := newUserContext(t, `{"name":"Test User","email":"not-an-email"}`, "")

	err := h.CreateUser(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
