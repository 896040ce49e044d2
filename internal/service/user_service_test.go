package service

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"dailydiet/internal/errors"
	"dailydiet/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindBySessionToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name          string
		userName      string
		email         string
		sessionToken  string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:         "successful registration mints a token",
			userName:     "Test User",
			email:        "test@example.com",
			sessionToken: "",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:         "registration reuses a caller-supplied token",
			userName:     "Test User",
			email:        "test@example.com",
			sessionToken: "11111111-2222-3333-4444-555555555555",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:         "duplicate email fails with conflict",
			userName:     "Test User",
			email:        "taken@example.com",
			sessionToken: "",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").
					Return(&model.User{ID: uuid.New(), Email: "taken@example.com"}, nil)
			},
			expectedError: errors.ErrEmailTaken,
		},
		{
			name:         "store failure propagates",
			userName:     "Test User",
			email:        "test@example.com",
			sessionToken: "",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").
					Return(nil, stderrors.New("connection refused"))
			},
			expectedError: stderrors.New("check user existence: connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)

			svc := NewUserService(repo)
			user, err := svc.Register(context.Background(), tt.userName, tt.email, tt.sessionToken)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, user)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.userName, user.Name)
				assert.Equal(t, tt.email, user.Email)
				if tt.sessionToken != "" {
					assert.Equal(t, tt.sessionToken, user.SessionToken)
				} else {
					// minted token is a valid UUID
					_, parseErr := uuid.Parse(user.SessionToken)
					assert.NoError(t, parseErr)
				}
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_Register_ConflictCreatesNoRow(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(&model.User{ID: uuid.New(), Email: "taken@example.com"}, nil)

	svc := NewUserService(repo)

	_, err := svc.Register(context.Background(), "Another Name", "taken@example.com", "")
	assert.ErrorIs(t, err, errors.ErrEmailTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
