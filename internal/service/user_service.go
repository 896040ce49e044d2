package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dailydiet/internal/errors"
	"dailydiet/internal/model"
	"dailydiet/internal/repository"
)

// UserService handles registration.
type UserService interface {
	Register(ctx context.Context, name, email, sessionToken string) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register creates a new user bound to a session token. If the caller
// already holds a token (pre-existing cookie) it is reused, otherwise a
// fresh one is minted. A duplicate email fails with ErrEmailTaken and
// changes nothing.
func (s *userService) Register(ctx context.Context, name, email, sessionToken string) (*model.User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errors.ErrEmailTaken
	}
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	if sessionToken == "" {
		sessionToken = uuid.New().String()
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		SessionToken: sessionToken,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}
