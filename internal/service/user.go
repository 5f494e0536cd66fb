package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/homelist/marketplace/internal/metrics"
	"github.com/homelist/marketplace/internal/model"
	"github.com/homelist/marketplace/internal/repository"
)

// UserStore is the persistence surface the user service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	UserNameExists(ctx context.Context, name string) (bool, error)
	ListUsers(ctx context.Context, page model.Page) ([]*model.User, error)
}

var userRequiredFields = []string{"name"}

// UserService handles user business logic.
type UserService struct {
	store   UserStore
	metrics metrics.Recorder
	now     func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		store:   store,
		metrics: recorder,
		now:     time.Now,
	}
}

// ListUsers returns one page of users, newest first.
func (s *UserService) ListUsers(ctx context.Context, page model.Page) ([]*model.User, error) {
	users, err := s.store.ListUsers(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser validates and persists a new user.
func (s *UserService) CreateUser(ctx context.Context, fields Fields) (*model.User, error) {
	if err := firstMissing(fields, userRequiredFields...); err != nil {
		return nil, err
	}
	name := fields["name"]

	// Friendly pre-check; the unique constraint below is authoritative.
	exists, err := s.store.UserNameExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check name: %w", err)
	}
	if exists {
		return nil, ErrNameNotUnique
	}

	user := model.NewUser(name, s.now())
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNameExists) {
			return nil, ErrNameNotUnique
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserCreated()

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
