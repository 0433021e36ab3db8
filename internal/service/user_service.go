package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twitterclone/twitter-api/internal/domain"
	"github.com/twitterclone/twitter-api/internal/platform/logger"
	"github.com/twitterclone/twitter-api/internal/service/auth"
	"github.com/twitterclone/twitter-api/internal/store"
)

// UserInput carries the fields of a registration or a profile replacement.
type UserInput struct {
	// ID is optional on registration; uuid.Nil generates one. It is ignored on update.
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	BirthDate *time.Time
	Password  string
}

// UserService provides user-related operations
type UserService interface {
	// Register creates a user from input, storing only the password hash.
	Register(ctx context.Context, input UserInput) (*domain.User, error)

	// Authenticate returns the user owning email if password matches.
	// Returns auth.ErrInvalidCredentials for an unknown email or a wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// ListUsers returns every user in storage order.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateUser replaces the profile of userID with input and returns the new record.
	UpdateUser(ctx context.Context, userID uuid.UUID, input UserInput) (*domain.User, error)

	// DeleteUser deletes a user and returns the removed record.
	DeleteUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, hasher auth.PasswordHasher, logger *slog.Logger) UserService {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger.With("component", "user_service"),
	}
}

// Register creates a new user.
func (s *UserServiceImpl) Register(ctx context.Context, input UserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.buildUser(input.ID, input)
	if err != nil {
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("attempted to register a duplicate user",
				"user_id", user.ID,
				"error", err)
		} else {
			log.Error("failed to save user",
				"error", err,
				"user_id", user.ID)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate checks email and password against the stored hash.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown email")
			return nil, auth.ErrInvalidCredentials
		}
		log.Error("failed to retrieve user by email", "error", err)
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Debug("login with wrong password", "user_id", user.ID)
			return nil, auth.ErrInvalidCredentials
		}
		log.Error("failed to compare password hash", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return user, nil
}

// ListUsers returns all users.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		s.logLookupError(ctx, "failed to retrieve user", userID, err)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// UpdateUser replaces the whole profile, keeping userID. The password is
// re-hashed from input.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, userID uuid.UUID, input UserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		s.logLookupError(ctx, "failed to retrieve user for update", userID, err)
		return nil, fmt.Errorf("failed to retrieve user for update: %w", err)
	}

	user, err := s.buildUser(userID, input)
	if err != nil {
		return nil, err
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to update to an existing email", "user_id", userID)
		} else {
			log.Error("failed to update user",
				"error", err,
				"user_id", userID)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Info("user updated", "user_id", userID)
	return user, nil
}

// DeleteUser deletes a user by their ID
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.Delete(ctx, userID)
	if err != nil {
		s.logLookupError(ctx, "failed to delete user", userID, err)
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user deleted", "user_id", userID)
	return user, nil
}

// buildUser validates input as a user with the given id and replaces the
// plaintext password with its hash.
func (s *UserServiceImpl) buildUser(id uuid.UUID, input UserInput) (*domain.User, error) {
	user, err := domain.NewUser(id, input.Email, input.FirstName, input.LastName, input.BirthDate, input.Password)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	user.Password = ""
	return user, nil
}

func (s *UserServiceImpl) logLookupError(ctx context.Context, msg string, userID uuid.UUID, err error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if store.IsNotFoundError(err) {
		log.Debug("user not found", "user_id", userID)
		return
	}
	log.Error(msg, "error", err, "user_id", userID)
}
