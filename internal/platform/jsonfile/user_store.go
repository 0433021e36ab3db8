package jsonfile

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/twitterclone/twitter-api/internal/domain"
	"github.com/twitterclone/twitter-api/internal/platform/logger"
	"github.com/twitterclone/twitter-api/internal/store"
)

// UsersFile is the name of the users collection inside the data directory.
const UsersFile = "users.json"

// UserStore implements store.UserStore on <dataDir>/users.json.
type UserStore struct {
	users  *Collection[userRecord]
	logger *slog.Logger
}

// NewUserStore opens (creating if needed) the users file under dataDir.
// If logger is nil, a default logger will be used.
func NewUserStore(dataDir string, logger *slog.Logger) (*UserStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	users, err := NewCollection(filepath.Join(dataDir, UsersFile), Options[userRecord]{
		ErrNotFound: store.ErrUserNotFound,
		ErrIDExists: store.ErrUserIDExists,
		Keys: []UniqueKey[userRecord]{{
			Name:  "email",
			Value: func(r userRecord) string { return r.Email },
			Err:   store.ErrEmailExists,
		}},
	})
	if err != nil {
		return nil, err
	}

	return &UserStore{
		users:  users,
		logger: logger.With(slog.String("component", "user_store")),
	}, nil
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return store.NewInvalidEntityError("user", "create", err)
	}

	if err := s.users.Insert(ctx, fromUser(user)); err != nil {
		log.Debug("failed to insert user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	log.Debug("user created", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	rec, err := s.users.Find(ctx, id.String())
	if err != nil {
		return nil, err
	}
	return rec.toDomain()
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	rec, err := s.users.FindBy(ctx, func(r userRecord) bool {
		return strings.EqualFold(r.Email, email)
	})
	if err != nil {
		return nil, err
	}
	return rec.toDomain()
}

// List implements store.UserStore.List.
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	recs, err := s.users.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list users",
			slog.String("error", err.Error()))
		return nil, err
	}

	users := make([]*domain.User, 0, len(recs))
	for _, rec := range recs {
		u, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// Update implements store.UserStore.Update.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return store.NewInvalidEntityError("user", "update", err)
	}

	if err := s.users.Update(ctx, user.ID.String(), fromUser(user)); err != nil {
		log.Debug("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}
	return nil
}

// Delete implements store.UserStore.Delete.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	rec, err := s.users.Delete(ctx, id.String())
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, err
	}
	return rec.toDomain()
}
