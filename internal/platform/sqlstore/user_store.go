package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/twitterclone/twitter-api/internal/domain"
	"github.com/twitterclone/twitter-api/internal/platform/logger"
	"github.com/twitterclone/twitter-api/internal/store"
)

const userColumns = `id, email, first_name, last_name, birth_date, password_hash`

var userKeys = []uniqueKey{
	{match: "email", err: store.ErrEmailExists},
	{match: "id", err: store.ErrUserIDExists},
}

// UserStore implements store.UserStore on the users table.
type UserStore struct {
	db     *DB
	logger *slog.Logger
}

// NewUserStore creates a UserStore. If logger is nil, a default logger will be used.
func NewUserStore(db *DB, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

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

	query := s.db.dialect.rebind(`
		INSERT INTO users (id, email, first_name, last_name, birth_date, password_hash)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	_, err := s.db.ExecContext(ctx, query,
		user.ID.String(),
		user.Email,
		user.FirstName,
		user.LastName,
		domain.FormatBirthDate(user.BirthDate),
		user.PasswordHash,
	)
	if err != nil {
		err = s.db.dialect.mapError(err, store.ErrUserNotFound, userKeys...)
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
	query := s.db.dialect.rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	return s.getOne(ctx, s.db, query, id.String())
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := s.db.dialect.rebind(`SELECT ` + userColumns + ` FROM users WHERE lower(email) = ?`)
	return s.getOne(ctx, s.db, query, strings.ToLower(strings.TrimSpace(email)))
}

// List implements store.UserStore.List.
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY seq`)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
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

	query := s.db.dialect.rebind(`
		UPDATE users
		SET email = ?, first_name = ?, last_name = ?, birth_date = ?, password_hash = ?
		WHERE id = ?
	`)
	result, err := s.db.ExecContext(ctx, query,
		user.Email,
		user.FirstName,
		user.LastName,
		domain.FormatBirthDate(user.BirthDate),
		user.PasswordHash,
		user.ID.String(),
	)
	if err != nil {
		return s.db.dialect.mapError(err, store.ErrUserNotFound, userKeys...)
	}
	return checkRowsAffected(result, store.ErrUserNotFound)
}

// Delete implements store.UserStore.Delete. The row is read and removed in
// one transaction so the returned record is the one that was deleted.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	ctx = logger.WithLogger(ctx, logger.FromContextOrDefault(ctx, s.logger))

	var removed *domain.User
	err := store.RunInTransaction(ctx, s.db.DB, func(ctx context.Context, tx *sql.Tx) error {
		u, err := s.getOne(ctx, tx, s.db.dialect.rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id.String())
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, s.db.dialect.rebind(`DELETE FROM users WHERE id = ?`), id.String()); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		removed = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *UserStore) getOne(ctx context.Context, db store.DBTX, query string, arg any) (*domain.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, s.db.dialect.mapError(err, store.ErrUserNotFound)
	}
	return u, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*domain.User, error) {
	var (
		id        string
		birthDate sql.NullString
		u         domain.User
	)
	if err := row.Scan(&id, &u.Email, &u.FirstName, &u.LastName, &birthDate, &u.PasswordHash); err != nil {
		return nil, err
	}

	var err error
	if u.ID, err = parseID("id", id); err != nil {
		return nil, err
	}
	if u.BirthDate, err = parseDate(birthDate); err != nil {
		return nil, err
	}
	return &u, nil
}
