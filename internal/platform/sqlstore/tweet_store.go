package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twitterclone/twitter-api/internal/domain"
	"github.com/twitterclone/twitter-api/internal/platform/logger"
	"github.com/twitterclone/twitter-api/internal/store"
)

const tweetColumns = `id, content, created_at, updated_at,
	author_id, author_email, author_first_name, author_last_name, author_birth_date`

var tweetKeys = []uniqueKey{{match: "id", err: store.ErrTweetIDExists}}

// TweetStore implements store.TweetStore on the tweets table.
type TweetStore struct {
	db     *DB
	logger *slog.Logger
}

// NewTweetStore creates a TweetStore. If logger is nil, a default logger will be used.
func NewTweetStore(db *DB, logger *slog.Logger) *TweetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TweetStore{
		db:     db,
		logger: logger.With(slog.String("component", "tweet_store")),
	}
}

var _ store.TweetStore = (*TweetStore)(nil)

// Create implements store.TweetStore.Create.
func (s *TweetStore) Create(ctx context.Context, tweet *domain.Tweet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tweet.Validate(); err != nil {
		log.Warn("tweet validation failed during create",
			slog.String("error", err.Error()),
			slog.String("tweet_id", tweet.ID.String()))
		return store.NewInvalidEntityError("tweet", "create", err)
	}

	query := s.db.dialect.rebind(`
		INSERT INTO tweets (id, content, created_at, updated_at,
			author_id, author_email, author_first_name, author_last_name, author_birth_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := s.db.ExecContext(ctx, query,
		tweet.ID.String(),
		tweet.Content,
		formatTime(tweet.CreatedAt),
		formatTimePtr(tweet.UpdatedAt),
		tweet.By.ID.String(),
		tweet.By.Email,
		tweet.By.FirstName,
		tweet.By.LastName,
		domain.FormatBirthDate(tweet.By.BirthDate),
	)
	if err != nil {
		err = s.db.dialect.mapError(err, store.ErrTweetNotFound, tweetKeys...)
		log.Debug("failed to insert tweet",
			slog.String("error", err.Error()),
			slog.String("tweet_id", tweet.ID.String()))
		return err
	}
	return nil
}

// GetByID implements store.TweetStore.GetByID.
func (s *TweetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	return s.getOne(ctx, s.db, id)
}

// List implements store.TweetStore.List.
func (s *TweetStore) List(ctx context.Context) ([]*domain.Tweet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+tweetColumns+` FROM tweets ORDER BY seq`)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tweets",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tweets := []*domain.Tweet{}
	for rows.Next() {
		t, err := scanTweet(rows)
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tweets, nil
}

// Update implements store.TweetStore.Update.
func (s *TweetStore) Update(ctx context.Context, tweet *domain.Tweet) error {
	if err := tweet.Validate(); err != nil {
		return store.NewInvalidEntityError("tweet", "update", err)
	}

	query := s.db.dialect.rebind(`
		UPDATE tweets
		SET content = ?, created_at = ?, updated_at = ?,
			author_id = ?, author_email = ?, author_first_name = ?, author_last_name = ?, author_birth_date = ?
		WHERE id = ?
	`)
	result, err := s.db.ExecContext(ctx, query,
		tweet.Content,
		formatTime(tweet.CreatedAt),
		formatTimePtr(tweet.UpdatedAt),
		tweet.By.ID.String(),
		tweet.By.Email,
		tweet.By.FirstName,
		tweet.By.LastName,
		domain.FormatBirthDate(tweet.By.BirthDate),
		tweet.ID.String(),
	)
	if err != nil {
		return s.db.dialect.mapError(err, store.ErrTweetNotFound, tweetKeys...)
	}
	return checkRowsAffected(result, store.ErrTweetNotFound)
}

// Delete implements store.TweetStore.Delete.
func (s *TweetStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	ctx = logger.WithLogger(ctx, logger.FromContextOrDefault(ctx, s.logger))

	var removed *domain.Tweet
	err := store.RunInTransaction(ctx, s.db.DB, func(ctx context.Context, tx *sql.Tx) error {
		t, err := s.getOne(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, s.db.dialect.rebind(`DELETE FROM tweets WHERE id = ?`), id.String()); err != nil {
			return fmt.Errorf("failed to delete tweet: %w", err)
		}
		removed = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *TweetStore) getOne(ctx context.Context, db store.DBTX, id uuid.UUID) (*domain.Tweet, error) {
	query := s.db.dialect.rebind(`SELECT ` + tweetColumns + ` FROM tweets WHERE id = ?`)
	t, err := scanTweet(db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		return nil, s.db.dialect.mapError(err, store.ErrTweetNotFound)
	}
	return t, nil
}

func scanTweet(row scanner) (*domain.Tweet, error) {
	var (
		id, createdAt, authorID string
		updatedAt, birthDate    sql.NullString
		t                       domain.Tweet
	)
	err := row.Scan(&id, &t.Content, &createdAt, &updatedAt,
		&authorID, &t.By.Email, &t.By.FirstName, &t.By.LastName, &birthDate)
	if err != nil {
		return nil, err
	}

	if t.ID, err = parseID("id", id); err != nil {
		return nil, err
	}
	if t.By.ID, err = parseID("author_id", authorID); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		u, err := parseTime("updated_at", updatedAt.String)
		if err != nil {
			return nil, err
		}
		t.UpdatedAt = &u
	}
	if t.By.BirthDate, err = parseDate(birthDate); err != nil {
		return nil, err
	}
	return &t, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
