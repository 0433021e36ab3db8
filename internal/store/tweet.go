package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/twitterclone/twitter-api/internal/domain"
)

// TweetStore defines the interface for tweet data persistence.
type TweetStore interface {
	// Create saves a new tweet. Returns ErrTweetIDExists if the ID is taken.
	Create(ctx context.Context, tweet *domain.Tweet) error

	// GetByID retrieves a tweet by ID. Returns ErrTweetNotFound if missing.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error)

	// List returns every tweet in storage order.
	List(ctx context.Context) ([]*domain.Tweet, error)

	// Update replaces the stored tweet that has tweet.ID.
	// Returns ErrTweetNotFound if missing.
	Update(ctx context.Context, tweet *domain.Tweet) error

	// Delete removes a tweet and returns the removed record.
	// Returns ErrTweetNotFound if missing.
	Delete(ctx context.Context, id uuid.UUID) (*domain.Tweet, error)
}
