package jsonfile

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/twitterclone/twitter-api/internal/domain"
	"github.com/twitterclone/twitter-api/internal/platform/logger"
	"github.com/twitterclone/twitter-api/internal/store"
)

// TweetsFile is the name of the tweets collection inside the data directory.
const TweetsFile = "tweets.json"

// TweetStore implements store.TweetStore on <dataDir>/tweets.json.
type TweetStore struct {
	tweets *Collection[tweetRecord]
	logger *slog.Logger
}

// NewTweetStore opens (creating if needed) the tweets file under dataDir.
func NewTweetStore(dataDir string, logger *slog.Logger) (*TweetStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tweets, err := NewCollection(filepath.Join(dataDir, TweetsFile), Options[tweetRecord]{
		ErrNotFound: store.ErrTweetNotFound,
		ErrIDExists: store.ErrTweetIDExists,
	})
	if err != nil {
		return nil, err
	}

	return &TweetStore{
		tweets: tweets,
		logger: logger.With(slog.String("component", "tweet_store")),
	}, nil
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

	if err := s.tweets.Insert(ctx, fromTweet(tweet)); err != nil {
		log.Debug("failed to insert tweet",
			slog.String("error", err.Error()),
			slog.String("tweet_id", tweet.ID.String()))
		return err
	}
	return nil
}

// GetByID implements store.TweetStore.GetByID.
func (s *TweetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	rec, err := s.tweets.Find(ctx, id.String())
	if err != nil {
		return nil, err
	}
	return rec.toDomain()
}

// List implements store.TweetStore.List.
func (s *TweetStore) List(ctx context.Context) ([]*domain.Tweet, error) {
	recs, err := s.tweets.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tweets",
			slog.String("error", err.Error()))
		return nil, err
	}

	tweets := make([]*domain.Tweet, 0, len(recs))
	for _, rec := range recs {
		t, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, t)
	}
	return tweets, nil
}

// Update implements store.TweetStore.Update.
func (s *TweetStore) Update(ctx context.Context, tweet *domain.Tweet) error {
	if err := tweet.Validate(); err != nil {
		return store.NewInvalidEntityError("tweet", "update", err)
	}
	return s.tweets.Update(ctx, tweet.ID.String(), fromTweet(tweet))
}

// Delete implements store.TweetStore.Delete.
func (s *TweetStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	rec, err := s.tweets.Delete(ctx, id.String())
	if err != nil {
		return nil, err
	}
	return rec.toDomain()
}
