package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twitterclone/twitter-api/internal/domain"
	"github.com/twitterclone/twitter-api/internal/platform/logger"
	"github.com/twitterclone/twitter-api/internal/store"
)

// PostInput carries a new tweet. AuthorID must name a stored user.
type PostInput struct {
	ID       uuid.UUID
	Content  string
	AuthorID uuid.UUID
}

// TweetService provides tweet-related operations
type TweetService interface {
	// PostTweet stores a tweet authored by input.AuthorID, snapshotting the
	// author's current public profile. Returns store.ErrUserNotFound for an
	// unknown author.
	PostTweet(ctx context.Context, input PostInput) (*domain.Tweet, error)

	// ListTweets returns every tweet in storage order.
	ListTweets(ctx context.Context) ([]*domain.Tweet, error)

	// GetTweet retrieves a tweet by ID.
	GetTweet(ctx context.Context, tweetID uuid.UUID) (*domain.Tweet, error)

	// UpdateTweetContent replaces the content and refreshes UpdatedAt.
	UpdateTweetContent(ctx context.Context, tweetID uuid.UUID, content string) (*domain.Tweet, error)

	// DeleteTweet deletes a tweet and returns the removed record.
	DeleteTweet(ctx context.Context, tweetID uuid.UUID) (*domain.Tweet, error)
}

// TweetServiceOption configures a TweetServiceImpl.
type TweetServiceOption func(*TweetServiceImpl)

// WithClock replaces time.Now as the source of tweet timestamps.
func WithClock(now func() time.Time) TweetServiceOption {
	return func(s *TweetServiceImpl) {
		s.now = now
	}
}

// TweetServiceImpl implements the TweetService interface
type TweetServiceImpl struct {
	tweetStore store.TweetStore
	userStore  store.UserStore
	now        func() time.Time
	logger     *slog.Logger
}

// NewTweetService creates a new TweetService
func NewTweetService(
	tweetStore store.TweetStore,
	userStore store.UserStore,
	logger *slog.Logger,
	opts ...TweetServiceOption,
) TweetService {
	if tweetStore == nil || userStore == nil {
		panic("tweetStore and userStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &TweetServiceImpl{
		tweetStore: tweetStore,
		userStore:  userStore,
		now:        time.Now,
		logger:     logger.With("component", "tweet_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PostTweet creates a new tweet.
func (s *TweetServiceImpl) PostTweet(ctx context.Context, input PostInput) (*domain.Tweet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if input.AuthorID == uuid.Nil {
		return nil, domain.NewValidationError("by.user_id", "cannot be empty", domain.ErrInvalidID)
	}

	author, err := s.userStore.GetByID(ctx, input.AuthorID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("tweet posted by unknown author", "user_id", input.AuthorID)
		} else {
			log.Error("failed to retrieve tweet author", "error", err, "user_id", input.AuthorID)
		}
		return nil, fmt.Errorf("failed to retrieve author: %w", err)
	}

	tweet, err := domain.NewTweet(input.ID, input.Content, author.Author(), s.now())
	if err != nil {
		return nil, err
	}

	if err := s.tweetStore.Create(ctx, tweet); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("attempted to post a duplicate tweet id", "tweet_id", tweet.ID)
		} else {
			log.Error("failed to save tweet", "error", err, "tweet_id", tweet.ID)
		}
		return nil, fmt.Errorf("failed to create tweet: %w", err)
	}

	log.Info("tweet posted",
		"tweet_id", tweet.ID,
		"user_id", author.ID)
	return tweet, nil
}

// ListTweets returns all tweets.
func (s *TweetServiceImpl) ListTweets(ctx context.Context) ([]*domain.Tweet, error) {
	tweets, err := s.tweetStore.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tweets", "error", err)
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	return tweets, nil
}

// GetTweet retrieves a tweet by ID.
func (s *TweetServiceImpl) GetTweet(ctx context.Context, tweetID uuid.UUID) (*domain.Tweet, error) {
	tweet, err := s.tweetStore.GetByID(ctx, tweetID)
	if err != nil {
		s.logLookupError(ctx, "failed to retrieve tweet", tweetID, err)
		return nil, fmt.Errorf("failed to retrieve tweet: %w", err)
	}
	return tweet, nil
}

// UpdateTweetContent edits a tweet in place.
func (s *TweetServiceImpl) UpdateTweetContent(ctx context.Context, tweetID uuid.UUID, content string) (*domain.Tweet, error) {
	tweet, err := s.tweetStore.GetByID(ctx, tweetID)
	if err != nil {
		s.logLookupError(ctx, "failed to retrieve tweet for update", tweetID, err)
		return nil, fmt.Errorf("failed to retrieve tweet for update: %w", err)
	}

	if err := tweet.Edit(content, s.now()); err != nil {
		return nil, err
	}

	if err := s.tweetStore.Update(ctx, tweet); err != nil {
		s.logLookupError(ctx, "failed to update tweet", tweetID, err)
		return nil, fmt.Errorf("failed to update tweet: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("tweet updated", "tweet_id", tweetID)
	return tweet, nil
}

// DeleteTweet deletes a tweet by ID.
func (s *TweetServiceImpl) DeleteTweet(ctx context.Context, tweetID uuid.UUID) (*domain.Tweet, error) {
	tweet, err := s.tweetStore.Delete(ctx, tweetID)
	if err != nil {
		s.logLookupError(ctx, "failed to delete tweet", tweetID, err)
		return nil, fmt.Errorf("failed to delete tweet: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("tweet deleted", "tweet_id", tweetID)
	return tweet, nil
}

func (s *TweetServiceImpl) logLookupError(ctx context.Context, msg string, tweetID uuid.UUID, err error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if store.IsNotFoundError(err) {
		log.Debug("tweet not found", "tweet_id", tweetID)
		return
	}
	log.Error(msg, "error", err, "tweet_id", tweetID)
}
