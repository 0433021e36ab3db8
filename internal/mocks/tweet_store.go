package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/twitterclone/twitter-api/internal/domain"
	"github.com/twitterclone/twitter-api/internal/store"
)

// TweetStore is a testify mock of store.TweetStore.
type TweetStore struct {
	mock.Mock
}

var _ store.TweetStore = (*TweetStore)(nil)

func (m *TweetStore) Create(ctx context.Context, tweet *domain.Tweet) error {
	args := m.Called(ctx, tweet)
	return args.Error(0)
}

func (m *TweetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	args := m.Called(ctx, id)
	if tweet, ok := args.Get(0).(*domain.Tweet); ok {
		return tweet, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TweetStore) List(ctx context.Context) ([]*domain.Tweet, error) {
	args := m.Called(ctx)
	if tweets, ok := args.Get(0).([]*domain.Tweet); ok {
		return tweets, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TweetStore) Update(ctx context.Context, tweet *domain.Tweet) error {
	args := m.Called(ctx, tweet)
	return args.Error(0)
}

func (m *TweetStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	args := m.Called(ctx, id)
	if tweet, ok := args.Get(0).(*domain.Tweet); ok {
		return tweet, args.Error(1)
	}
	return nil, args.Error(1)
}
