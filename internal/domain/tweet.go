package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxTweetLength is the maximum number of characters in a tweet.
const MaxTweetLength = 256

// Tweet is a short post. By is a copy of the author taken when the tweet was
// posted; later profile changes do not rewrite existing tweets.
type Tweet struct {
	ID        uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
	By        Author
}

// NewTweet creates a tweet posted at now. A nil id generates a fresh one.
func NewTweet(id uuid.UUID, content string, by Author, now time.Time) (*Tweet, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}

	tweet := &Tweet{
		ID:        id,
		Content:   content,
		CreatedAt: now.UTC(),
		By:        by,
	}

	if err := tweet.Validate(); err != nil {
		return nil, err
	}
	return tweet, nil
}

// Validate checks if the Tweet has valid data.
func (t *Tweet) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("tweet_id", "cannot be empty", ErrInvalidID)
	}
	if err := validateContent(t.Content); err != nil {
		return err
	}
	if t.By.ID == uuid.Nil {
		return NewValidationError("by.user_id", "cannot be empty", ErrInvalidID)
	}
	if t.CreatedAt.IsZero() {
		return NewValidationError("created_at", "cannot be empty", ErrValidation)
	}
	return nil
}

// Edit replaces the content and stamps UpdatedAt with now.
func (t *Tweet) Edit(content string, now time.Time) error {
	if err := validateContent(content); err != nil {
		return err
	}
	updated := now.UTC()
	t.Content = content
	t.UpdatedAt = &updated
	return nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return NewValidationError("content", "cannot be empty", ErrInvalidContent)
	}
	if utf8.RuneCountInString(content) > MaxTweetLength {
		return NewValidationError("content", "is too long", ErrInvalidContent)
	}
	return nil
}
