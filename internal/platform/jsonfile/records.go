package jsonfile

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twitterclone/twitter-api/internal/domain"
	"github.com/twitterclone/twitter-api/internal/store"
)

// userRecord is the on-disk form of a domain.User.
type userRecord struct {
	UserID       string  `json:"user_id"`
	Email        string  `json:"email"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	BirthDate    *string `json:"birth_date"`
	PasswordHash string  `json:"password_hash"`
}

func (r userRecord) RecordID() string { return r.UserID }

// authorRecord is the author snapshot embedded in a tweetRecord.
type authorRecord struct {
	UserID    string  `json:"user_id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate *string `json:"birth_date"`
}

// tweetRecord is the on-disk form of a domain.Tweet.
type tweetRecord struct {
	TweetID   string       `json:"tweet_id"`
	Content   string       `json:"content"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt *string      `json:"updated_at"`
	By        authorRecord `json:"by"`
}

func (r tweetRecord) RecordID() string { return r.TweetID }

func fromUser(u *domain.User) userRecord {
	return userRecord{
		UserID:       u.ID.String(),
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		BirthDate:    domain.FormatBirthDate(u.BirthDate),
		PasswordHash: u.PasswordHash,
	}
}

func (r userRecord) toDomain() (*domain.User, error) {
	id, err := parseID("user_id", r.UserID)
	if err != nil {
		return nil, err
	}
	birthDate, err := parseDate(r.BirthDate)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:           id,
		Email:        r.Email,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		BirthDate:    birthDate,
		PasswordHash: r.PasswordHash,
	}, nil
}

func fromTweet(t *domain.Tweet) tweetRecord {
	rec := tweetRecord{
		TweetID:   t.ID.String(),
		Content:   t.Content,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339Nano),
		By: authorRecord{
			UserID:    t.By.ID.String(),
			Email:     t.By.Email,
			FirstName: t.By.FirstName,
			LastName:  t.By.LastName,
			BirthDate: domain.FormatBirthDate(t.By.BirthDate),
		},
	}
	if t.UpdatedAt != nil {
		s := t.UpdatedAt.UTC().Format(time.RFC3339Nano)
		rec.UpdatedAt = &s
	}
	return rec
}

func (r tweetRecord) toDomain() (*domain.Tweet, error) {
	id, err := parseID("tweet_id", r.TweetID)
	if err != nil {
		return nil, err
	}
	authorID, err := parseID("by.user_id", r.By.UserID)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: created_at %q: %v", store.ErrDecode, r.CreatedAt, err)
	}
	var updatedAt *time.Time
	if r.UpdatedAt != nil {
		t, err := time.Parse(time.RFC3339Nano, *r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: updated_at %q: %v", store.ErrDecode, *r.UpdatedAt, err)
		}
		updatedAt = &t
	}
	birthDate, err := parseDate(r.By.BirthDate)
	if err != nil {
		return nil, err
	}

	return &domain.Tweet{
		ID:        id,
		Content:   r.Content,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		By: domain.Author{
			ID:        authorID,
			Email:     r.By.Email,
			FirstName: r.By.FirstName,
			LastName:  r.By.LastName,
			BirthDate: birthDate,
		},
	}, nil
}

func parseID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q: %v", store.ErrDecode, field, s, err)
	}
	return id, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(domain.BirthDateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: birth_date %q: %v", store.ErrDecode, *s, err)
	}
	return &t, nil
}
