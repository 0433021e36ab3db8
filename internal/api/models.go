package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/twitterclone/twitter-api/internal/domain"
	"github.com/twitterclone/twitter-api/internal/service"
)

// UserRequest is the payload of POST /signup and PUT /users/{user_id}/update.
type UserRequest struct {
	UserID    string `json:"user_id"    validate:"omitempty,uuid"`
	Email     string `json:"email"      validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,min=1,max=50"`
	LastName  string `json:"last_name"  validate:"required,min=1,max=50"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Password  string `json:"password"   validate:"required,min=8,max=64"`
}

// toInput converts the request to a service.UserInput.
func (req UserRequest) toInput() (service.UserInput, error) {
	id, err := parseOptionalUUID("user_id", req.UserID)
	if err != nil {
		return service.UserInput{}, err
	}
	birthDate, err := domain.ParseBirthDate(req.BirthDate)
	if err != nil {
		return service.UserInput{}, err
	}
	return service.UserInput{
		ID:        id,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: birthDate,
		Password:  req.Password,
	}, nil
}

// LoginRequest is the form body of POST /login.
type LoginRequest struct {
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required,min=1,max=64"`
}

// LoginResponse is returned by a successful POST /login.
type LoginResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// AuthorRequest identifies a tweet's author in a post payload. Only UserID is
// used; the stored profile is authoritative for the other fields.
type AuthorRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// PostTweetRequest is the payload of POST /post.
type PostTweetRequest struct {
	TweetID string        `json:"tweet_id" validate:"omitempty,uuid"`
	Content string        `json:"content"  validate:"required,min=1,max=256"`
	By      AuthorRequest `json:"by"       validate:"required"`
}

func (req PostTweetRequest) toInput() (service.PostInput, error) {
	id, err := parseOptionalUUID("tweet_id", req.TweetID)
	if err != nil {
		return service.PostInput{}, err
	}
	authorID, err := parseOptionalUUID("by.user_id", req.By.UserID)
	if err != nil {
		return service.PostInput{}, err
	}
	return service.PostInput{ID: id, Content: req.Content, AuthorID: authorID}, nil
}

// UpdateTweetRequest is the form body of PUT /tweets/{tweet_id}/update.
type UpdateTweetRequest struct {
	Content string `form:"content" validate:"required,min=1,max=256"`
}

// UserResponse is the public view of a user. It never carries a password or hash.
type UserResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate *string   `json:"birth_date"`
}

// TweetResponse is the public view of a tweet.
type TweetResponse struct {
	TweetID   uuid.UUID    `json:"tweet_id"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `json:"updated_at"`
	By        UserResponse `json:"by"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		BirthDate: domain.FormatBirthDate(u.BirthDate),
	}
}

func usersToResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userToResponse(u))
	}
	return out
}

func tweetToResponse(t *domain.Tweet) TweetResponse {
	return TweetResponse{
		TweetID:   t.ID,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		By: UserResponse{
			UserID:    t.By.ID,
			Email:     t.By.Email,
			FirstName: t.By.FirstName,
			LastName:  t.By.LastName,
			BirthDate: domain.FormatBirthDate(t.By.BirthDate),
		},
	}
}

func tweetsToResponse(tweets []*domain.Tweet) []TweetResponse {
	out := make([]TweetResponse, 0, len(tweets))
	for _, t := range tweets {
		out = append(out, tweetToResponse(t))
	}
	return out
}
