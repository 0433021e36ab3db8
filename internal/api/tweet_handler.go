package api

import (
	"log/slog"
	"net/http"

	"github.com/twitterclone/twitter-api/internal/api/shared"
	"github.com/twitterclone/twitter-api/internal/platform/logger"
	"github.com/twitterclone/twitter-api/internal/service"
)

// TweetHandler handles the tweet endpoints.
type TweetHandler struct {
	tweetService  service.TweetService
	maxFormMemory int64
	logger        *slog.Logger
}

// NewTweetHandler creates a new TweetHandler.
func NewTweetHandler(tweetService service.TweetService, maxFormMemory int64, logger *slog.Logger) *TweetHandler {
	if logger == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("logger cannot be nil")
	}
	return &TweetHandler{
		tweetService:  tweetService,
		maxFormMemory: maxFormMemory,
		logger:        logger.With("component", "tweet_handler"),
	}
}

// ListTweets handles GET / and GET /tweets.
func (h *TweetHandler) ListTweets(w http.ResponseWriter, r *http.Request) {
	tweets, err := h.tweetService.ListTweets(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tweets")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tweetsToResponse(tweets))
}

// PostTweet handles POST /post.
func (h *TweetHandler) PostTweet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req PostTweetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	input, err := req.toInput()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tweet, err := h.tweetService.PostTweet(r.Context(), input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to post tweet")
		return
	}

	log.Debug("tweet posted", slog.String("tweet_id", tweet.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, tweetToResponse(tweet))
}

// GetTweet handles GET /tweets/{tweet_id}.
func (h *TweetHandler) GetTweet(w http.ResponseWriter, r *http.Request) {
	tweetID, err := getPathUUID(r, "tweet_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tweet, err := h.tweetService.GetTweet(r.Context(), tweetID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get tweet")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tweetToResponse(tweet))
}

// UpdateTweet handles PUT /tweets/{tweet_id}/update with a form field "content".
func (h *TweetHandler) UpdateTweet(w http.ResponseWriter, r *http.Request) {
	tweetID, err := getPathUUID(r, "tweet_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTweetRequest
	if err := shared.DecodeForm(r, &req, h.maxFormMemory); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tweet, err := h.tweetService.UpdateTweetContent(r.Context(), tweetID, req.Content)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update tweet")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tweetToResponse(tweet))
}

// DeleteTweet handles DELETE /tweets/{tweet_id}/delete and returns the removed tweet.
func (h *TweetHandler) DeleteTweet(w http.ResponseWriter, r *http.Request) {
	tweetID, err := getPathUUID(r, "tweet_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tweet, err := h.tweetService.DeleteTweet(r.Context(), tweetID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete tweet")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tweetToResponse(tweet))
}
