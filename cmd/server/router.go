package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/twitterclone/twitter-api/internal/api"
	apiMiddleware "github.com/twitterclone/twitter-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	maxFormMemory := int64(app.config.Upload.MaxMemoryMB) << 20

	// JSON bodies are capped; multipart uploads are bounded by maxFormMemory instead.
	limitJSON := func(next http.Handler) http.Handler { return next }
	if kb := app.config.Server.MaxBodyKB; kb > 0 {
		limitJSON = middleware.RequestSize(int64(kb) << 10)
	}

	userHandler := api.NewUserHandler(app.userService, maxFormMemory, app.logger)
	tweetHandler := api.NewTweetHandler(app.tweetService, maxFormMemory, app.logger)
	tutorialHandler := api.NewTutorialHandler(maxFormMemory, app.logger)

	// Tweets
	r.Get("/", tweetHandler.ListTweets)
	r.Get("/tweets", tweetHandler.ListTweets)
	r.With(limitJSON).Post("/post", tweetHandler.PostTweet)
	r.Route("/tweets/{tweet_id}", func(r chi.Router) {
		r.Get("/", tweetHandler.GetTweet)
		r.Put("/update", tweetHandler.UpdateTweet)
		r.Delete("/delete", tweetHandler.DeleteTweet)
	})

	// Users
	r.With(limitJSON).Post("/signup", userHandler.Signup)
	r.Post("/login", userHandler.Login)
	r.Get("/users", userHandler.ListUsers)
	r.Route("/users/{user_id}", func(r chi.Router) {
		r.Get("/", userHandler.GetUser)
		r.With(limitJSON).Put("/update", userHandler.UpdateUser)
		r.Delete("/delete", userHandler.DeleteUser)
	})

	r.Route("/tutorial", func(r chi.Router) {
		r.Get("/", tutorialHandler.Home)
		r.With(limitJSON).Post("/person/new", tutorialHandler.CreatePerson)
		r.Get("/person/detail", tutorialHandler.ShowPerson)
		r.Get("/person/detail/{person_id}", tutorialHandler.PersonExists)
		r.With(limitJSON).Put("/person/{person_id}", tutorialHandler.UpdatePerson)
		r.Post("/login", tutorialHandler.Login)
		r.Post("/contact", tutorialHandler.Contact)
		r.Post("/post-image", tutorialHandler.PostImage)
		r.Post("/post-images", tutorialHandler.PostImages)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
