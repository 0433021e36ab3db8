package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twitterclone/twitter-api/internal/config"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "error", MaxBodyKB: 64},
		Store: config.StoreConfig{
			Driver:     driver,
			DataDir:    dir,
			SQLitePath: filepath.Join(dir, "twitter.db"),
		},
		Auth:   config.AuthConfig{BcryptCost: 4},
		Upload: config.UploadConfig{MaxMemoryMB: 1},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func newTestServer(t *testing.T, driver string) *httptest.Server {
	t.Helper()
	return newTestServerWithConfig(t, testConfig(t, driver))
}

func newTestServerWithConfig(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(context.Background(), cfg, l)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, method, target, contentType string, body io.Reader) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestRouter_EndToEnd(t *testing.T) {
	for _, driver := range []string{config.DriverFile, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			srv := newTestServer(t, driver)

			resp, body := doRequest(t, http.MethodGet, srv.URL+"/users", "", nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, `[]`, string(body))

			signup := `{"email":"ada@example.com","first_name":"Ada","last_name":"Lovelace","birth_date":"1815-12-10","password":"analytical"}`
			resp, body = doRequest(t, http.MethodPost, srv.URL+"/signup", "application/json", strings.NewReader(signup))
			require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

			var user struct {
				UserID   string `json:"user_id"`
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			require.NoError(t, json.Unmarshal(body, &user))
			assert.Equal(t, "ada@example.com", user.Email)
			assert.Empty(t, user.Password)

			resp, _ = doRequest(t, http.MethodGet, srv.URL+"/users/"+user.UserID, "", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			resp, body = doRequest(t, http.MethodGet, srv.URL+"/users", "", nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var users []map[string]any
			require.NoError(t, json.Unmarshal(body, &users))
			assert.Len(t, users, 1)

			resp, _ = doRequest(t, http.MethodPost, srv.URL+"/signup", "application/json", strings.NewReader(signup))
			assert.Equal(t, http.StatusConflict, resp.StatusCode)

			form := url.Values{"email": {"ADA@example.com"}, "password": {"analytical"}}
			resp, body = doRequest(t, http.MethodPost, srv.URL+"/login",
				"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			assert.Contains(t, string(body), "Login successfully!")

			form.Set("password", "wrong-password")
			resp, _ = doRequest(t, http.MethodPost, srv.URL+"/login",
				"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			post := `{"content":"hello world","by":{"user_id":"` + user.UserID + `"}}`
			resp, body = doRequest(t, http.MethodPost, srv.URL+"/post", "application/json", strings.NewReader(post))
			require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
			var tweet struct {
				TweetID string `json:"tweet_id"`
			}
			require.NoError(t, json.Unmarshal(body, &tweet))

			update := url.Values{"content": {"edited"}}
			resp, body = doRequest(t, http.MethodPut, srv.URL+"/tweets/"+tweet.TweetID+"/update",
				"application/x-www-form-urlencoded", strings.NewReader(update.Encode()))
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			assert.Contains(t, string(body), `"edited"`)

			resp, body = doRequest(t, http.MethodGet, srv.URL+"/", "", nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var tweets []map[string]any
			require.NoError(t, json.Unmarshal(body, &tweets))
			assert.Len(t, tweets, 1)

			resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/tweets/"+tweet.TweetID+"/delete", "", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			resp, _ = doRequest(t, http.MethodGet, srv.URL+"/tweets/"+tweet.TweetID, "", nil)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)

			resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/users/"+user.UserID+"/delete", "", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			resp, _ = doRequest(t, http.MethodGet, srv.URL+"/users/"+user.UserID, "", nil)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, config.DriverFile)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestRouter_TutorialRoutes(t *testing.T) {
	srv := newTestServer(t, config.DriverFile)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/tutorial/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"First API":"Congratulation"}`, string(body))

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/tutorial/person/detail/3", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/tutorial/person/detail/9", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_BadPathID(t *testing.T) {
	srv := newTestServer(t, config.DriverFile)

	resp, _ := doRequest(t, http.MethodGet, srv.URL+"/users/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/tweets/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t, config.DriverFile)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/users", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouter_JSONBodyLimit(t *testing.T) {
	cfg := testConfig(t, config.DriverFile)
	cfg.Server.MaxBodyKB = 1
	srv := newTestServerWithConfig(t, cfg)

	big := `{"email":"ada@example.com","first_name":"` + strings.Repeat("a", 2048) +
		`","last_name":"Lovelace","password":"analytical"}`
	resp, _ := doRequest(t, http.MethodPost, srv.URL+"/signup", "application/json", strings.NewReader(big))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/users", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestNewApplication_UnsupportedDriver(t *testing.T) {
	cfg := testConfig(t, "mongo")
	l := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := newApplication(context.Background(), cfg, l)
	assert.Error(t, err)
}
