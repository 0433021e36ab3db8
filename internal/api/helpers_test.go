package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/twitterclone/twitter-api/internal/mocks"
	"github.com/twitterclone/twitter-api/internal/platform/jsonfile"
	"github.com/twitterclone/twitter-api/internal/service"
)

const testMaxMemory = 1 << 20

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixture wires real services over a fresh file-backed store.
type fixture struct {
	users  *UserHandler
	tweets *TweetHandler
	dir    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	userStore, err := jsonfile.NewUserStore(dir, testLogger())
	require.NoError(t, err)
	tweetStore, err := jsonfile.NewTweetStore(dir, testLogger())
	require.NoError(t, err)

	userSvc := service.NewUserService(userStore, &mocks.MockPasswordHasher{}, testLogger())
	tweetSvc := service.NewTweetService(tweetStore, userStore, testLogger())
	return &fixture{
		users:  NewUserHandler(userSvc, testMaxMemory, testLogger()),
		tweets: NewTweetHandler(tweetSvc, testMaxMemory, testLogger()),
		dir:    dir,
	}
}

// withParams attaches chi URL params to r.
func withParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, r)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func signupPayload(email string) map[string]any {
	return map[string]any{
		"email":      email,
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"birth_date": "1815-12-10",
		"password":   "analytical-engine",
	}
}

func getRequest(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func deleteRequest(target string) *http.Request {
	return httptest.NewRequest(http.MethodDelete, target, nil)
}
