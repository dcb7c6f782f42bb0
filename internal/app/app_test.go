package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/newsly/config"
)

type upstream struct {
	mu      sync.Mutex
	queries []string
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.queries = append(u.queries, r.URL.RawQuery)
	u.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"status":"ok","totalResults":1,"articles":[{"title":"T","description":null,"url":"http://x"}]}`)
}

func newTestApp(t *testing.T) (*App, *upstream) {
	t.Helper()

	up := &upstream{}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.NewsAPI.BaseURL = srv.URL + "/v2/"
	cfg.NewsAPI.APIKey = "test-key"
	cfg.Session.IdleTimeout = time.Millisecond

	a, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.GracefulShutdown(context.Background()) })

	return a, up
}

func TestApp_Routes(t *testing.T) {
	a, up := newTestApp(t)

	t.Run("Headlines", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/headlines?category=sports", nil))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"title":"T"`)

		up.mu.Lock()
		defer up.mu.Unlock()
		require.NotEmpty(t, up.queries)
		last := up.queries[len(up.queries)-1]
		assert.Contains(t, last, "apiKey=test-key")
		assert.Contains(t, last, "category=sports")
		assert.Contains(t, last, "country=us")
	})

	t.Run("RPC", func(t *testing.T) {
		body := `{"jsonrpc":"2.0","id":1,"method":"headlines.categories","params":{}}`
		req := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Result []map[string]string `json:"result"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Result, 7)
		assert.Equal(t, "general", resp.Result[0]["token"])
	})

	t.Run("Health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestApp_ReapSessions(t *testing.T) {
	a, _ := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, a.Sessions.Len())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.reapSessions(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return a.Sessions.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	cfg := config.Default()
	cfg.NewsAPI.BaseURL = "newsapi.org/v2"

	_, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
