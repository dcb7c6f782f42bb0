package newsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/daniilsolovey/newsly/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioBody = `{"status":"ok","totalResults":2,"articles":[` +
	`{"title":"A","description":null,"url":"http://x","source":{"name":"s"}},` +
	`{"title":"B","description":"d","url":"http://y"}]}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL + "/v2/", APIKey: "test-key"}, srv.Client())
	require.NoError(t, err)
	return client
}

func TestTopHeadlines_Scenario(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/top-headlines", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "technology", r.URL.Query().Get("category"))
		assert.Equal(t, "us", r.URL.Query().Get("country"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(scenarioBody))
	})

	articles, err := client.TopHeadlines(context.Background(), domain.CategoryTechnology, "us")
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "A", articles[0].Title)
	assert.Nil(t, articles[0].Description)
	assert.Equal(t, "http://x", articles[0].URL)

	assert.Equal(t, "B", articles[1].Title)
	require.NotNil(t, articles[1].Description)
	assert.Equal(t, "d", *articles[1].Description)
	assert.Equal(t, "http://y", articles[1].URL)
}

func TestTopHeadlines_DefaultCountryAndEmptyCategory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "us", q.Get("country"))
		assert.True(t, q.Has("category"))
		assert.Equal(t, "", q.Get("category"))
		_, _ = w.Write([]byte(`{"status":"ok","articles":[]}`))
	})

	articles, err := client.TopHeadlines(context.Background(), domain.CategoryNone, "")
	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestTopHeadlines_NullArticles(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","articles":null}`))
	})

	articles, err := client.TopHeadlines(context.Background(), domain.CategoryGeneral, "")
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestTopHeadlines_DecodeError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>oops</html>"},
		{name: "articles is not a list", body: `{"articles":{"title":"A"}}`},
		{name: "title is not a string", body: `{"articles":[{"title":5}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.TopHeadlines(context.Background(), domain.CategoryGeneral, "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDecode))
			assert.False(t, errors.Is(err, ErrNetwork))

			var decodeErr *DecodeError
			assert.True(t, errors.As(err, &decodeErr))
		})
	}
}

func TestTopHeadlines_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid."}`))
	})

	_, err := client.TopHeadlines(context.Background(), domain.CategoryGeneral, "")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "apiKeyInvalid", apiErr.Code)
	assert.Equal(t, "Your API key is invalid.", apiErr.Message)
}

func TestTopHeadlines_APIErrorWithoutBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.TopHeadlines(context.Background(), domain.CategoryGeneral, "")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "newsapi: unexpected status 500", apiErr.Error())
}

func TestTopHeadlines_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client, err := NewClient(Config{BaseURL: baseURL, APIKey: "k"}, nil)
	require.NoError(t, err)

	_, err = client.TopHeadlines(context.Background(), domain.CategoryGeneral, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
	assert.False(t, errors.Is(err, ErrDecode))
}

func TestTopHeadlines_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.TopHeadlines(ctx, domain.CategoryGeneral, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTopHeadlines_UnknownCategory(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := client.TopHeadlines(context.Background(), domain.Category("weather"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownCategory))
	assert.Equal(t, int32(0), calls.Load())
}

func TestNewClient(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		client, err := NewClient(Config{APIKey: "k"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://newsapi.org/v2/top-headlines", client.endpoint.String())
		assert.Equal(t, "us", client.Country())
		assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	})

	t.Run("BaseURLWithoutTrailingSlash", func(t *testing.T) {
		client, err := NewClient(Config{BaseURL: "https://example.com/v2", Country: "gb"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/v2/top-headlines", client.endpoint.String())
		assert.Equal(t, "gb", client.Country())
	})

	t.Run("RelativeBaseURL", func(t *testing.T) {
		_, err := NewClient(Config{BaseURL: "/v2/"}, nil)
		assert.Error(t, err)
	})
}
