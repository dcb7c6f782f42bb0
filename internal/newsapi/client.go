package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/daniilsolovey/newsly/internal/domain"
)

const (
	DefaultBaseURL = "https://newsapi.org/v2/"
	DefaultTimeout = 30 * time.Second

	topHeadlinesPath = "top-headlines"
)

// Config is the static connection data for the upstream API.
type Config struct {
	BaseURL string
	APIKey  string
	Country string
	Timeout time.Duration
}

// Client issues top-headlines requests against NewsAPI.
type Client struct {
	endpoint   *url.URL
	apiKey     string
	country    string
	httpClient *http.Client
}

// NewClient builds a client; httpClient may be nil, in which case one with
// cfg.Timeout is created.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", base)
	}

	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	country := cfg.Country
	if country == "" {
		country = domain.DefaultCountry
	}

	return &Client{
		endpoint:   u.JoinPath(topHeadlinesPath),
		apiKey:     cfg.APIKey,
		country:    country,
		httpClient: httpClient,
	}, nil
}

// Country is the country used when callers pass an empty one.
func (c *Client) Country() string {
	return c.country
}

// TopHeadlines returns the articles for category and country in response
// order. An empty country falls back to the configured one.
func (c *Client) TopHeadlines(ctx context.Context, category domain.Category, country string) ([]domain.Article, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	if country == "" {
		country = c.country
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(category, country), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var raw newsResponse
		if json.NewDecoder(resp.Body).Decode(&raw) == nil {
			apiErr.Code = raw.Code
			apiErr.Message = raw.Message
		}
		return nil, apiErr
	}

	var raw newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &DecodeError{Err: err}
	}

	articles := make([]domain.Article, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		articles = append(articles, domain.Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
		})
	}

	return articles, nil
}

func (c *Client) requestURL(category domain.Category, country string) string {
	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("category", category.String())
	q.Set("country", country)

	u := *c.endpoint
	u.RawQuery = q.Encode()
	return u.String()
}

type newsResponse struct {
	Status       string        `json:"status"`
	TotalResults int           `json:"totalResults"`
	Articles     []newsArticle `json:"articles"`
	Code         string        `json:"code"`
	Message      string        `json:"message"`
}

type newsArticle struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
}
