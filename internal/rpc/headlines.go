package rpc

import (
	"context"
	"errors"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/newsly/internal/domain"
	"github.com/daniilsolovey/newsly/internal/headlines"
	"github.com/daniilsolovey/newsly/internal/newsapi"
)

//go:generate zenrpc

// HeadlinesService provides RPC methods for top headlines.
type HeadlinesService struct {
	zenrpc.Service
	fetcher headlines.Fetcher
}

func NewHeadlinesService(fetcher headlines.Fetcher) *HeadlinesService {
	return &HeadlinesService{fetcher: fetcher}
}

// Categories returns the selectable categories in display order.
//
//zenrpc:return list of categories
func (s HeadlinesService) Categories(ctx context.Context) (Categories, error) {
	return NewCategories(domain.Categories()), nil
}

// Fetch loads the top headlines of one category, in upstream order.
//
//zenrpc:category category token, empty means no filter
//zenrpc:country two-letter country code, empty means the configured one
//zenrpc:return headlines of the category
//zenrpc:400 invalid category or country
//zenrpc:502 upstream error
//zenrpc:504 upstream unreachable
func (s HeadlinesService) Fetch(ctx context.Context, category string, country string) (*Headlines, error) {
	c, err := domain.ParseCategory(category)
	if err != nil {
		return nil, zenrpc.NewStringError(400, "invalid category")
	}
	if country != "" && len(country) != 2 {
		return nil, zenrpc.NewStringError(400, "invalid country")
	}

	articles, err := s.fetcher.TopHeadlines(ctx, c, country)
	if err != nil {
		return nil, fetchError(err)
	}

	if cr, ok := s.fetcher.(interface{ Country() string }); ok && country == "" {
		country = cr.Country()
	}

	return &Headlines{
		Category: c.String(),
		Country:  country,
		Articles: NewArticles(articles),
	}, nil
}

func fetchError(err error) error {
	var apiErr *newsapi.APIError
	switch {
	case errors.Is(err, newsapi.ErrNetwork):
		return zenrpc.NewStringError(504, "upstream unreachable")
	case errors.As(err, &apiErr):
		return zenrpc.NewStringError(502, "upstream error")
	case errors.Is(err, newsapi.ErrDecode):
		return zenrpc.NewStringError(502, "upstream returned an unexpected response")
	default:
		return err
	}
}
