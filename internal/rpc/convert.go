package rpc

import "github.com/daniilsolovey/newsly/internal/domain"

func NewCategory(c domain.Category) Category {
	return Category{
		Token: c.String(),
		Label: c.Label(),
	}
}

func NewArticle(a domain.Article) Article {
	return Article{
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
	}
}
