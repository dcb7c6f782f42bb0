package rest

import "github.com/daniilsolovey/newsly/internal/domain"

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewArticle(a domain.Article) Article {
	return Article{
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
	}
}

func NewCategory(c domain.Category) Category {
	return Category{
		Token: c.String(),
		Label: c.Label(),
	}
}

func NewArticles(list []domain.Article) []Article {
	return Map(list, NewArticle)
}

func NewCategories(list []domain.Category) []Category {
	return Map(list, NewCategory)
}
