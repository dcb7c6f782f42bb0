package rpc

import "github.com/daniilsolovey/newsly/internal/domain"

type Categories []Category

type Articles []Article

func NewCategories(in []domain.Category) Categories {
	out := make(Categories, len(in))
	for i := range in {
		out[i] = NewCategory(in[i])
	}
	return out
}

func NewArticles(in []domain.Article) Articles {
	out := make(Articles, len(in))
	for i := range in {
		out[i] = NewArticle(in[i])
	}
	return out
}
