package view

import (
	"github.com/daniilsolovey/newsly/internal/domain"
	"github.com/daniilsolovey/newsly/internal/headlines"
)

const (
	Title = "Newsly"

	NoDescription = "No description"
	StatusLoading = "Loading…"
	StatusFailed  = "Couldn't refresh headlines"
)

type CategoryItem struct {
	Token    domain.Category
	Label    string
	Selected bool
}

type Card struct {
	Title string
	Body  string
	URL   string
}

// Page is everything one screen shows.
type Page struct {
	Title      string
	Categories []CategoryItem
	Cards      []Card
	Status     string
}

// Categories lists the selectable categories with selected marked.
func Categories(selected domain.Category) []CategoryItem {
	list := domain.Categories()
	items := make([]CategoryItem, len(list))
	for i, c := range list {
		items[i] = CategoryItem{
			Token:    c,
			Label:    c.Label(),
			Selected: c == selected,
		}
	}
	return items
}

// Cards maps articles to cards, keeping their order.
func Cards(articles []domain.Article) []Card {
	cards := make([]Card, len(articles))
	for i, a := range articles {
		body := NoDescription
		if a.Description != nil {
			body = *a.Description
		}
		cards[i] = Card{Title: a.Title, Body: body, URL: a.URL}
	}
	return cards
}

// Status is empty when there is nothing to report.
func Status(snap headlines.Snapshot) string {
	switch {
	case snap.Loading:
		return StatusLoading
	case snap.Err != nil:
		return StatusFailed
	default:
		return ""
	}
}

func NewPage(snap headlines.Snapshot) Page {
	return Page{
		Title:      Title,
		Categories: Categories(snap.Category),
		Cards:      Cards(snap.Articles),
		Status:     Status(snap),
	}
}
