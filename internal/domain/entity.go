package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category is a NewsAPI top-headlines category token.
type Category string

const (
	CategoryNone          Category = ""
	CategoryGeneral       Category = "general"
	CategoryBusiness      Category = "business"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryScience       Category = "science"
	CategorySports        Category = "sports"
	CategoryTechnology    Category = "technology"

	DefaultCategory = CategoryGeneral
	DefaultCountry  = "us"
)

var ErrUnknownCategory = errors.New("unknown category")

var categories = []Category{
	CategoryGeneral,
	CategoryBusiness,
	CategoryEntertainment,
	CategoryHealth,
	CategoryScience,
	CategorySports,
	CategoryTechnology,
}

// Categories returns the selectable categories in display order.
func Categories() []Category {
	list := make([]Category, len(categories))
	copy(list, categories)
	return list
}

// ParseCategory accepts one of the known tokens or the empty string.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Valid reports whether c is a known token or CategoryNone.
func (c Category) Valid() bool {
	if c == CategoryNone {
		return true
	}
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label is the token with its first letter upper-cased.
func (c Category) Label() string {
	if c == CategoryNone {
		return ""
	}
	r, size := utf8.DecodeRuneInString(string(c))
	return string(unicode.ToTitle(r)) + strings.ToLower(string(c)[size:])
}

func (c Category) String() string {
	return string(c)
}

// Article is one headline. Description is nil when upstream sent null.
type Article struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
}

// HasDescription reports whether upstream sent a description.
func (a Article) HasDescription() bool {
	return a.Description != nil
}
