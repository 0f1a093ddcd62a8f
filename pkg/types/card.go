// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Card is one flashcard: a title page and a content page.
type Card struct {
	// Title is the title line plus any header-continuation lines, one per line.
	Title string `json:"title" yaml:"title"`

	// Content is every line seen while the card was open, including the
	// title and header lines, one per line.
	Content string `json:"content" yaml:"content"`
}

// PageFormat names a paper size. A "-L" suffix selects landscape.
type PageFormat string

const (
	PageA2  PageFormat = "A2"
	PageA3  PageFormat = "A3"
	PageA4  PageFormat = "A4"
	PageA5  PageFormat = "A5"
	PageA2L PageFormat = "A2-L"
	PageA3L PageFormat = "A3-L"
	PageA4L PageFormat = "A4-L"
	PageA5L PageFormat = "A5-L"
)

// PageFormats lists every accepted page format in display order.
var PageFormats = []PageFormat{PageA2, PageA3, PageA4, PageA5, PageA2L, PageA3L, PageA4L, PageA5L}

// Valid reports whether f is one of PageFormats.
func (f PageFormat) Valid() bool {
	for _, p := range PageFormats {
		if f == p {
			return true
		}
	}
	return false
}

// Deck is the card sequence produced by one run, as recorded in the deck store.
type Deck struct {
	// ID is a UUID assigned when the deck is saved.
	ID string `json:"id" yaml:"id"`

	// Name is a human label, by default the output file's base name.
	Name string `json:"name" yaml:"name"`

	// Source is the markdown or PDF path the cards were read from.
	Source string `json:"source" yaml:"source"`

	TitlePattern  string `json:"title_pattern" yaml:"title_pattern"`
	HeaderPattern string `json:"header_pattern" yaml:"header_pattern"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	Cards []Card `json:"cards" yaml:"cards"`
}

// DeckSummary is a deck row without its cards.
type DeckSummary struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Source    string    `json:"source" yaml:"source"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	CardCount int       `json:"card_count" yaml:"card_count"`
}
