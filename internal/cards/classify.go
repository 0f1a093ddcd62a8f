// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cards splits extracted text into flashcards.
// A title pattern opens a new card; a header pattern extends the open
// card's title; every other line is body content.
package cards

import (
	"fmt"
	"regexp"
)

// LineKind is the classification of one input line.
type LineKind int

const (
	// Body is ordinary content.
	Body LineKind = iota
	// Title starts a new card.
	Title
	// HeaderContinuation extends the title of the open card.
	HeaderContinuation
)

func (k LineKind) String() string {
	switch k {
	case Title:
		return "title"
	case HeaderContinuation:
		return "header"
	default:
		return "body"
	}
}

// Classifier decides the LineKind of a line from two compiled patterns.
// Both patterns are searched anywhere in the line, not anchored.
type Classifier struct {
	title  *regexp.Regexp
	header *regexp.Regexp
}

// NewClassifier compiles the title and header patterns. An invalid pattern
// is reported here rather than per line.
func NewClassifier(titlePattern, headerPattern string) (*Classifier, error) {
	title, err := regexp.Compile(titlePattern)
	if err != nil {
		return nil, fmt.Errorf("compiling title pattern %q: %w", titlePattern, err)
	}
	header, err := regexp.Compile(headerPattern)
	if err != nil {
		return nil, fmt.Errorf("compiling header pattern %q: %w", headerPattern, err)
	}
	return &Classifier{title: title, header: header}, nil
}

// Classify returns the kind of line. open reports whether a card is
// currently open; header lines only continue a title when one exists.
// The title pattern takes precedence over the header pattern.
func (c *Classifier) Classify(line string, open bool) LineKind {
	if c.title.MatchString(line) {
		return Title
	}
	if open && c.header.MatchString(line) {
		return HeaderContinuation
	}
	return Body
}
