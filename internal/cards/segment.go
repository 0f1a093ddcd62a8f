// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cards

import (
	"strings"

	"github.com/pdiddy/pdf-cards/pkg/types"
)

// Segmenter turns a flat sequence of lines into cards. It holds only the
// compiled patterns, so one Segmenter can be reused across inputs.
type Segmenter struct {
	classifier *Classifier
}

// NewSegmenter compiles the patterns and returns a Segmenter.
func NewSegmenter(titlePattern, headerPattern string) (*Segmenter, error) {
	c, err := NewClassifier(titlePattern, headerPattern)
	if err != nil {
		return nil, err
	}
	return &Segmenter{classifier: c}, nil
}

// Split splits text into lines and segments them.
func (s *Segmenter) Split(text string) []types.Card {
	return s.SplitLines(Lines(text))
}

// SplitLines segments lines into cards in input order.
//
// Each line is trimmed and stored with a trailing newline. Content receives
// every line seen while a card is open, title and header lines included.
// Lines before the first title are dropped.
func (s *Segmenter) SplitLines(lines []string) []types.Card {
	var acc accumulator
	for _, line := range lines {
		kind := s.classifier.Classify(line, acc.open)
		trimmed := strings.TrimSpace(line)
		switch kind {
		case Title:
			acc.start(trimmed)
		case HeaderContinuation:
			acc.title.WriteString(trimmed)
			acc.title.WriteByte('\n')
		}
		acc.appendContent(trimmed)
	}
	acc.finish()
	return acc.cards
}

// accumulator is the per-call segmentation state.
type accumulator struct {
	open    bool
	title   strings.Builder
	content strings.Builder
	cards   []types.Card
}

// start finalizes the open card, if any, and opens a new one.
func (a *accumulator) start(title string) {
	a.finish()
	a.open = true
	a.title.WriteString(title)
	a.title.WriteByte('\n')
}

func (a *accumulator) appendContent(line string) {
	if !a.open {
		return
	}
	a.content.WriteString(line)
	a.content.WriteByte('\n')
}

// finish emits the open card and resets the builders.
func (a *accumulator) finish() {
	if !a.open {
		return
	}
	a.cards = append(a.cards, types.Card{
		Title:   a.title.String(),
		Content: a.content.String(),
	})
	a.title.Reset()
	a.content.Reset()
	a.open = false
}

// Lines splits text on \n, \r\n and \r. A trailing line break does not
// produce an empty final line, and empty text has no lines.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
