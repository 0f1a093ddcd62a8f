// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert produces the text that cards are cut from: either a
// pre-extracted markdown file or a PDF run through a pluggable backend.
package convert

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/pdiddy/pdf-cards/internal/container"
	"github.com/pdiddy/pdf-cards/pkg/types"
)

// ErrNoSource is returned when neither a markdown file nor a PDF is given.
var ErrNoSource = errors.New("either a PDF input or a markdown file is required")

// Converter transforms a PDF file into text. Different backends (the
// in-process text layer reader, the marker container) implement it.
type Converter interface {
	// Convert reads the PDF at pdfPath, restricted to pages, and returns its text.
	Convert(pdfPath string, pages PageRange) (string, error)
}

// Factory builds a Converter on demand. Load only calls it when a PDF has
// to be extracted, so backends with expensive setup are never constructed
// for markdown input.
type Factory func() (Converter, error)

// Source names where the text comes from.
type Source struct {
	// Markdown, when set, takes precedence over PDF.
	Markdown string
	PDF      string
	Pages    PageRange
}

// Load returns the source text. A markdown path wins over a PDF path, and
// in that case newConverter is never called.
func Load(src Source, newConverter Factory) (string, error) {
	if src.Markdown != "" {
		return ReadMarkdown(src.Markdown)
	}
	if src.PDF == "" {
		return "", ErrNoSource
	}

	c, err := newConverter()
	if err != nil {
		return "", fmt.Errorf("preparing converter for %s: %w", src.PDF, err)
	}
	text, err := c.Convert(src.PDF, src.Pages)
	if err != nil {
		return "", err
	}
	return text, nil
}

// ReadMarkdown reads a UTF-8 text file.
func ReadMarkdown(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading markdown %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("reading markdown %s: file is not valid UTF-8", path)
	}
	return string(data), nil
}

// NewFactory returns a Factory for the configured backend. The marker
// backend detects a container runtime when the factory is called.
func NewFactory(cfg types.ExtractionConfig) Factory {
	return func() (Converter, error) {
		switch cfg.Backend {
		case types.BackendText:
			return NewTextConverter(), nil
		case types.BackendMarker, "":
			rt, err := container.DetectRuntime()
			if err != nil {
				return nil, err
			}
			image := cfg.MarkerImage
			if image == "" {
				image = types.DefaultMarkerImage
			}
			return NewMarkerConverter(rt, image)
		default:
			return nil, fmt.Errorf("unsupported backend %q: use text or marker", cfg.Backend)
		}
	}
}
