// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one card generation: validate the options, load
// the source text, split it into cards, and write the card PDF.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/pdf-cards/internal/convert"
	"github.com/pdiddy/pdf-cards/internal/deck"
	"github.com/pdiddy/pdf-cards/pkg/types"
)

// Error kinds. Every error returned by Run wraps exactly one of them.
var (
	ErrConfig     = errors.New("configuration error")
	ErrExtraction = errors.New("extraction error")
	ErrIO         = errors.New("I/O error")
)

// Deps are the collaborators Run needs. Zero fields get production defaults.
type Deps struct {
	// NewConverter builds the PDF converter factory for the configured backend.
	NewConverter func(types.ExtractionConfig) convert.Factory

	// Now stamps saved decks.
	Now func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.NewConverter == nil {
		d.NewConverter = convert.NewFactory
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Result summarizes a run.
type Result struct {
	Cards int
	Pages int
	// DeckID is set when the deck was saved to a deck database.
	DeckID string
}

// Run executes the pipeline. Options are validated before any file is read.
func Run(ctx context.Context, opts types.Options, deps Deps, log *slog.Logger) (Result, error) {
	deps = deps.withDefaults()

	p, err := compile(opts)
	if err != nil {
		return Result{}, err
	}

	log.Info("starting pdf-cards",
		"input", opts.Input,
		"markdown", opts.Markdown,
		"output", opts.Output,
		"title_pattern", opts.TitlePattern,
		"header_pattern", opts.HeaderPattern)

	text, err := load(opts, p, deps)
	if err != nil {
		return Result{}, err
	}
	log.Info("read source", "path", opts.SourcePath(), "bytes", len(text))

	cardList := p.segmenter.Split(text)
	log.Info("generated cards", "count", len(cardList))

	res := Result{Cards: len(cardList)}
	if len(cardList) == 0 {
		log.Warn("no lines matched the title pattern; nothing written", "output", opts.Output)
		return res, nil
	}

	rendered, err := p.renderer.WriteFile(opts.Output, cardList)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	res.Pages = len(rendered.Pages)
	log.Info("wrote cards", "output", opts.Output, "pages", res.Pages)

	if opts.ExportPath == "" && opts.DeckDB == "" {
		return res, nil
	}

	d := types.Deck{
		Name:          deckName(opts.Output),
		Source:        opts.SourcePath(),
		TitlePattern:  opts.TitlePattern,
		HeaderPattern: opts.HeaderPattern,
		CreatedAt:     deps.Now().UTC(),
		Cards:         cardList,
	}

	if opts.DeckDB != "" {
		id, err := saveDeck(ctx, opts.DeckDB, d)
		if err != nil {
			return Result{}, err
		}
		d.ID = id
		res.DeckID = id
		log.Info("saved deck", "deck_db", opts.DeckDB, "id", id)
	}

	if opts.ExportPath != "" {
		if err := deck.ExportFile(opts.ExportPath, d); err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrIO, err)
		}
		log.Info("exported deck", "path", opts.ExportPath)
	}

	return res, nil
}

// load reads the source text. Markdown read failures are I/O errors; PDF
// failures are extraction errors.
func load(opts types.Options, p plan, deps Deps) (string, error) {
	src := convert.Source{Markdown: opts.Markdown, PDF: opts.Input, Pages: p.pages}
	text, err := convert.Load(src, deps.NewConverter(opts.ExtractionConfig))
	if err == nil {
		return text, nil
	}
	if opts.Markdown != "" {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	return "", fmt.Errorf("%w: %s backend: %w", ErrExtraction, opts.Backend, err)
}

func saveDeck(ctx context.Context, path string, d types.Deck) (string, error) {
	store, err := deck.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer store.Close()

	saved, err := store.Save(ctx, d)
	if err != nil {
		return "", fmt.Errorf("%w: saving deck to %s: %w", ErrIO, path, err)
	}
	return saved.ID, nil
}

func deckName(output string) string {
	base := filepath.Base(output)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
