// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deck records generated card decks in a SQLite database and
// exports them as YAML or JSON.
package deck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf-cards/pkg/types"
)

// ErrDeckNotFound is returned by Get for an unknown deck ID.
var ErrDeckNotFound = errors.New("deck not found")

// Store manages the deck database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and creates the schema if it
// does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating deck database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening deck database %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema in %s: %w", path, err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS decks (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	source         TEXT NOT NULL,
	title_pattern  TEXT NOT NULL,
	header_pattern TEXT NOT NULL,
	created_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cards (
	deck_id  TEXT NOT NULL REFERENCES decks(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	title    TEXT NOT NULL,
	content  TEXT NOT NULL,
	PRIMARY KEY (deck_id, position)
);`
	_, err := s.db.Exec(schema)
	return err
}

// Save inserts d and its cards in one transaction. A missing ID or
// CreatedAt is filled in; the stored deck is returned.
func (s *Store) Save(ctx context.Context, d types.Deck) (types.Deck, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	d.CreatedAt = d.CreatedAt.UTC().Truncate(time.Second)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Deck{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO decks (id, name, source, title_pattern, header_pattern, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Source, d.TitlePattern, d.HeaderPattern, d.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return types.Deck{}, fmt.Errorf("inserting deck %s: %w", d.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cards (deck_id, position, title, content) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return types.Deck{}, fmt.Errorf("preparing card insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range d.Cards {
		if _, err := stmt.ExecContext(ctx, d.ID, i, c.Title, c.Content); err != nil {
			return types.Deck{}, fmt.Errorf("inserting card %d of deck %s: %w", i, d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return types.Deck{}, fmt.Errorf("committing deck %s: %w", d.ID, err)
	}
	return d, nil
}

// List returns every deck, newest first.
func (s *Store) List(ctx context.Context) ([]types.DeckSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT d.id, d.name, d.source, d.created_at, COUNT(c.position)
FROM decks d LEFT JOIN cards c ON c.deck_id = d.id
GROUP BY d.id
ORDER BY d.created_at DESC, d.id`)
	if err != nil {
		return nil, fmt.Errorf("listing decks: %w", err)
	}
	defer rows.Close()

	var out []types.DeckSummary
	for rows.Next() {
		var sum types.DeckSummary
		var created string
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Source, &created, &sum.CardCount); err != nil {
			return nil, fmt.Errorf("scanning deck row: %w", err)
		}
		if sum.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("parsing created_at of deck %s: %w", sum.ID, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Get returns the deck with its cards in order.
func (s *Store) Get(ctx context.Context, id string) (types.Deck, error) {
	var d types.Deck
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, source, title_pattern, header_pattern, created_at FROM decks WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &d.Source, &d.TitlePattern, &d.HeaderPattern, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Deck{}, fmt.Errorf("%w: %s", ErrDeckNotFound, id)
	}
	if err != nil {
		return types.Deck{}, fmt.Errorf("loading deck %s: %w", id, err)
	}
	if d.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return types.Deck{}, fmt.Errorf("parsing created_at of deck %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT title, content FROM cards WHERE deck_id = ? ORDER BY position`, id)
	if err != nil {
		return types.Deck{}, fmt.Errorf("loading cards of deck %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c types.Card
		if err := rows.Scan(&c.Title, &c.Content); err != nil {
			return types.Deck{}, fmt.Errorf("scanning card of deck %s: %w", id, err)
		}
		d.Cards = append(d.Cards, c)
	}
	return d, rows.Err()
}
