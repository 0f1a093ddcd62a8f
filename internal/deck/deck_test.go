// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-cards/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index", "decks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleDeck() types.Deck {
	return types.Deck{
		Name:          "algebra",
		Source:        "algebra.md",
		TitlePattern:  `^\d+\.\d+`,
		HeaderPattern: `^#`,
		Cards: []types.Card{
			{Title: "1.1 Groups\n", Content: "1.1 Groups\nA group is...\n"},
			{Title: "1.2 Rings\n", Content: "1.2 Rings\n"},
			{Title: "1.3 Fields\n", Content: "1.3 Fields\nA field is...\n"},
		},
	}
}

func TestSaveAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, sampleDeck())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
	got.CreatedAt = saved.CreatedAt
	assert.Equal(t, saved, got)
	assert.Equal(t, "1.2 Rings\n", got.Cards[1].Title)
}

func TestSave_KeepsGivenID(t *testing.T) {
	s := testStore(t)
	d := sampleDeck()
	d.ID = "fixed-id"
	d.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	saved, err := s.Save(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", saved.ID)

	_, err = s.Save(context.Background(), d)
	require.Error(t, err, "duplicate ID must fail")
}

func TestGet_NotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrDeckNotFound)
}

func TestList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	older := sampleDeck()
	older.Name = "older"
	older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := sampleDeck()
	newer.Name = "newer"
	newer.Cards = newer.Cards[:1]
	newer.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.Save(ctx, older)
	require.NoError(t, err)
	_, err = s.Save(ctx, newer)
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Name)
	assert.Equal(t, 1, list[0].CardCount)
	assert.Equal(t, "older", list[1].Name)
	assert.Equal(t, 3, list[1].CardCount)
}

func TestList_Empty(t *testing.T) {
	list, err := testStore(t).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWriteYAML(t *testing.T) {
	d := sampleDeck()
	d.ID = "abc"

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, d))

	var back types.Deck
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, d.Cards, back.Cards)
	assert.Contains(t, buf.String(), "title_pattern:")
}

func TestExportFile(t *testing.T) {
	dir := t.TempDir()
	d := sampleDeck()

	t.Run("json by extension", func(t *testing.T) {
		path := filepath.Join(dir, "deck.json")
		require.NoError(t, ExportFile(path, d))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var back types.Deck
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, d.Cards, back.Cards)
	})

	t.Run("yaml otherwise", func(t *testing.T) {
		path := filepath.Join(dir, "deck.yaml")
		require.NoError(t, ExportFile(path, d))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var back types.Deck
		require.NoError(t, yaml.Unmarshal(data, &back))
		assert.Equal(t, "algebra", back.Name)
	})

	t.Run("unwritable path", func(t *testing.T) {
		err := ExportFile(filepath.Join(dir, "missing", "deck.yaml"), d)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "creating export")
	})
}
