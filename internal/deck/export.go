// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-cards/pkg/types"
)

// WriteYAML encodes d as YAML.
func WriteYAML(w io.Writer, d types.Deck) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&d); err != nil {
		return fmt.Errorf("encoding deck as YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON encodes d as indented JSON.
func WriteJSON(w io.Writer, d types.Deck) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding deck as JSON: %w", err)
	}
	return nil
}

// ExportFile writes d to path, as JSON when path ends in .json and as YAML
// otherwise.
func ExportFile(path string, d types.Deck) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = WriteJSON(f, d)
	} else {
		err = WriteYAML(f, d)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("exporting deck to %s: %w", path, err)
	}
	return nil
}
