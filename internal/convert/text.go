// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextConverter extracts the embedded text layer of a PDF in-process.
// Scanned, image-only PDFs produce no text.
type TextConverter struct{}

// NewTextConverter returns a TextConverter.
func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

// Convert returns the plain text of the selected pages, separated by blank lines.
func (t *TextConverter) Convert(pdfPath string, pages PageRange) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	selected := pages.Pages()
	if selected == nil {
		selected = make([]int, numPages)
		for i := range selected {
			selected[i] = i
		}
	}

	fonts := make(map[string]*pdf.Font)
	var parts []string
	for _, idx := range selected {
		if idx >= numPages {
			return "", fmt.Errorf("extracting %s: page %d out of range (document has %d pages)", pdfPath, idx, numPages)
		}
		p := r.Page(idx + 1)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		text, err := p.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("extracting %s page %d: %w", pdfPath, idx, err)
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}
