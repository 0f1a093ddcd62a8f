// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes cards to a PDF: for each card a title page and
// then a content page, each on its own paper size.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/pdf-cards/pkg/types"
)

// ErrNoCards is returned when there is nothing to render.
var ErrNoCards = errors.New("no cards to render")

const (
	margin       = 15.0 // mm
	ptToMM       = 25.4 / 72
	lineSpacing  = 1.25
	indentStep   = 6.0 // mm per list level
	cellPad      = 1.0 // mm inside each cell
	minScale     = 0.25
	scaleStep    = 0.9
	titleBase    = 32.0 // pt
	contentBase  = 12.0 // pt
	creatorLabel = "pdf-cards"
)

// pageStyle controls how blocks are placed on one kind of page.
type pageStyle struct {
	base   float64 // body font size in points
	center bool    // centre the text block vertically and horizontally
}

var (
	titleStyle   = pageStyle{base: titleBase, center: true}
	contentStyle = pageStyle{base: contentBase}
)

// Result describes a rendered document.
type Result struct {
	Cards int
	// Pages lists the format of every page in output order.
	Pages []types.PageFormat
}

// Renderer lays out cards on title and content pages.
type Renderer struct {
	title   pageSpec
	content pageSpec
}

// NewRenderer returns a Renderer for the given page formats.
func NewRenderer(titleFormat, contentFormat types.PageFormat) (*Renderer, error) {
	title, err := resolvePage(titleFormat)
	if err != nil {
		return nil, fmt.Errorf("title page: %w", err)
	}
	content, err := resolvePage(contentFormat)
	if err != nil {
		return nil, fmt.Errorf("content page: %w", err)
	}
	return &Renderer{title: title, content: content}, nil
}

// Render writes a PDF with exactly two pages per card to w.
func (r *Renderer) Render(w io.Writer, cards []types.Card) (Result, error) {
	if len(cards) == 0 {
		return Result{}, ErrNoCards
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(margin, margin, margin)
	doc.SetCellMargin(cellPad)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreator(creatorLabel, true)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	res := Result{Cards: len(cards)}
	for _, c := range cards {
		r.addPage(doc, tr, r.title, titleStyle, c.Title)
		r.addPage(doc, tr, r.content, contentStyle, c.Content)
		res.Pages = append(res.Pages, r.title.format, r.content.format)
	}
	if err := doc.Error(); err != nil {
		return Result{}, fmt.Errorf("laying out cards: %w", err)
	}
	if err := doc.Output(w); err != nil {
		return Result{}, fmt.Errorf("writing PDF: %w", err)
	}
	return res, nil
}

// WriteFile renders cards to path. The PDF is written to a temporary file
// in the same directory and renamed into place, so a failed run never
// leaves a partial file at path.
func (r *Renderer) WriteFile(path string, cards []types.Card) (res Result, err error) {
	if len(cards) == 0 {
		return Result{}, ErrNoCards
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return Result{}, fmt.Errorf("creating output for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	res, err = r.Render(tmp, cards)
	if err != nil {
		return Result{}, err
	}
	if err = tmp.Close(); err != nil {
		return Result{}, fmt.Errorf("closing output for %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return Result{}, fmt.Errorf("moving output to %s: %w", path, err)
	}
	return res, nil
}

// addPage adds one page and draws src on it, shrinking the text until it
// fits. Text that still overflows at the smallest scale is clipped rather
// than spilling onto another page.
func (r *Renderer) addPage(doc *fpdf.Fpdf, tr func(string) string, page pageSpec, style pageStyle, src string) {
	doc.AddPageFormat(page.orientation, page.size)

	blocks := parseBlocks(src)
	if len(blocks) == 0 {
		return
	}

	pw, ph := page.dimensions()
	width := pw - 2*margin
	avail := ph - 2*margin

	scale := 1.0
	height := measure(doc, tr, blocks, width, style, scale)
	for height > avail && scale*scaleStep >= minScale {
		scale *= scaleStep
		height = measure(doc, tr, blocks, width, style, scale)
	}

	y := margin
	if style.center && height < avail {
		y += (avail - height) / 2
	}
	draw(doc, tr, blocks, width, y, style, scale)
}

// font returns the family, style and size used for b.
func font(b block, base float64) (family, weight string, size float64) {
	switch b.kind {
	case blockHeading:
		factor := 1.1
		switch b.level {
		case 1:
			factor = 1.6
		case 2:
			factor = 1.4
		case 3:
			factor = 1.25
		}
		return "Helvetica", "B", base * factor
	case blockCode:
		return "Courier", "", base * 0.9
	case blockQuote:
		return "Helvetica", "I", base
	default:
		return "Helvetica", "", base
	}
}

func indent(b block) float64 {
	switch b.kind {
	case blockListItem, blockQuote:
		return indentStep * float64(max(b.level, 1))
	default:
		return 0
	}
}

func lineHeight(size float64) float64 {
	return size * ptToMM * lineSpacing
}

// wrap sets the block's font on doc and splits its text to width.
func wrap(doc *fpdf.Fpdf, tr func(string) string, b block, width, base float64) (lines []string, lh float64) {
	family, weight, size := font(b, base)
	doc.SetFont(family, weight, size)
	lh = lineHeight(size)
	if b.kind == blockRule || b.text == "" {
		return nil, lh
	}
	return wrapText(doc, tr(b.text), width-indent(b)-2*cellPad), lh
}

// wrapText breaks s into lines no wider than width using the current font.
// s is already translated to the single-byte core font encoding. Words
// longer than width get a line of their own.
func wrapText(doc *fpdf.Fpdf, s string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if doc.GetStringWidth(line+" "+w) <= width {
				line += " " + w
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

func measure(doc *fpdf.Fpdf, tr func(string) string, blocks []block, width float64, style pageStyle, scale float64) float64 {
	base := style.base * scale
	gap := lineHeight(base) * 0.4
	total := 0.0
	for i, b := range blocks {
		lines, lh := wrap(doc, tr, b, width, base)
		if b.kind == blockRule {
			total += lh
		} else {
			total += float64(len(lines)) * lh
		}
		if i > 0 {
			total += gap
		}
	}
	return total
}

func draw(doc *fpdf.Fpdf, tr func(string) string, blocks []block, width, y float64, style pageStyle, scale float64) {
	base := style.base * scale
	gap := lineHeight(base) * 0.4
	align := "L"
	if style.center {
		align = "C"
	}

	for i, b := range blocks {
		if i > 0 {
			y += gap
		}
		lines, lh := wrap(doc, tr, b, width, base)
		if b.kind == blockRule {
			doc.Line(margin, y+lh/2, margin+width, y+lh/2)
			y += lh
			continue
		}
		x := margin + indent(b)
		for _, line := range lines {
			doc.SetXY(x, y)
			doc.CellFormat(width-indent(b), lh, line, "", 0, align, false, 0, "")
			y += lh
		}
	}
}
