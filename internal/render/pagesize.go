// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/pdf-cards/pkg/types"
)

// portrait sizes in millimetres.
var paperSizes = map[string]fpdf.SizeType{
	"A2": {Wd: 420, Ht: 594},
	"A3": {Wd: 297, Ht: 420},
	"A4": {Wd: 210, Ht: 297},
	"A5": {Wd: 148, Ht: 210},
}

// pageSpec is a resolved page format: an fpdf orientation and portrait size.
type pageSpec struct {
	format      types.PageFormat
	orientation string
	size        fpdf.SizeType
}

func resolvePage(f types.PageFormat) (pageSpec, error) {
	name, landscape := strings.CutSuffix(string(f), "-L")
	size, ok := paperSizes[name]
	if !ok || !f.Valid() {
		return pageSpec{}, fmt.Errorf("unsupported page format %q", f)
	}
	orientation := "P"
	if landscape {
		orientation = "L"
	}
	return pageSpec{format: f, orientation: orientation, size: size}, nil
}

// dimensions returns the page width and height as laid out.
func (p pageSpec) dimensions() (w, h float64) {
	if p.orientation == "L" {
		return p.size.Ht, p.size.Wd
	}
	return p.size.Wd, p.size.Ht
}
