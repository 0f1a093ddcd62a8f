// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdiddy/pdf-cards/internal/container"
)

// MarkerConverter runs a PDF through a marker container image that reads
// the PDF on stdin and writes markdown to stdout. The page range is passed
// to the image as --page_range.
type MarkerConverter struct {
	runtime container.Runtime
	image   string
}

// NewMarkerConverter checks that image exists in rt before returning.
func NewMarkerConverter(rt container.Runtime, image string) (*MarkerConverter, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("marker image not available in %s: %w", rt.Name(), err)
	}
	return &MarkerConverter{runtime: rt, image: image}, nil
}

// Convert pipes the PDF through the container and returns its markdown.
func (m *MarkerConverter) Convert(pdfPath string, pages PageRange) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var args []string
	if !pages.All() {
		args = append(args, "--page_range", pages.String())
	}

	var out bytes.Buffer
	if err := m.runtime.Run(m.image, args, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with %s: %w", pdfPath, m.image, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("%s produced empty output for %s", m.image, pdfPath)
	}
	return out.String(), nil
}
