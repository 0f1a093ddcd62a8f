// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractionBackend identifies the PDF-to-text tool.
type ExtractionBackend string

const (
	// BackendText reads the embedded text layer in-process.
	BackendText ExtractionBackend = "text"
	// BackendMarker pipes the PDF through a marker container image.
	BackendMarker ExtractionBackend = "marker"
)

const (
	DefaultTitlePattern      = `^#+\*\*(\d+\.\d+)`
	DefaultHeaderPattern     = `^#+`
	DefaultTitlePageFormat   = PageA5L
	DefaultContentPageFormat = PageA3L
	DefaultBackend           = BackendMarker
	DefaultMarkerImage       = "marker-pdf:latest"
)

// ExtractionConfig holds settings for turning a PDF into text.
type ExtractionConfig struct {
	// Backend selects the extractor: text or marker.
	Backend ExtractionBackend `json:"backend" yaml:"backend" mapstructure:"backend" validate:"oneof=text marker"`

	// MarkerImage is the container image used by the marker backend.
	MarkerImage string `json:"marker_image" yaml:"marker_image" mapstructure:"marker_image" validate:"required_if=Backend marker"`

	// PageRange is forwarded to the extractor unchanged, e.g. "0,5-10,20".
	PageRange string `json:"page_range,omitempty" yaml:"page_range,omitempty" mapstructure:"page_range"`
}

// Options holds every setting of a card generation run.
type Options struct {
	ExtractionConfig `yaml:",inline" mapstructure:",squash"`

	// Input is the source PDF. Required unless Markdown is set.
	Input string `json:"input,omitempty" yaml:"input,omitempty" mapstructure:"input" validate:"required_without=Markdown"`

	// Markdown is a pre-extracted text file; when set, PDF extraction is skipped.
	Markdown string `json:"markdown,omitempty" yaml:"markdown,omitempty" mapstructure:"markdown"`

	// Output is the destination PDF path.
	Output string `json:"output" yaml:"output" mapstructure:"output" validate:"required"`

	TitlePattern  string `json:"title_pattern" yaml:"title_pattern" mapstructure:"title_pattern" validate:"required"`
	HeaderPattern string `json:"header_pattern" yaml:"header_pattern" mapstructure:"header_pattern" validate:"required"`

	TitlePageFormat   PageFormat `json:"title_page_format" yaml:"title_page_format" mapstructure:"title_page_format" validate:"oneof=A2 A3 A4 A5 A2-L A3-L A4-L A5-L"`
	ContentPageFormat PageFormat `json:"content_page_format" yaml:"content_page_format" mapstructure:"content_page_format" validate:"oneof=A2 A3 A4 A5 A2-L A3-L A4-L A5-L"`

	// ExportPath optionally receives the cards as YAML (or JSON for *.json).
	ExportPath string `json:"export,omitempty" yaml:"export,omitempty" mapstructure:"export"`

	// DeckDB optionally names a SQLite database that records the deck.
	DeckDB string `json:"deck_db,omitempty" yaml:"deck_db,omitempty" mapstructure:"deck_db"`
}

// DefaultOptions returns Options with every default filled in.
func DefaultOptions() Options {
	return Options{
		ExtractionConfig: ExtractionConfig{
			Backend:     DefaultBackend,
			MarkerImage: DefaultMarkerImage,
		},
		TitlePattern:      DefaultTitlePattern,
		HeaderPattern:     DefaultHeaderPattern,
		TitlePageFormat:   DefaultTitlePageFormat,
		ContentPageFormat: DefaultContentPageFormat,
	}
}

// SourcePath returns the path the cards are read from: Markdown when set,
// otherwise Input.
func (o Options) SourcePath() string {
	if o.Markdown != "" {
		return o.Markdown
	}
	return o.Input
}
