// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-cards/pkg/types"
)

// fakeConverter returns canned text or an error and records its calls.
type fakeConverter struct {
	output string
	err    error

	calls     int
	lastPath  string
	lastPages PageRange
}

func (f *fakeConverter) Convert(pdfPath string, pages PageRange) (string, error) {
	f.calls++
	f.lastPath, f.lastPages = pdfPath, pages
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func factoryFor(c Converter) (Factory, *int) {
	built := 0
	return func() (Converter, error) {
		built++
		return c, nil
	}, &built
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MarkdownTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	md := writeFile(t, dir, "notes.md", "##**1.1 Intro\nbody\n")
	conv := &fakeConverter{output: "should not be used"}
	factory, built := factoryFor(conv)

	text, err := Load(Source{Markdown: md, PDF: filepath.Join(dir, "book.pdf")}, factory)

	require.NoError(t, err)
	assert.Equal(t, "##**1.1 Intro\nbody\n", text)
	assert.Zero(t, *built, "factory must not be called for markdown input")
	assert.Zero(t, conv.calls)
}

func TestLoad_PDF(t *testing.T) {
	pages, err := ParsePageRange("0,2-3")
	require.NoError(t, err)
	conv := &fakeConverter{output: "# extracted"}
	factory, built := factoryFor(conv)

	text, err := Load(Source{PDF: "book.pdf", Pages: pages}, factory)

	require.NoError(t, err)
	assert.Equal(t, "# extracted", text)
	assert.Equal(t, 1, *built)
	assert.Equal(t, "book.pdf", conv.lastPath)
	assert.Equal(t, "0,2-3", conv.lastPages.String())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     Source
		factory Factory
		wantIs  error
		errPart string
	}{
		{
			name:    "no source",
			src:     Source{},
			factory: func() (Converter, error) { t.Fatal("factory called"); return nil, nil },
			wantIs:  ErrNoSource,
		},
		{
			name:    "factory failure",
			src:     Source{PDF: "a.pdf"},
			factory: func() (Converter, error) { return nil, errors.New("no docker") },
			errPart: "preparing converter for a.pdf",
		},
		{
			name: "converter failure",
			src:  Source{PDF: "a.pdf"},
			factory: func() (Converter, error) {
				return &fakeConverter{err: errors.New("corrupt xref")}, nil
			},
			errPart: "corrupt xref",
		},
		{
			name:    "missing markdown",
			src:     Source{Markdown: "/does/not/exist.md"},
			errPart: "reading markdown /does/not/exist.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.src, tt.factory)
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.errPart != "" {
				assert.Contains(t, err.Error(), tt.errPart)
			}
		})
	}
}

func TestReadMarkdown_InvalidUTF8(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.md", "ok \xff\xfe broken")

	_, err := ReadMarkdown(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid UTF-8")
}

func TestNewFactory_TextBackend(t *testing.T) {
	c, err := NewFactory(types.ExtractionConfig{Backend: types.BackendText})()

	require.NoError(t, err)
	assert.IsType(t, &TextConverter{}, c)
}

func TestNewFactory_UnknownBackend(t *testing.T) {
	_, err := NewFactory(types.ExtractionConfig{Backend: "ocr"})()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported backend "ocr"`)
}
