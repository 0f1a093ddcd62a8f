// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRuntime implements container.Runtime.
type fakeRuntime struct {
	imageErr error
	runErr   error
	output   string

	gotImage string
	gotArgs  []string
	gotInput string
}

func (f *fakeRuntime) Name() string   { return "docker" }
func (f *fakeRuntime) Available() bool { return true }

func (f *fakeRuntime) ImageExists(image string) error {
	return f.imageErr
}

func (f *fakeRuntime) Run(image string, args []string, stdin io.Reader, stdout io.Writer) error {
	f.gotImage, f.gotArgs = image, args
	data, _ := io.ReadAll(stdin)
	f.gotInput = string(data)
	if f.runErr != nil {
		return f.runErr
	}
	_, err := io.WriteString(stdout, f.output)
	return err
}

func TestMarkerConverter_Convert(t *testing.T) {
	pdfPath := writeFile(t, t.TempDir(), "book.pdf", "%PDF-fake")
	rt := &fakeRuntime{output: "##**1.1 Heading\ntext"}
	conv, err := NewMarkerConverter(rt, "marker-pdf:latest")
	require.NoError(t, err)

	pages, err := ParsePageRange("0,5-10")
	require.NoError(t, err)
	text, err := conv.Convert(pdfPath, pages)

	require.NoError(t, err)
	assert.Equal(t, "##**1.1 Heading\ntext", text)
	assert.Equal(t, "marker-pdf:latest", rt.gotImage)
	assert.Equal(t, []string{"--page_range", "0,5-10"}, rt.gotArgs)
	assert.Equal(t, "%PDF-fake", rt.gotInput)
}

func TestMarkerConverter_AllPagesSendsNoArgs(t *testing.T) {
	pdfPath := writeFile(t, t.TempDir(), "book.pdf", "%PDF-fake")
	rt := &fakeRuntime{output: "text"}
	conv, err := NewMarkerConverter(rt, "marker-pdf:latest")
	require.NoError(t, err)

	_, err = conv.Convert(pdfPath, PageRange{})

	require.NoError(t, err)
	assert.Empty(t, rt.gotArgs)
}

func TestMarkerConverter_Errors(t *testing.T) {
	dir := t.TempDir()
	pdfPath := writeFile(t, dir, "book.pdf", "%PDF-fake")

	t.Run("missing image", func(t *testing.T) {
		_, err := NewMarkerConverter(&fakeRuntime{imageErr: errors.New("no such image")}, "marker-pdf:latest")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "marker image not available in docker")
	})

	t.Run("missing pdf", func(t *testing.T) {
		conv, err := NewMarkerConverter(&fakeRuntime{}, "marker-pdf:latest")
		require.NoError(t, err)
		_, err = conv.Convert(filepath.Join(dir, "nope.pdf"), PageRange{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opening PDF")
	})

	t.Run("container failure", func(t *testing.T) {
		conv, err := NewMarkerConverter(&fakeRuntime{runErr: errors.New("exit 1")}, "marker-pdf:latest")
		require.NoError(t, err)
		_, err = conv.Convert(pdfPath, PageRange{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exit 1")
	})

	t.Run("empty output", func(t *testing.T) {
		conv, err := NewMarkerConverter(&fakeRuntime{}, "marker-pdf:latest")
		require.NoError(t, err)
		_, err = conv.Convert(pdfPath, PageRange{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty output")
	})
}
