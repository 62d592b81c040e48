package render

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocxRenderProducesValidArchive(t *testing.T) {
	r := NewDocx()

	md := "# Heading\n\nPlain paragraph with **bold** text.\n\n- first\n- second\n\n1. one\n2. two"
	data, err := r.Render(context.Background(), "Report", md, StyleDefault)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// DOCX files are zip archives
	assert.True(t, bytes.HasPrefix(data, []byte("PK\x03\x04")), "missing zip magic header")

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["word/document.xml"], "archive missing word/document.xml")
}

// rsid attributes are regenerated per document and carry no content.
var rsidAttrRe = regexp.MustCompile(`\s+w:rsid\w*="[0-9A-Fa-f]+"`)

// documentXML extracts word/document.xml from a rendered archive with the
// per-render rsid noise stripped, so two renders can be compared.
func documentXML(t *testing.T, data []byte) string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		require.NoError(t, err)
		return rsidAttrRe.ReplaceAllString(string(raw), "")
	}
	t.Fatal("archive missing word/document.xml")
	return ""
}

func TestDocxRenderIgnoresStyle(t *testing.T) {
	r := NewDocx()

	a, err := r.Render(context.Background(), "T", "content", StyleDefault)
	require.NoError(t, err)
	b, err := r.Render(context.Background(), "T", "content", StyleMinimal)
	require.NoError(t, err)

	// The archive bytes vary per render (zip timestamps, rsids), but the
	// document body must be identical regardless of the style argument.
	assert.Equal(t, documentXML(t, a), documentXML(t, b))
	assert.Contains(t, documentXML(t, a), "content")
}

func TestDocxRenderCancelledContext(t *testing.T) {
	r := NewDocx()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Render(ctx, "T", "content", StyleDefault)
	assert.ErrorIs(t, err, context.Canceled)
}
