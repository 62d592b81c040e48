package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Style
		wantErr bool
	}{
		{name: "default", input: "default", want: StyleDefault},
		{name: "empty means default", input: "", want: StyleDefault},
		{name: "modern", input: "modern", want: StyleModern},
		{name: "minimal", input: "minimal", want: StyleMinimal},
		{name: "unknown rejected", input: "nonexistent", wantErr: true},
		{name: "case sensitive", input: "Modern", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStyle(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownStyle)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocumentType(t *testing.T) {
	assert.Equal(t, ".pdf", TypePDF.Ext())
	assert.Equal(t, ".docx", TypeDOCX.Ext())
	assert.Equal(t, "application/pdf", TypePDF.ContentType())
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		TypeDOCX.ContentType())
	assert.Equal(t, "pdf", TypePDF.String())
	assert.Equal(t, "docx", TypeDOCX.String())
}

func TestStyleCSSPalettes(t *testing.T) {
	tests := []struct {
		name     string
		style    Style
		contains []string
		excludes []string
	}{
		{
			name:     "default carries blue accent",
			style:    StyleDefault,
			contains: []string{"#3b82f6", "#1a1a1a", "#333333"},
		},
		{
			name:     "modern carries slate palette",
			style:    StyleModern,
			contains: []string{"#111827", "#374151", "#1f2937", "#3b82f6"},
		},
		{
			name:     "minimal is serif and gray",
			style:    StyleMinimal,
			contains: []string{"serif", "#222222", "#666666"},
			excludes: []string{"#3b82f6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			css := styleCSS(tt.style)
			for _, want := range tt.contains {
				assert.Contains(t, css, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, css, unwanted)
			}
		})
	}
}

func TestMarkdownToHTML(t *testing.T) {
	c := newMarkdownConverter()

	html, err := c.toHTML("Report", "# Hello\n\nWorld with **bold** text", styleCSS(StyleDefault))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Report</title>")
	assert.Contains(t, html, `<h1 class="doc-title">Report</h1>`)
	assert.Contains(t, html, "Hello")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, "</html>")
}

func TestMarkdownToHTMLTables(t *testing.T) {
	c := newMarkdownConverter()

	md := "| Name | Value |\n|------|-------|\n| a | 1 |"
	html, err := c.toHTML("T", md, "")
	require.NoError(t, err)

	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<th>Name</th>")
	assert.Contains(t, html, "<td>a</td>")
}

func TestMarkdownToHTMLEscapesTitle(t *testing.T) {
	c := newMarkdownConverter()

	html, err := c.toHTML(`<script>alert("x")</script>`, "body", "")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestMarkdownToHTMLRawHTMLNotPassedThrough(t *testing.T) {
	c := newMarkdownConverter()

	html, err := c.toHTML("T", `<script>alert("x")</script>`, "")
	require.NoError(t, err)
	// goldmark without WithUnsafe renders raw HTML as an omitted block
	assert.NotContains(t, html, `<script>alert`)
}
