package render

import (
	"bytes"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// htmlDocument wraps the rendered fragment in a complete HTML5 document with
// the theme stylesheet and the document title as a leading heading.
const htmlDocument = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s
</style>
</head>
<body>
<h1 class="doc-title">%s</h1>
%s
</body>
</html>`

// markdownConverter converts markdown to themed standalone HTML using
// goldmark. Safe for concurrent use; goldmark parsers are stateless.
type markdownConverter struct {
	md goldmark.Markdown
}

func newMarkdownConverter() *markdownConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithXHTML(),
			// WithUnsafe() intentionally not used; tool callers are remote.
		),
	)
	return &markdownConverter{md: md}
}

// toHTML converts markdown content into a standalone HTML document carrying
// the given title heading and stylesheet.
func (c *markdownConverter) toHTML(title, markdown, css string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	escapedTitle := html.EscapeString(title)
	return fmt.Sprintf(htmlDocument, escapedTitle, css, escapedTitle, buf.String()), nil
}
