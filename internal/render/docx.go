package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

var numberedItemRe = regexp.MustCompile(`^\d+\. `)

// DocxRenderer renders markdown to a Word document. There is a single fixed
// look; the style parameter is ignored.
type DocxRenderer struct{}

// NewDocx creates a DocxRenderer.
func NewDocx() *DocxRenderer {
	return &DocxRenderer{}
}

// Render produces a complete DOCX file from markdown content. Headings,
// bullet and numbered lists, and bold spans are mapped onto Word styles;
// anything else becomes a plain paragraph.
func (r *DocxRenderer) Render(ctx context.Context, title, markdown string, _ Style) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocxGeneration, err)
	}

	if _, err := doc.AddHeading(title, 0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocxGeneration, err)
	}

	for _, raw := range strings.Split(markdown, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "### "):
			_, err = doc.AddHeading(line[4:], 3)
		case strings.HasPrefix(line, "## "):
			_, err = doc.AddHeading(line[3:], 2)
		case strings.HasPrefix(line, "# "):
			_, err = doc.AddHeading(line[2:], 1)
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			p := doc.AddEmptyParagraph()
			p.Style("List Bullet")
			addRuns(p, line[2:])
		case numberedItemRe.MatchString(line):
			p := doc.AddEmptyParagraph()
			p.Style("List Number")
			addRuns(p, numberedItemRe.ReplaceAllString(line, ""))
		default:
			p := doc.AddEmptyParagraph()
			addRuns(p, line)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocxGeneration, err)
		}
	}

	return saveDocx(doc)
}

// addRuns splits **bold** spans into separate runs on the paragraph.
func addRuns(p *docx.Paragraph, text string) {
	parts := strings.Split(text, "**")
	for i, part := range parts {
		if part == "" {
			continue
		}
		run := p.AddText(part)
		// Odd segments sit between ** markers
		if i%2 == 1 {
			run.Bold(true)
		}
	}
}

// saveDocx writes the document through a temporary file and returns its
// bytes.
func saveDocx(doc *docx.RootDoc) ([]byte, error) {
	dir, err := os.MkdirTemp("", "docpress-docx-")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocxGeneration, err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "out.docx")
	if err := doc.SaveTo(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocxGeneration, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocxGeneration, err)
	}
	return data, nil
}
