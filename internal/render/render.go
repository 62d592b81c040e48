// Package render turns markdown documents into complete PDF or DOCX files.
//
// The two backends live behind the Renderer interface: a Chromium-based PDF
// renderer parameterized by a visual style, and a DOCX writer with a single
// fixed look. Each render is a pure function of its inputs; no state is
// carried between calls beyond the PDF renderer's browser connection.
package render

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for rendering operations.
var (
	ErrUnknownStyle   = errors.New("unknown style")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrDocxGeneration = errors.New("DOCX generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)

// DocumentType identifies the output format of a render.
type DocumentType int

const (
	TypePDF DocumentType = iota
	TypeDOCX
)

// Ext returns the filename extension for the document type, including the dot.
func (t DocumentType) Ext() string {
	if t == TypeDOCX {
		return ".docx"
	}
	return ".pdf"
}

// ContentType returns the MIME type served for the document type.
func (t DocumentType) ContentType() string {
	if t == TypeDOCX {
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "application/pdf"
}

func (t DocumentType) String() string {
	if t == TypeDOCX {
		return "docx"
	}
	return "pdf"
}

// Style selects one of the PDF visual themes. DOCX rendering ignores it.
type Style int

const (
	// StyleDefault is professional styling with blue accent coloring.
	StyleDefault Style = iota
	// StyleModern is a minimal contemporary layout.
	StyleModern
	// StyleMinimal is a serif-typography-forward layout.
	StyleMinimal
)

// ParseStyle maps a style name to its Style value. The empty string means
// StyleDefault; any other unrecognized name is rejected with ErrUnknownStyle
// rather than silently falling back.
func ParseStyle(name string) (Style, error) {
	switch name {
	case "", "default":
		return StyleDefault, nil
	case "modern":
		return StyleModern, nil
	case "minimal":
		return StyleMinimal, nil
	default:
		return StyleDefault, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
}

func (s Style) String() string {
	switch s {
	case StyleModern:
		return "modern"
	case StyleMinimal:
		return "minimal"
	default:
		return "default"
	}
}

// Renderer produces a complete, standalone document from markdown content.
// Implementations must return the full byte sequence of a valid file, never
// a fragment.
type Renderer interface {
	Render(ctx context.Context, title, markdown string, style Style) ([]byte, error)
}
