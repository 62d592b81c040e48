package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// PDF page dimensions in inches (US Letter).
const (
	paperWidthInches  = 8.5
	paperHeightInches = 11
	marginInches      = 0.75
)

// htmlToPDF abstracts the browser step so tests can run without Chromium.
type htmlToPDF interface {
	Convert(ctx context.Context, htmlContent string) ([]byte, error)
	Close() error
}

// PDFRenderer renders markdown to PDF through headless Chromium, applying
// one of the named visual themes.
type PDFRenderer struct {
	converter htmlToPDF
	markdown  *markdownConverter
}

// PDFOptions configures a PDFRenderer.
type PDFOptions struct {
	// Timeout bounds a single page load plus print.
	Timeout time.Duration
	// BrowserBin points at a pre-installed Chromium binary. When empty, rod
	// downloads and manages its own.
	BrowserBin string
}

// NewPDF creates a PDFRenderer. The browser is connected lazily on first
// render; Close releases it.
func NewPDF(opts PDFOptions) *PDFRenderer {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &PDFRenderer{
		converter: &rodConverter{timeout: opts.Timeout, bin: opts.BrowserBin},
		markdown:  newMarkdownConverter(),
	}
}

// Render produces a complete PDF file from markdown content.
func (r *PDFRenderer) Render(ctx context.Context, title, markdown string, style Style) ([]byte, error) {
	htmlContent, err := r.markdown.toHTML(title, markdown, styleCSS(style))
	if err != nil {
		return nil, err
	}
	return r.converter.Convert(ctx, htmlContent)
}

// Close releases the underlying browser, if one was started.
func (r *PDFRenderer) Close() error {
	return r.converter.Close()
}

// rodConverter implements htmlToPDF using go-rod. A single browser instance
// is shared across renders; rod pages are cheap to create per call.
type rodConverter struct {
	mu      sync.Mutex
	browser *rod.Browser
	timeout time.Duration
	bin     string
}

// ensureBrowser lazily launches and connects to Chromium.
func (c *rodConverter) ensureBrowser() (*rod.Browser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browser != nil {
		return c.browser, nil
	}

	l := launcher.New()
	if c.bin != "" {
		// Pre-installed browser (Docker/containerized environments)
		l = l.Bin(c.bin).NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	c.browser = browser
	return c.browser, nil
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browser != nil {
		err := c.browser.Close()
		c.browser = nil
		return err
	}
	return nil
}

// Convert writes the HTML to a temporary file, opens it in headless
// Chromium, and prints it to PDF.
func (c *rodConverter) Convert(ctx context.Context, htmlContent string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := c.ensureBrowser()
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "docpress-*.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()
	if _, err := tmp.WriteString(htmlContent); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

func floatPtr(f float64) *float64 { return &f }
