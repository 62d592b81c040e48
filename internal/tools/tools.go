// Package tools exposes the document rendering operations as MCP tools.
//
// Every call returns a structured JSON result: {success: true, ...} with the
// artifact coordinates, or {success: false, error: ...} for validation,
// render, and store failures. Pipeline errors never surface as protocol
// faults.
package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mhutchins/docpress/internal/metrics"
	"github.com/mhutchins/docpress/internal/render"
	"github.com/mhutchins/docpress/internal/store"
)

// PdfResult is the render_pdf response payload.
type PdfResult struct {
	Success     bool   `json:"success"`
	PdfID       string `json:"pdf_id,omitempty"`
	Filename    string `json:"filename,omitempty"`
	SizeBytes   int64  `json:"size_bytes"`
	DownloadURL string `json:"download_url,omitempty"`
	Error       string `json:"error,omitempty"`
}

// DocxResult is the render_docx response payload.
type DocxResult struct {
	Success     bool   `json:"success"`
	DocxID      string `json:"docx_id,omitempty"`
	Filename    string `json:"filename,omitempty"`
	SizeBytes   int64  `json:"size_bytes"`
	DownloadURL string `json:"download_url,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Service validates tool calls, renders documents, and stores the results.
type Service struct {
	store   *store.Store
	pdf     render.Renderer
	docx    render.Renderer
	baseURL string
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewService creates a Service. baseURL prefixes download URLs and may be
// empty for relative paths; metrics may be nil.
func NewService(
	st *store.Store,
	pdf, docx render.Renderer,
	baseURL string,
	timeout time.Duration,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:   st,
		pdf:     pdf,
		docx:    docx,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
		metrics: m,
		logger:  logger,
	}
}

// Register adds the render_pdf and render_docx tools to the MCP server.
func (s *Service) Register(srv *server.MCPServer) {
	renderPDF := mcp.NewTool("render_pdf",
		mcp.WithDescription(
			"Generate a PDF document from markdown content. "+
				"Returns a download URL for the generated PDF file. "+
				"Supports three styles: 'default' (professional blue accents), "+
				"'modern' (clean contemporary design), 'minimal' (elegant serif)."),
		mcp.WithString("title", mcp.Required(),
			mcp.Description("Document title (appears as heading and in filename)")),
		mcp.WithString("markdown", mcp.Required(),
			mcp.Description("Markdown content for the document body")),
		mcp.WithString("style",
			mcp.Description("Visual style for the PDF"),
			mcp.Enum("default", "modern", "minimal"),
			mcp.DefaultString("default")),
	)
	srv.AddTool(renderPDF, s.handleRenderPDF)

	renderDocx := mcp.NewTool("render_docx",
		mcp.WithDescription(
			"Generate a DOCX (Word) document from markdown content. "+
				"Returns a download URL for the generated DOCX file."),
		mcp.WithString("title", mcp.Required(),
			mcp.Description("Document title")),
		mcp.WithString("markdown", mcp.Required(),
			mcp.Description("Markdown content for the document body")),
	)
	srv.AddTool(renderDocx, s.handleRenderDocx)
}

func (s *Service) handleRenderPDF(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, markdown, failMsg := requireContent(req)
	if failMsg != "" {
		s.observe(render.TypePDF, "validation_error", 0)
		return jsonResult(PdfResult{Success: false, Error: failMsg})
	}

	style, err := render.ParseStyle(req.GetString("style", "default"))
	if err != nil {
		// Unrecognized style names are rejected, not silently defaulted
		s.observe(render.TypePDF, "validation_error", 0)
		return jsonResult(PdfResult{Success: false, Error: err.Error()})
	}

	art, errMsg := s.renderAndStore(ctx, render.TypePDF, s.pdf, title, markdown, style)
	if art == nil {
		return jsonResult(PdfResult{Success: false, Error: errMsg})
	}

	return jsonResult(PdfResult{
		Success:     true,
		PdfID:       art.ID,
		Filename:    art.Filename,
		SizeBytes:   art.Size,
		DownloadURL: s.downloadURL(art.Filename),
	})
}

func (s *Service) handleRenderDocx(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, markdown, failMsg := requireContent(req)
	if failMsg != "" {
		s.observe(render.TypeDOCX, "validation_error", 0)
		return jsonResult(DocxResult{Success: false, Error: failMsg})
	}

	art, errMsg := s.renderAndStore(ctx, render.TypeDOCX, s.docx, title, markdown, render.StyleDefault)
	if art == nil {
		return jsonResult(DocxResult{Success: false, Error: errMsg})
	}

	return jsonResult(DocxResult{
		Success:     true,
		DocxID:      art.ID,
		Filename:    art.Filename,
		SizeBytes:   art.Size,
		DownloadURL: s.downloadURL(art.Filename),
	})
}

// renderAndStore runs the adapter under the configured timeout and persists
// the output. On failure the artifact is nil and errMsg carries the
// caller-facing message.
func (s *Service) renderAndStore(
	ctx context.Context,
	docType render.DocumentType,
	renderer render.Renderer,
	title, markdown string,
	style render.Style,
) (art *store.Artifact, errMsg string) {
	renderCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	data, err := renderer.Render(renderCtx, title, markdown, style)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Error("render failed", "type", docType.String(), "title", title, "error", err)
		s.observe(docType, "render_error", elapsed)
		return nil, docType.String() + " generation failed: " + err.Error()
	}

	art, err = s.store.Put(data, docType, title)
	if err != nil {
		s.logger.Error("storing artifact failed", "type", docType.String(), "title", title, "error", err)
		s.observe(docType, "store_error", elapsed)
		return nil, "storing document failed: " + err.Error()
	}

	s.logger.Info("rendered document",
		"type", docType.String(), "id", art.ID, "filename", art.Filename, "size", art.Size)
	s.observe(docType, "success", elapsed)
	return art, ""
}

func (s *Service) downloadURL(filename string) string {
	return s.baseURL + "/files/" + url.PathEscape(filename)
}

func (s *Service) observe(docType render.DocumentType, outcome string, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveRender(docType.String(), outcome, elapsed)
	}
}

// requireContent extracts and validates the title and markdown arguments.
// A non-empty failMsg means validation failed and the adapter must not run.
func requireContent(req mcp.CallToolRequest) (title, markdown, failMsg string) {
	title, err := req.RequireString("title")
	if err != nil || strings.TrimSpace(title) == "" {
		return "", "", "title must be a non-empty string"
	}
	markdown, err = req.RequireString("markdown")
	if err != nil || strings.TrimSpace(markdown) == "" {
		return "", "", "markdown must be a non-empty string"
	}
	return title, markdown, ""
}

// jsonResult marshals a payload into a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
