// cmd/server/main.go docpress server entry point
//
// Serves the render_pdf and render_docx MCP tools over streamable HTTP at
// /mcp and the generated artifacts at /files/{filename}.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/joho/godotenv/autoload"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mhutchins/docpress/internal/config"
	"github.com/mhutchins/docpress/internal/metrics"
	"github.com/mhutchins/docpress/internal/middleware"
	"github.com/mhutchins/docpress/internal/render"
	"github.com/mhutchins/docpress/internal/store"
	"github.com/mhutchins/docpress/internal/tools"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Setup logger
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Logging.Level)}
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	logger.Info("Starting docpress server...")

	// Initialize artifact store
	artifacts, err := store.New(cfg.Storage.Path, store.Limits{
		MaxArtifactBytes: cfg.Storage.MaxArtifactSize,
		MaxArtifacts:     cfg.Storage.MaxArtifacts,
		MaxTotalBytes:    cfg.Storage.MaxTotalBytes,
	}, logger)
	if err != nil {
		log.Fatal("Unable to initialize artifact store:", err)
	}
	logger.Info("Artifact store initialized", "path", cfg.Storage.Path,
		"max_artifacts", cfg.Storage.MaxArtifacts, "max_total_bytes", cfg.Storage.MaxTotalBytes)

	// Initialize renderers
	pdfRenderer := render.NewPDF(render.PDFOptions{
		Timeout:    time.Duration(cfg.Render.TimeoutSeconds) * time.Second,
		BrowserBin: cfg.Render.BrowserBin,
	})
	defer func() {
		if err := pdfRenderer.Close(); err != nil {
			logger.Error("Failed to close PDF renderer", "error", err)
		}
	}()
	docxRenderer := render.NewDocx()

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry, artifacts.Count, artifacts.TotalBytes)
	if err != nil {
		log.Fatal("Unable to register metrics:", err)
	}

	// Initialize MCP server and tools
	mcpServer := server.NewMCPServer("docpress", version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	renderTimeout := time.Duration(cfg.Render.TimeoutSeconds) * time.Second
	svc := tools.NewService(artifacts, pdfRenderer, docxRenderer,
		cfg.Server.BaseURL, renderTimeout, m, logger)
	svc.Register(mcpServer)

	// Stateless streamable HTTP transport, mounted on the main router
	mcpHandler := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)

	// Initialize app
	app := &App{
		store:  artifacts,
		logger: logger,
	}

	// Create Chi router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

	// Routes
	r.Get("/health", app.healthHandler)
	r.Get("/files", app.listFilesHandler)
	r.Get("/files/{filename}", app.serveFileHandler)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Mount("/mcp", mcpHandler)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}
	logger.Info("Server listening", "address", addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("Server failed", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
