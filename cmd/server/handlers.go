package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mhutchins/docpress/internal/store"
)

// App carries the shared dependencies for the HTTP handlers
type App struct {
	store  *store.Store
	logger *slog.Logger
}

// healthHandler reports whether the server is running
func (app *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("Failed to write health response", "error", err)
	}
}

// serveFileHandler streams a generated artifact by filename (or id).
// Traversal sequences are rejected before the store is consulted.
func (app *App) serveFileHandler(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	if !safeFilename(filename) {
		app.writeError(w, http.StatusNotFound, "File not found")
		return
	}

	reader, art, err := app.store.Open(filename)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.writeError(w, http.StatusNotFound, "File not found")
			return
		}
		app.logger.Error("Failed to open artifact", "filename", filename, "error", err)
		app.writeError(w, http.StatusInternalServerError, "Error reading file")
		return
	}
	defer func() {
		if err := reader.Close(); err != nil {
			app.logger.Error("Failed to close artifact reader", "error", err)
		}
	}()

	// Set headers for file download
	w.Header().Set("Content-Type", art.Type.ContentType())
	w.Header().Set("Content-Length", strconv.FormatInt(art.Size, 10))
	w.Header().Set("Content-Disposition", "attachment; filename=\""+art.Filename+"\"")

	// Stream file to response
	if _, err := io.Copy(w, reader); err != nil {
		app.logger.Error("Error streaming file", "filename", filename, "error", err)
	}
}

// listFilesHandler returns all generated artifacts, oldest first
func (app *App) listFilesHandler(w http.ResponseWriter, _ *http.Request) {
	files := app.store.List()
	if files == nil {
		files = []*store.Artifact{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(FileListResponse{Files: files}); err != nil {
		app.logger.Error("Failed to encode file list", "error", err)
	}
}

func (app *App) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		app.logger.Error("Failed to encode error response", "error", err)
	}
}

// safeFilename rejects empty names and anything carrying path traversal or
// separator characters. Store filenames never contain either.
func safeFilename(name string) bool {
	if name == "" {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	if strings.ContainsAny(name, "/\\") {
		return false
	}
	return true
}
