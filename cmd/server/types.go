package main

import "github.com/mhutchins/docpress/internal/store"

// FileListResponse represents the response for the file listing endpoint
type FileListResponse struct {
	Files []*store.Artifact `json:"files"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Error message"`
}
