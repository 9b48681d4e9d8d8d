package models

import (
	"context"
	"io"
)

// Attachment is an uploaded file as received from the client.
type Attachment struct {
	Filename string
	Content  io.Reader
}

// AttachmentStore persists uploaded files and resolves their public URLs.
type AttachmentStore interface {
	// Store writes the content under a fresh unique name and returns it.
	Store(ctx context.Context, content io.Reader, originalName string) (string, error)
	// URL resolves a stored name to its public path, nil for an empty name.
	URL(ref string) *string
}
