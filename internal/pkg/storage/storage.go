package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidKey = errors.New("invalid object key")
	ErrNotFound   = errors.New("object not found")
)

// BlobStore accepts bytes and hands back a retrievable URL.
type BlobStore interface {
	// Put stores the content under key and returns its public URL.
	Put(ctx context.Context, r io.Reader, key string, contentType string) (string, error)

	// Open retrieves stored content.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object. Missing objects are not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for key.
	URL(key string) string
}

// UploadOptions bounds what an upload endpoint accepts.
type UploadOptions struct {
	MaxSize      int64
	AllowedTypes []string
}

// MessageAttachmentOptions applies to match chat attachments.
var MessageAttachmentOptions = UploadOptions{
	MaxSize: 10 << 20,
	AllowedTypes: []string{
		"image/jpeg", "image/png", "image/gif", "image/webp",
		"video/mp4", "application/pdf",
	},
}

// Allows reports whether contentType is permitted.
func (o UploadOptions) Allows(contentType string) bool {
	if len(o.AllowedTypes) == 0 {
		return true
	}
	for _, t := range o.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
