package services

import (
	"context"
	"path"
	"time"
)

// Storage abstracts the blob backend so upload handlers and the LINE webhook
// never know whether bytes land on local disk or in Azure Blob Storage.
type Storage interface {
	// UploadFile stores content under a generated unique name derived from the
	// original filename's extension and returns a retrievable URL. Callers that
	// need collision-proof names must use UploadFileExact instead.
	UploadFile(ctx context.Context, content []byte, filename, contentType string) (string, error)
	// UploadFileExact stores content under exactly the given name.
	UploadFileExact(ctx context.Context, content []byte, exactName, contentType string) (string, error)
	// DeleteFile accepts a bare path or a full URL (signed or not) and returns
	// false on any failure; callers treat false as "already gone".
	DeleteFile(ctx context.Context, fileURLOrPath string) bool
	// FileURL resolves a stored path to its retrievable URL.
	FileURL(filenameOrPath string) string
	// SaveJSON stores a small JSON document at the given path.
	SaveJSON(ctx context.Context, blobPath string, data any) (string, error)
	// GetJSON reads a JSON document; ok is false when the document is missing
	// or malformed, and callers proceed as if absent.
	GetJSON(ctx context.Context, blobPath string) (map[string]any, bool)
	// ListFiles returns stored paths under a prefix.
	ListFiles(ctx context.Context, prefix string) ([]string, error)
	// SignedURL returns a short-lived retrieval URL for the blob.
	SignedURL(ctx context.Context, fileURLOrPath string, expiry time.Duration) (string, error)
	// Download streams back a blob's content and content type.
	Download(ctx context.Context, fileURLOrPath string) ([]byte, string, error)
}

// uniqueBlobName builds the upload name for UploadFile: a JST timestamp plus
// a fixed placeholder suffix, keeping the original extension.
func uniqueBlobName(filename string, now time.Time) string {
	jst := time.FixedZone("JST", 9*60*60)
	return now.In(jst).Format("20060102150405") + "_U99999" + path.Ext(filename)
}
