package storage

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrBlobNotFound indicates the requested blob does not exist.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrUnavailable indicates the blob store could not be reached.
	ErrUnavailable = errors.New("blob storage unavailable")
)

// DefaultContainer is assumed when a blob path carries no container segment.
const DefaultContainer = "images"

// BlobInfo describes one blob in a container listing.
type BlobInfo struct {
	Name      string
	SizeBytes int64
}

// BlobSource supplies raw image bytes by name. Paths follow the
// "<container>/<name>" convention used by the upload pipeline.
type BlobSource interface {
	// Fetch downloads the blob at the given path.
	Fetch(ctx context.Context, path string) ([]byte, error)

	// List enumerates the blobs currently present in a container.
	List(ctx context.Context, container string) ([]BlobInfo, error)
}

// SplitBlobPath splits "<container>/<name>" into its parts, falling back to
// the default container when no separator is present.
func SplitBlobPath(path string) (container, name string) {
	if i := strings.Index(path, "/"); i >= 0 {
		return path[:i], path[i+1:]
	}
	return DefaultContainer, path
}
