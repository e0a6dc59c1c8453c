package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded files live. The spot photo service only
// ever touches files through this interface.
type Storage interface {
	// Save writes content under the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at the given relative path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at the given relative path. Missing files are
	// not an error.
	Delete(ctx context.Context, path string) error
}
