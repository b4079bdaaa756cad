package storage

import (
	"context"
	"time"
)

// Object describes one stored envelope.
type Object struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Storage persists envelopes under opaque names.
type Storage interface {
	// Write stores data under name and returns the backend location of the object.
	// A partially written object is never visible under name.
	Write(ctx context.Context, name string, data []byte) (string, error)

	// Read returns the stored bytes, or ErrObjectNotFound.
	Read(ctx context.Context, name string) ([]byte, error)

	// Remove deletes the object. Removing a missing object succeeds.
	Remove(ctx context.Context, name string) error

	// List returns every stored envelope.
	List(ctx context.Context) ([]Object, error)

	// Close releases backend resources.
	Close() error
}

// Open returns a BlobStorage when url is set and a LocalStorage rooted at root otherwise.
func Open(ctx context.Context, root, url string) (Storage, error) {
	if url != "" {
		return NewBlobStorage(ctx, url)
	}
	return NewLocalStorage(root)
}
