package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStorage stores each envelope as <root>/<name>.enc.
type LocalStorage struct {
	root string
}

// NewLocalStorage creates root (mode 0700) if needed and returns a backend rooted there.
func NewLocalStorage(root string) (*LocalStorage, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve root: %v", ErrStorageIO, err)
	}
	if err := os.MkdirAll(absRoot, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create root: %v", ErrStorageIO, err)
	}
	return &LocalStorage{root: absRoot}, nil
}

// Root returns the absolute storage directory.
func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) path(name string) (string, error) {
	key, err := objectKey(name)
	if err != nil {
		return "", err
	}
	return ResolveSafePath(s.root, key)
}

// Write stores data via a temporary file in the same directory followed by a rename.
func (s *LocalStorage) Write(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target, err := s.path(name)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", ErrStorageIO, err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return "", fmt.Errorf("%w: write: %v", ErrStorageIO, err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("%w: sync: %v", ErrStorageIO, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: close: %v", ErrStorageIO, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return "", fmt.Errorf("%w: rename: %v", ErrStorageIO, err)
	}

	success = true
	return target, nil
}

// Read returns the envelope bytes for name.
func (s *LocalStorage) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", ErrStorageIO, err)
	}
	return data, nil
}

// Remove unlinks the envelope for name. A missing file is not an error.
func (s *LocalStorage) Remove(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove: %v", ErrStorageIO, err)
	}
	return nil
}

// List returns every *.enc file directly under the root.
func (s *LocalStorage) List(ctx context.Context) ([]Object, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrStorageIO, err)
	}

	objects := make([]Object, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		name, ok := nameFromKey(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: stat: %v", ErrStorageIO, err)
		}
		objects = append(objects, Object{Name: name, Size: info.Size(), ModTime: info.ModTime()})
	}
	return objects, nil
}

// Close is a no-op for the local backend.
func (s *LocalStorage) Close() error {
	return nil
}
