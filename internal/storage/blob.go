package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

// BlobStorage stores envelopes as <name>.enc objects in a gocloud.dev bucket.
//
// The bucket is selected by URL, e.g. "file:///var/lib/examvault" or "mem://". Other
// providers work when their driver package is linked in.
type BlobStorage struct {
	bucket *blob.Bucket
	url    string
}

// NewBlobStorage opens the bucket at url.
func NewBlobStorage(ctx context.Context, url string) (*BlobStorage, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: open bucket: %v", ErrStorageIO, err)
	}
	return &BlobStorage{bucket: bucket, url: url}, nil
}

// Write uploads data. Readers never observe a partially written object.
func (s *BlobStorage) Write(ctx context.Context, name string, data []byte) (string, error) {
	key, err := objectKey(name)
	if err != nil {
		return "", err
	}
	if err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: "application/octet-stream"}); err != nil {
		return "", fmt.Errorf("%w: write: %v", ErrStorageIO, err)
	}
	return s.url + "#" + key, nil
}

// Read downloads the envelope bytes for name.
func (s *BlobStorage) Read(ctx context.Context, name string) ([]byte, error) {
	key, err := objectKey(name)
	if err != nil {
		return nil, err
	}
	data, err := s.bucket.ReadAll(ctx, key)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", ErrStorageIO, err)
	}
	return data, nil
}

// Remove deletes the object for name. A missing object is not an error.
func (s *BlobStorage) Remove(ctx context.Context, name string) error {
	key, err := objectKey(name)
	if err != nil {
		return err
	}
	err = s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return fmt.Errorf("%w: remove: %v", ErrStorageIO, err)
	}
	return nil
}

// List returns every top-level *.enc object in the bucket.
func (s *BlobStorage) List(ctx context.Context) ([]Object, error) {
	var objects []Object

	iter := s.bucket.List(&blob.ListOptions{Delimiter: "/"})
	for {
		obj, err := iter.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: list: %v", ErrStorageIO, err)
		}
		if obj.IsDir {
			continue
		}
		name, ok := nameFromKey(obj.Key)
		if !ok {
			continue
		}
		objects = append(objects, Object{Name: name, Size: obj.Size, ModTime: obj.ModTime})
	}
	return objects, nil
}

// Close closes the bucket.
func (s *BlobStorage) Close() error {
	return s.bucket.Close()
}
