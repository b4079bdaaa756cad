// Package storage persists encrypted envelopes and owns the naming and path-safety rules
// for them.
//
// Two backends are provided: LocalStorage writes one file per envelope under a root
// directory, and BlobStorage stores envelopes in any gocloud.dev bucket.
package storage

import (
	"github.com/allisson/examvault/internal/errors"
)

var (
	// ErrPathTraversal indicates a candidate path would resolve outside the storage root.
	ErrPathTraversal = errors.Wrap(errors.ErrInvalidInput, "path escapes storage root")

	// ErrObjectNotFound indicates no envelope is stored under the requested name.
	ErrObjectNotFound = errors.Wrap(errors.ErrNotFound, "stored object not found")

	// ErrStorageIO indicates the backend failed to read, write, list or remove an object.
	ErrStorageIO = errors.Wrap(errors.ErrIO, "storage failure")
)
