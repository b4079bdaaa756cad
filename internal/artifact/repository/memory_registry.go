// Package repository holds the in-memory artifact registry.
//
// The registry is the only record of which artifacts exist. It is not persisted: after a
// restart it is empty and any envelopes left in storage are orphans.
package repository

import (
	"context"
	"sync"

	artifactDomain "github.com/allisson/examvault/internal/artifact/domain"
	"github.com/allisson/examvault/internal/errors"
)

// MemoryRegistry maps artifact ids to records in insertion order.
//
// One RWMutex guards the whole map. View holds the read lock for the duration of its
// callback and Remove holds the write lock for its callback, so storage reads and unlinks
// done inside them are serialized against each other per registry.
type MemoryRegistry struct {
	mu    sync.RWMutex
	items map[string]*artifactDomain.Artifact
	order []string
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{items: make(map[string]*artifactDomain.Artifact)}
}

// Insert adds a record. Inserting an id that is already present returns ErrConflict.
func (r *MemoryRegistry) Insert(_ context.Context, artifact *artifactDomain.Artifact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[artifact.ID]; ok {
		return errors.Wrapf(errors.ErrConflict, "artifact %s already registered", artifact.ID)
	}
	r.items[artifact.ID] = artifact
	r.order = append(r.order, artifact.ID)
	return nil
}

// Get returns the record for id or ErrArtifactNotFound.
func (r *MemoryRegistry) Get(_ context.Context, id string) (*artifactDomain.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	artifact, ok := r.items[id]
	if !ok {
		return nil, artifactDomain.ErrArtifactNotFound
	}
	return artifact, nil
}

// Contains reports whether id is registered.
func (r *MemoryRegistry) Contains(_ context.Context, id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok
}

// List returns a snapshot of every record in insertion order.
func (r *MemoryRegistry) List(_ context.Context) ([]*artifactDomain.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*artifactDomain.Artifact, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

// View looks up id and runs fn with the record while holding the read lock.
// Returns ErrArtifactNotFound without calling fn when id is absent.
func (r *MemoryRegistry) View(
	ctx context.Context,
	id string,
	fn func(ctx context.Context, artifact *artifactDomain.Artifact) error,
) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	artifact, ok := r.items[id]
	if !ok {
		return artifactDomain.ErrArtifactNotFound
	}
	return fn(ctx, artifact)
}

// Remove looks up id and runs fn while holding the write lock. The record is removed
// only when fn succeeds. Returns ErrArtifactNotFound without calling fn when id is absent.
func (r *MemoryRegistry) Remove(
	ctx context.Context,
	id string,
	fn func(ctx context.Context, artifact *artifactDomain.Artifact) error,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	artifact, ok := r.items[id]
	if !ok {
		return artifactDomain.ErrArtifactNotFound
	}
	if fn != nil {
		if err := fn(ctx, artifact); err != nil {
			return err
		}
	}

	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// RemoveUnreferenced runs fn while holding the write lock, but only when id is not
// registered. It reports whether fn ran and succeeded. No Insert or Remove can interleave
// between the absence check and fn.
func (r *MemoryRegistry) RemoveUnreferenced(
	ctx context.Context,
	id string,
	fn func(ctx context.Context) error,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; ok {
		return false, nil
	}
	if err := fn(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Len returns the number of registered artifacts.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
