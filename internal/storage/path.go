package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveSafePath joins candidate onto root and returns the absolute result.
//
// The path is rejected, never clamped, with ErrPathTraversal when candidate is absolute or
// when the cleaned result lies outside root. Containment is decided per path segment, so
// "/data/root2" is not inside "/data/root".
func ResolveSafePath(root, candidate string) (string, error) {
	if filepath.IsAbs(candidate) || strings.HasPrefix(candidate, "/") || strings.HasPrefix(candidate, `\`) {
		return "", fmt.Errorf("%w: %q is absolute", ErrPathTraversal, candidate)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: resolve root: %v", ErrStorageIO, err)
	}

	resolved := filepath.Join(absRoot, candidate)
	rel, err := filepath.Rel(absRoot, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrPathTraversal, candidate)
	}
	return resolved, nil
}

// objectKey maps a storage name to its object key. Names must be a single path segment.
func objectKey(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: invalid storage name %q", ErrPathTraversal, name)
	}
	return name + EnvelopeExt, nil
}

// nameFromKey reverses objectKey and reports false for keys that are not envelopes.
func nameFromKey(key string) (string, bool) {
	if strings.ContainsAny(key, `/\`) || !strings.HasSuffix(key, EnvelopeExt) {
		return "", false
	}
	name := strings.TrimSuffix(key, EnvelopeExt)
	return name, name != ""
}
