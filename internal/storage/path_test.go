package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSafePath(t *testing.T) {
	root := t.TempDir()

	t.Run("simple name", func(t *testing.T) {
		resolved, err := ResolveSafePath(root, "exam_1.enc")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "exam_1.enc"), resolved)
	})

	t.Run("nested name stays inside", func(t *testing.T) {
		resolved, err := ResolveSafePath(root, "a/../b.enc")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "b.enc"), resolved)
	})

	tests := []struct {
		name      string
		candidate string
	}{
		{"parent traversal", "../../etc/passwd"},
		{"single parent", ".."},
		{"absolute", "/etc/passwd"},
		{"hidden traversal", "a/../../b"},
		{"sibling with shared prefix", "../" + filepath.Base(root) + "2/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveSafePath(root, tt.candidate)
			assert.ErrorIs(t, err, ErrPathTraversal)
		})
	}
}

func TestObjectKey(t *testing.T) {
	key, err := objectKey("exam_1")
	require.NoError(t, err)
	assert.Equal(t, "exam_1.enc", key)

	for _, name := range []string{"", ".", "..", "a/b", `a\b`, "../x"} {
		_, err := objectKey(name)
		assert.ErrorIs(t, err, ErrPathTraversal, name)
	}
}
