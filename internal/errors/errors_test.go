package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storageFailure struct {
	Name string
}

func (e *storageFailure) Error() string { return "storage failure on " + e.Name }

func TestWrap(t *testing.T) {
	t.Run("keeps sentinel in chain", func(t *testing.T) {
		err := Wrap(ErrNotFound, "artifact exam_1")

		require.Error(t, err)
		assert.Equal(t, "artifact exam_1: not found", err.Error())
		assert.True(t, Is(err, ErrNotFound))
		assert.False(t, Is(err, ErrConflict))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})
}

func TestWrapf(t *testing.T) {
	t.Run("formats message", func(t *testing.T) {
		err := Wrapf(ErrConflict, "artifact %s already registered", "exam_1")

		assert.Equal(t, "artifact exam_1 already registered: conflict", err.Error())
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrapf(nil, "artifact %d", 1))
	})
}

func TestAs(t *testing.T) {
	err := Wrap(&storageFailure{Name: "exam_1.enc"}, "upload")

	var target *storageFailure
	require.True(t, As(err, &target))
	assert.Equal(t, "exam_1.enc", target.Name)
}

func TestSentinels_AreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrConflict, ErrInvalidInput, ErrUnauthorized, ErrPayloadTooLarge, ErrIO}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}
