package scanner

import (
	"testing"

	"iconmaker/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollisionResolver(t *testing.T) {
	const out = "icons/c.jpeg"

	t.Run("overwrite", func(t *testing.T) {
		r := NewCollisionResolver(config.CollisionOverwrite)
		got, err := r.Resolve("images/c.jpg", out)
		require.NoError(t, err)
		assert.Equal(t, out, got)
		got, err = r.Resolve("images/c.png", out)
		require.NoError(t, err)
		assert.Equal(t, out, got)
	})

	t.Run("skip", func(t *testing.T) {
		r := NewCollisionResolver(config.CollisionSkip)
		_, err := r.Resolve("images/c.jpg", out)
		require.NoError(t, err)
		_, err = r.Resolve("images/c.png", out)
		assert.True(t, errors.Is(err, ErrCollisionSkipped))
	})

	t.Run("rename", func(t *testing.T) {
		r := NewCollisionResolver(config.CollisionRename)
		first, _ := r.Resolve("images/c.gif", out)
		second, _ := r.Resolve("images/c.jpg", out)
		third, _ := r.Resolve("images/c.png", out)
		assert.Equal(t, out, first)
		assert.Equal(t, "icons/c - dup1.jpeg", second)
		assert.Equal(t, "icons/c - dup2.jpeg", third)
	})

	t.Run("error", func(t *testing.T) {
		r := NewCollisionResolver(config.CollisionError)
		_, err := r.Resolve("images/c.jpg", out)
		require.NoError(t, err)
		_, err = r.Resolve("images/c.png", out)
		assert.True(t, errors.Is(err, ErrOutputCollision))
		assert.Contains(t, err.Error(), "c.jpg")
	})

	t.Run("same source twice", func(t *testing.T) {
		r := NewCollisionResolver(config.CollisionError)
		_, err := r.Resolve("images/c.png", out)
		require.NoError(t, err)
		_, err = r.Resolve("images/c.png", out)
		assert.NoError(t, err)
	})

	t.Run("release", func(t *testing.T) {
		r := NewCollisionResolver(config.CollisionError)
		_, err := r.Resolve("images/c.jpg", out)
		require.NoError(t, err)
		assert.True(t, r.isOutput(out))
		r.Release(out)
		assert.False(t, r.isOutput(out))
		_, err = r.Resolve("images/c.png", out)
		assert.NoError(t, err)
	})
}
