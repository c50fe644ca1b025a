package db_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avyukd/bobo-notes/internal/notes/db"
)

func TestMigrationsSource(t *testing.T) {
	t.Run("абсолютный путь", func(t *testing.T) {
		got, err := db.MigrationsSource("/srv/migrations/notes")
		require.NoError(t, err)
		assert.Equal(t, "file:///srv/migrations/notes", got)
	})

	t.Run("относительный путь", func(t *testing.T) {
		abs, err := filepath.Abs("migrations/notes")
		require.NoError(t, err)

		got, err := db.MigrationsSource("migrations/notes")
		require.NoError(t, err)
		assert.Equal(t, "file://"+abs, got)
	})

	t.Run("готовый URL не меняется", func(t *testing.T) {
		got, err := db.MigrationsSource("file:///already/url")
		require.NoError(t, err)
		assert.Equal(t, "file:///already/url", got)
	})
}
