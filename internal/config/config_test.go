package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should use defaults when file is missing", func(t *testing.T) {
		// when
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.NoError(t, err)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, FilesystemStorage, cfg.Storage.Backend)
		assert.Equal(t, 1000, cfg.Templates.MinSize)
		assert.Equal(t, "camel/v1", cfg.Templates.DefaultProfile)
		assert.Equal(t, 30*time.Second, cfg.Templates.Timeout)
		assert.Len(t, cfg.Users, 7)
	})

	t.Run("should override defaults from yaml file", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "application.yaml")
		content := `
storage:
  backend: supabase
  url: https://example.supabase.co/storage/v1
  bucket: templates
templates:
  minsize: 2048
  primaryurl: https://docs.google.com/document/d/abc/edit
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		// when
		cfg, err := Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, SupabaseStorage, cfg.Storage.Backend)
		assert.Equal(t, "https://example.supabase.co/storage/v1", cfg.Storage.Url)
		assert.Equal(t, 2048, cfg.Templates.MinSize)
		assert.Equal(t, "https://docs.google.com/document/d/abc/edit", cfg.Templates.PrimaryUrl)
	})

	t.Run("should override file values from environment", func(t *testing.T) {
		// given
		t.Setenv("SIMKAK_DB_HOST", "db.internal")
		t.Setenv("SIMKAK_TEMPLATES_SECONDARYURL", "https://docs.google.com/document/d/xyz/view")

		// when
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "https://docs.google.com/document/d/xyz/view", cfg.Templates.SecondaryUrl)
	})
}
