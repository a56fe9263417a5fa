package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOMLLoader_LoadGlobal(t *testing.T) {
	t.Run("creates defaults on first run", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		loader := NewTOMLLoaderAt(path)

		cfg, err := loader.LoadGlobal(context.Background())

		require.NoError(t, err)
		assert.FileExists(t, path)
		assert.Equal(t, "localhost", cfg.Server.Host)
		assert.Equal(t, 8001, cfg.Server.Port)
	})

	t.Run("loads an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[server]
host = "0.0.0.0"
port = 9000

[genai]
api_key = "k"
api_url = "https://hub.example.com/v1"
`), 0o600))

		loader := NewTOMLLoaderAt(path)

		cfg, err := loader.LoadGlobal(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 9000, cfg.Server.Port)
		assert.True(t, cfg.GenAI.IsConfigured())
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 99999
`), 0o600))

		loader := NewTOMLLoaderAt(path)

		_, err := loader.LoadGlobal(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "port")
	})
}

func TestTOMLLoader_LoadLocal(t *testing.T) {
	t.Run("missing local config is not an error", func(t *testing.T) {
		loader := NewTOMLLoaderAt(filepath.Join(t.TempDir(), "config.toml"))

		cfg, err := loader.LoadLocal(context.Background(), t.TempDir())

		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("loads deckd.toml from the directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "deckd.toml"), []byte(`
[export]
theme = "dark"
`), 0o600))

		loader := NewTOMLLoaderAt(filepath.Join(t.TempDir(), "config.toml"))

		cfg, err := loader.LoadLocal(context.Background(), dir)

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "dark", cfg.Export.Theme)
	})
}

func TestTOMLLoader_SaveCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	loader := NewTOMLLoaderAt(path)

	// Seed a global config with a custom port, then save credentials.
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 9000
`), 0o600))

	require.NoError(t, loader.SaveCredentials(context.Background(), "secret", "https://hub.example.com/v1"))

	cfg, err := loader.LoadGlobal(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.GenAI.APIKey)
	assert.Equal(t, "https://hub.example.com/v1", cfg.GenAI.APIURL)
	assert.Equal(t, 9000, cfg.Server.Port, "existing settings survive")
}
