// File: confumo/store_test.go
package confumo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileYAML(t *testing.T) {
	t.Run("SimpleMapping", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: DEBUG\nport: 8080\n"), 0644))

		settings, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "DEBUG", settings["log_level"])
		assert.Equal(t, 8080, settings["port"])
	})

	t.Run("NestedMappingAndSequence", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "server:\n  host: localhost\n  port: 9090\ntags:\n  - a\n  - b\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		settings, err := LoadFile(path)
		require.NoError(t, err)

		server, ok := settings["server"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "localhost", server["host"])
		assert.Equal(t, []any{"a", "b"}, settings["tags"])
	})

	t.Run("EmptyFileIsEmptyMapping", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(""), 0644))

		settings, err := LoadFile(path)
		require.NoError(t, err)
		assert.Empty(t, settings)
	})
}

func TestLoadFileOtherFormats(t *testing.T) {
	t.Run("TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("log_level = \"WARNING\"\n"), 0644))

		settings, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "WARNING", settings["log_level"])
	})

	t.Run("JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"log_level": "ERROR"}`), 0644))

		settings, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "ERROR", settings["log_level"])
	})
}

func TestLoadFileErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfigNotFound)
		assert.ErrorIs(t, err, ErrConfigFile)
	})

	t.Run("TopLevelSequenceRejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0644))

		_, err := LoadFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfigFile)
	})

	t.Run("TopLevelScalarRejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("just a string\n"), 0644))

		_, err := LoadFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfigFile)
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("a: [unclosed\n"), 0644))

		_, err := LoadFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfigFile)
	})
}

func TestSaveFile(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		settings := map[string]any{
			"log_level": "DEBUG",
			"port":      8080,
			"nested":    map[string]any{"key": "value"},
			"tags":      []any{"x", "y"},
		}

		require.NoError(t, SaveFile(path, settings))

		loaded, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, settings, loaded)
	})

	t.Run("CreatesParentDirectories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deep", "nested", "dir", "config.yaml")
		require.NoError(t, SaveFile(path, map[string]any{"a": "b"}))

		_, err := os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("NoTempFileLeftBehind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, SaveFile(path, map[string]any{"a": "b"}))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "config.yaml", entries[0].Name())
	})

	t.Run("UnwritableDirectoryFails", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("running as root, permission checks are bypassed")
		}
		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0555))
		t.Cleanup(func() { os.Chmod(dir, 0755) })

		err := SaveFile(filepath.Join(dir, "config.yaml"), map[string]any{"a": "b"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfigFile)
	})
}
