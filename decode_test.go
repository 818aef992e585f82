// File: confumo/decode_test.go
package confumo

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	type appSettings struct {
		LogLevel string        `yaml:"log_level"`
		Port     int           `yaml:"port"`
		Timeout  time.Duration `yaml:"timeout"`
		Tags     []string      `yaml:"tags"`
	}

	cfg, err := NewBuilder("my_app").
		WithPlatform(PlatformLinux).
		WithConfigDir(filepath.Join(t.TempDir(), "my_app")).
		WithArgSpecs(
			ArgSpec{Name: "port", Type: ArgString},
			ArgSpec{Name: "timeout", Type: ArgString},
			ArgSpec{Name: "tags", Type: ArgString},
		).
		WithArgs([]string{"--port", "8080", "--timeout", "30s", "--tags", "a,b,c"}).
		Build()
	require.NoError(t, err)

	var target appSettings
	require.NoError(t, cfg.Scan(&target))

	assert.Equal(t, "INFO", target.LogLevel)
	assert.Equal(t, 8080, target.Port, "weak typing converts the CLI string")
	assert.Equal(t, 30*time.Second, target.Timeout)
	assert.Equal(t, []string{"a", "b", "c"}, target.Tags)
}

func TestScanKey(t *testing.T) {
	cfg, err := NewBuilder("my_app").
		WithPlatform(PlatformLinux).
		WithConfigDir(filepath.Join(t.TempDir(), "my_app")).
		WithArgs([]string{}).
		Build()
	require.NoError(t, err)

	cfg.Set("server", map[string]any{"host": "localhost", "port": "9090"})

	type serverSettings struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	}

	var target serverSettings
	require.NoError(t, cfg.ScanKey("server", &target))
	assert.Equal(t, "localhost", target.Host)
	assert.Equal(t, 9090, target.Port)

	t.Run("MissingKey", func(t *testing.T) {
		var out serverSettings
		assert.Error(t, cfg.ScanKey("absent", &out))
	})

	t.Run("NonPointerTarget", func(t *testing.T) {
		var out serverSettings
		assert.Error(t, cfg.ScanKey("server", out))
	})
}
