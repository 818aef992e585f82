// File: confumo/store.go
package confumo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a configuration file and returns its top-level mapping.
// YAML is the canonical format; TOML and JSON files are accepted on load,
// detected by extension first and by content as a fallback. A file whose
// top level is not a mapping is rejected.
//
// Returns an error matching both ErrConfigFile and ErrConfigNotFound when
// the file does not exist, and ErrConfigFile for any other failure.
func LoadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w: %s", ErrConfigFile, ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to read '%s': %v", ErrConfigFile, path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
		if format == "" {
			format = "yaml"
		}
	}

	var raw any
	switch format {
	case "toml":
		m := make(map[string]any)
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: failed to parse TOML '%s': %v", ErrConfigFile, path, err)
		}
		raw = m
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: failed to parse JSON '%s': %v", ErrConfigFile, path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: failed to parse YAML '%s': %v", ErrConfigFile, path, err)
		}
	}

	if raw == nil {
		// An empty file is an empty mapping, not an error.
		return map[string]any{}, nil
	}

	normalized := normalizeLoaded(raw)
	mapping, ok := normalized.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level of '%s' must be a mapping, got %T", ErrConfigFile, path, raw)
	}

	return mapping, nil
}

// SaveFile writes settings to path as YAML, creating parent directories as
// needed. The write is atomic: data goes to a temporary file in the target
// directory which is fsynced, then renamed over the destination. The
// temporary file is removed on any failure.
func SaveFile(path string, settings map[string]any) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal settings: %v", ErrConfigFile, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory '%s': %v", ErrConfigFile, dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temporary file in '%s': %v", ErrConfigFile, dir, err)
	}

	tempPath := tempFile.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("%w: failed to write '%s': %v", ErrConfigFile, tempPath, err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("%w: failed to sync '%s': %v", ErrConfigFile, tempPath, err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("%w: failed to close '%s': %v", ErrConfigFile, tempPath, err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("%w: failed to set permissions on '%s': %v", ErrConfigFile, tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("%w: failed to rename '%s' to '%s': %v", ErrConfigFile, tempPath, path, err)
	}
	renamed = true

	return nil
}

// detectFileFormat determines format from file extension.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing.
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// Try YAML (superset of JSON, so check after JSON)
	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	// Try TOML last
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	return ""
}
