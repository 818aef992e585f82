// File: confumo/config.go
package confumo

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Source identifies where a setting's current value originated.
type Source string

const (
	// SourceDefault marks built-in or spec-declared default values.
	SourceDefault Source = "default"
	// SourceFile marks values loaded from the configuration file.
	SourceFile Source = "file"
	// SourceCLI marks values provided on the command line.
	SourceCLI Source = "cli"
	// SourceRuntime marks values set programmatically after construction.
	SourceRuntime Source = "runtime"
)

// Reserved settings keys.
const (
	keyLogLevel = "log_level"
)

// Config holds an application's merged settings. Identity fields (app
// name, platform, config directory) are fixed at construction; settings
// are guarded by a read-write mutex.
//
// Build instances through Builder or a Registry, not directly.
type Config struct {
	appName   string
	platform  Platform
	configDir string
	filePath  string // --config path actually loaded, if any

	mu       sync.RWMutex
	settings map[string]any
	sources  map[string]Source
}

// AppName returns the application name the instance was built with.
func (c *Config) AppName() string { return c.appName }

// PlatformName returns the platform the instance was resolved for.
func (c *Config) PlatformName() Platform { return c.platform }

// ConfigDir returns the resolved configuration directory.
func (c *Config) ConfigDir() string { return c.configDir }

// ConfigFileUsed returns the path of the file loaded via --config, or ""
// when no file was loaded.
func (c *Config) ConfigFileUsed() string { return c.filePath }

// FilePath returns the canonical persistence path,
// <configDir>/<appName>_config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.configDir, c.appName+"_config.yaml")
}

// LogLevel returns the merged log level setting.
func (c *Config) LogLevel() string {
	s, err := c.String(keyLogLevel)
	if err != nil {
		return DefaultLogLevel
	}
	return s
}

// Get retrieves a setting by key. The second return value reports whether
// the key exists. Keys use underscore form ("log_level").
func (c *Config) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.settings[normalizeKey(key)]
	return v, ok
}

// Set stores a setting programmatically. The value is recorded with
// SourceRuntime and participates in Save and Snapshot like any other.
func (c *Config) Set(key string, value any) {
	key = normalizeKey(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings[key] = deepCopyValue(value)
	c.sources[key] = SourceRuntime
}

// KeySource reports which source a setting's current value came from.
func (c *Config) KeySource(key string) (Source, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.sources[normalizeKey(key)]
	return s, ok
}

// Keys returns all settings keys in sorted order.
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.settings))
	for k := range c.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Settings returns a deep copy of every setting. Mutating the result does
// not affect the instance.
func (c *Config) Settings() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return deepCopyMap(c.settings)
}

// Extra returns a deep copy of the settings that have no first-class
// accessor: everything except log_level. Custom flags and unknown file
// keys land here.
func (c *Config) Extra() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	extra := make(map[string]any, len(c.settings))
	for k, v := range c.settings {
		if k == keyLogLevel {
			continue
		}
		extra[k] = deepCopyValue(v)
	}
	return extra
}

// String retrieves a string setting. Attempts conversion from common
// types if the stored value isn't already a string.
func (c *Config) String(key string) (string, error) {
	val, found := c.Get(key)
	if !found {
		return "", fmt.Errorf("setting not found: %s", key)
	}

	switch v := val.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprintf("%v", val), nil
	}
}

// Int64 retrieves an integer setting, converting from other numeric types
// and numeric strings.
func (c *Config) Int64(key string) (int64, error) {
	val, found := c.Get(key)
	if !found {
		return 0, fmt.Errorf("setting not found: %s", key)
	}

	switch v := val.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string '%s' to int64: %w", v, err)
		}
		return i, nil
	}

	return 0, fmt.Errorf("cannot convert %T to int64", val)
}

// Bool retrieves a boolean setting, converting from strings and numbers.
func (c *Config) Bool(key string) (bool, error) {
	val, found := c.Get(key)
	if !found {
		return false, fmt.Errorf("setting not found: %s", key)
	}

	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("cannot convert string '%s' to bool: %w", v, err)
		}
		return b, nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case float64:
		return v != 0, nil
	}

	return false, fmt.Errorf("cannot convert %T to bool", val)
}

// Float64 retrieves a float setting, converting from other numeric types
// and numeric strings.
func (c *Config) Float64(key string) (float64, error) {
	val, found := c.Get(key)
	if !found {
		return 0, fmt.Errorf("setting not found: %s", key)
	}

	switch v := val.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string '%s' to float64: %w", v, err)
		}
		return f, nil
	}

	return 0, fmt.Errorf("cannot convert %T to float64", val)
}

// StringSlice retrieves a multi-value setting. Scalar strings are wrapped
// in a single-element slice; []any values are converted element-wise.
func (c *Config) StringSlice(key string) ([]string, error) {
	val, found := c.Get(key)
	if !found {
		return nil, fmt.Errorf("setting not found: %s", key)
	}

	switch v := val.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = fmt.Sprintf("%v", item)
		}
		return out, nil
	case string:
		return []string{v}, nil
	}

	return nil, fmt.Errorf("cannot convert %T to []string", val)
}

// Save persists the current settings to the canonical path,
// <configDir>/<appName>_config.yaml. Identity fields (app name, platform,
// config dir) are bookkeeping and are not written.
func (c *Config) Save() error {
	return c.SaveTo(c.FilePath())
}

// SaveTo persists the current settings to an explicit path as YAML.
func (c *Config) SaveTo(path string) error {
	return SaveFile(path, c.Settings())
}

// Copy returns an independent duplicate of the instance. Every container
// value is deep-copied, so mutations on either side never leak to the
// other. The copy is not registered anywhere.
func (c *Config) Copy() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dup := &Config{
		appName:   c.appName,
		platform:  c.platform,
		configDir: c.configDir,
		filePath:  c.filePath,
		settings:  deepCopyMap(c.settings),
		sources:   make(map[string]Source, len(c.sources)),
	}
	for k, s := range c.sources {
		dup.sources[k] = s
	}
	return dup
}

// Snapshot returns a deep copy of the full attribute set, including the
// identity fields, keyed the way the persisted file keys settings. This is
// the payload Registry.Promote publishes; it is a point-in-time copy, not
// a live view.
func (c *Config) Snapshot() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := deepCopyMap(c.settings)
	snap["app_name"] = c.appName
	snap["platform_name"] = string(c.platform)
	snap["config_dir"] = c.configDir
	return snap
}

// Debug returns a formatted listing of every setting with its source, for
// troubleshooting merge behavior.
func (c *Config) Debug() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.settings))
	for k := range c.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%s configuration (%s, %s):\n", c.appName, c.platform, c.configDir)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s = %v (%s)\n", k, c.settings[k], c.sources[k])
	}
	return b.String()
}

// Describe returns a short human-readable representation for diagnostics
// and logging. Not intended for parsing.
func (c *Config) Describe() string {
	return fmt.Sprintf("<Confumo platform_name=%s, config_dir=%s>", c.platform, c.configDir)
}
