// File: confumo/decode.go
package confumo

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the merged settings into target, which must be a non-nil
// pointer to a struct or map. Field mapping uses `yaml` struct tags with
// weak type conversion, so CLI-provided strings decode into typed fields.
func (c *Config) Scan(target any) error {
	return c.decode(c.Settings(), target)
}

// ScanKey decodes a single setting into target. The setting must be a
// mapping when target is a struct.
func (c *Config) ScanKey(key string, target any) error {
	val, ok := c.Get(key)
	if !ok {
		return fmt.Errorf("setting not found: %s", key)
	}

	if m, isMap := val.(map[string]any); isMap {
		return c.decode(m, target)
	}
	return c.decode(val, target)
}

// decode is the single authoritative decoding path; Scan and ScanKey
// delegate here.
func (c *Config) decode(data any, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode target must be non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("failed to decode settings: %w", err)
	}

	return nil
}
