// File: confumo/args.go
package confumo

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/pflag"
)

// ArgType declares how an extension flag's value is coerced during parsing.
type ArgType int

const (
	// ArgString stores the raw flag value.
	ArgString ArgType = iota
	// ArgInt coerces the value to int64; non-numeric input fails with
	// ErrArgumentType.
	ArgInt
	// ArgBool coerces the value to bool.
	ArgBool
	// ArgFloat coerces the value to float64.
	ArgFloat
	// ArgStringSlice accepts the flag multiple times and collects an
	// ordered []string.
	ArgStringSlice
)

// ArgSpec declares a single command-line flag. Extension specs are appended
// to the built-in set before parsing.
type ArgSpec struct {
	// Name is the long flag name without the leading dashes, e.g.
	// "upstream-port". The corresponding settings key is the name with
	// dashes replaced by underscores.
	Name string

	// Shorthand is an optional single-letter alias.
	Shorthand string

	// Type selects the value coercion. Zero value is ArgString.
	Type ArgType

	// Default, when non-nil, seeds the default layer of the merge. A flag
	// left unset on the command line does not appear in the parsed result;
	// the default is applied by the builder instead.
	Default any

	// Choices, when non-empty, restricts the values accepted on the
	// command line. A provided value outside the set fails parsing with
	// ErrArgumentType. Values from other sources are not constrained.
	Choices []string

	// Usage is the help text shown in the usage message.
	Usage string
}

// Built-in flag names.
const (
	flagConfig    = "config"
	flagLogLevel  = "log-level"
	flagConfigDir = "config-dir"
)

// DefaultLogLevel is applied when neither the config file nor the command
// line sets a log level.
const DefaultLogLevel = "INFO"

// logLevelChoices is the accepted --log-level vocabulary.
var logLevelChoices = []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}

// builtinArgSpecs returns the flags every confumo application carries.
func builtinArgSpecs(configDir string) []ArgSpec {
	return []ArgSpec{
		{Name: flagConfig, Type: ArgString, Usage: "Path to the YAML configuration file"},
		{Name: flagLogLevel, Type: ArgString, Default: DefaultLogLevel, Choices: logLevelChoices, Usage: "Logging level"},
		{Name: flagConfigDir, Type: ArgString, Usage: fmt.Sprintf("Where to load/save config data. Defaults to %s", configDir)},
	}
}

// newFlagSet builds a pflag.FlagSet from the built-in and extension specs.
// It fails with ErrDuplicateFlag before any parsing if two specs declare
// the same flag name (dash/underscore variants collide too).
func newFlagSet(appName string, specs []ArgSpec) (*pflag.FlagSet, error) {
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard) // usage reporting is the caller's choice

	seen := make(map[string]string, len(specs))
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("%w: empty flag name", ErrDuplicateFlag)
		}
		key := normalizeKey(spec.Name)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: --%s collides with --%s", ErrDuplicateFlag, spec.Name, prev)
		}
		seen[key] = spec.Name

		switch spec.Type {
		case ArgInt:
			fs.Int64P(spec.Name, spec.Shorthand, defaultInt(spec.Default), spec.Usage)
		case ArgBool:
			fs.BoolP(spec.Name, spec.Shorthand, defaultBool(spec.Default), spec.Usage)
		case ArgFloat:
			fs.Float64P(spec.Name, spec.Shorthand, defaultFloat(spec.Default), spec.Usage)
		case ArgStringSlice:
			fs.StringArrayP(spec.Name, spec.Shorthand, defaultSlice(spec.Default), spec.Usage)
		default:
			fs.StringP(spec.Name, spec.Shorthand, defaultString(spec.Default), spec.Usage)
		}
	}

	return fs, nil
}

// parseArgs parses raw command-line arguments against the combined specs.
// The result contains only flags that were explicitly provided, keyed by
// normalized name, with values already coerced per each spec's ArgType.
func parseArgs(appName string, specs []ArgSpec, args []string) (map[string]any, error) {
	fs, err := newFlagSet(appName, specs)
	if err != nil {
		return nil, err
	}

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArgumentType, err)
	}

	byName := make(map[string]ArgSpec, len(specs))
	for _, spec := range specs {
		byName[spec.Name] = spec
	}

	provided := make(map[string]any)
	var visitErr error
	fs.Visit(func(f *pflag.Flag) {
		spec := byName[f.Name]
		var value any
		var err error
		switch spec.Type {
		case ArgInt:
			value, err = fs.GetInt64(f.Name)
		case ArgBool:
			value, err = fs.GetBool(f.Name)
		case ArgFloat:
			value, err = fs.GetFloat64(f.Name)
		case ArgStringSlice:
			value, err = fs.GetStringArray(f.Name)
		default:
			value, err = fs.GetString(f.Name)
		}
		if err != nil && visitErr == nil {
			visitErr = fmt.Errorf("%w: --%s: %v", ErrArgumentType, f.Name, err)
			return
		}
		if len(spec.Choices) > 0 && !slices.Contains(spec.Choices, fmt.Sprintf("%v", value)) {
			if visitErr == nil {
				visitErr = fmt.Errorf("%w: --%s: value %q not one of %v", ErrArgumentType, f.Name, value, spec.Choices)
			}
			return
		}
		provided[normalizeKey(f.Name)] = value
	})
	if visitErr != nil {
		return nil, visitErr
	}

	return provided, nil
}

// argDefaults extracts the declared defaults from specs, keyed by
// normalized name. Specs without a default are absent from the result.
func argDefaults(specs []ArgSpec) map[string]any {
	defaults := make(map[string]any)
	for _, spec := range specs {
		if spec.Default != nil {
			defaults[normalizeKey(spec.Name)] = deepCopyValue(spec.Default)
		}
	}
	return defaults
}

func defaultString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func defaultInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}

func defaultBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}

func defaultFloat(v any) float64 {
	switch f := v.(type) {
	case float64:
		return f
	case int:
		return float64(f)
	}
	return 0
}

func defaultSlice(v any) []string {
	if s, ok := v.([]string); ok {
		return s
	}
	return nil
}
