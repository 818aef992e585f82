// File: confumo/builder.go
package confumo

import (
	"fmt"
	"os"
)

// Builder assembles a Config instance. It replaces subclass-based
// extension: embedding applications append ArgSpec declarations and
// overrides through the With* chain, then call Build.
//
// The zero Builder is not usable; start with NewBuilder.
type Builder struct {
	appName   string
	args      []string
	specs     []ArgSpec
	platform  Platform
	env       Environment
	configDir string
	defaults  map[string]any
}

// NewBuilder creates a builder for appName with the process arguments and
// the real OS environment.
func NewBuilder(appName string) *Builder {
	return &Builder{
		appName:  appName,
		args:     os.Args[1:],
		platform: DetectPlatform(),
		env:      OSEnvironment(),
		defaults: make(map[string]any),
	}
}

// WithArgs replaces the raw command-line arguments to parse. Useful for
// tests and for hosts that pre-split their argument vector.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithArgSpecs appends extension flag declarations. Declarations are
// parsed together with the built-in flags; a name collision fails Build
// with ErrDuplicateFlag before any parsing occurs.
func (b *Builder) WithArgSpecs(specs ...ArgSpec) *Builder {
	b.specs = append(b.specs, specs...)
	return b
}

// WithPlatform overrides host platform detection.
func (b *Builder) WithPlatform(p Platform) *Builder {
	b.platform = p
	return b
}

// WithEnvironment overrides the environment lookups used for directory
// resolution.
func (b *Builder) WithEnvironment(env Environment) *Builder {
	b.env = env
	return b
}

// WithConfigDir overrides platform-based directory resolution entirely.
func (b *Builder) WithConfigDir(dir string) *Builder {
	b.configDir = dir
	return b
}

// WithDefault seeds an additional default-layer value. File and CLI values
// for the same key take precedence.
func (b *Builder) WithDefault(key string, value any) *Builder {
	b.defaults[normalizeKey(key)] = deepCopyValue(value)
	return b
}

// Build resolves the platform directory, parses arguments, loads the
// optional configuration file, and merges the layers with fixed
// precedence: CLI > file > default.
//
// A --config path that names a missing file is an error; no --config flag
// at all is not.
func (b *Builder) Build() (*Config, error) {
	configDir := b.configDir
	if configDir == "" {
		var err error
		configDir, err = ResolveConfigDir(b.env, b.platform, b.appName)
		if err != nil {
			return nil, err
		}
	}

	specs := append(builtinArgSpecs(configDir), b.specs...)

	cli, err := parseArgs(b.appName, specs, b.args)
	if err != nil {
		return nil, err
	}

	if dir, ok := cli[normalizeKey(flagConfigDir)]; ok {
		configDir = fmt.Sprintf("%v", dir)
	}

	// Optional file layer.
	var fileSettings map[string]any
	filePath := ""
	if pathVal, ok := cli[normalizeKey(flagConfig)]; ok {
		filePath = fmt.Sprintf("%v", pathVal)
		fileSettings, err = LoadFile(filePath)
		if err != nil {
			return nil, err
		}
	}

	// The --config and --config-dir flags steer construction; they are not
	// settings themselves.
	delete(cli, normalizeKey(flagConfig))
	delete(cli, normalizeKey(flagConfigDir))

	settings := make(map[string]any)
	sources := make(map[string]Source)

	// Layer 1: defaults (built-in, spec-declared, WithDefault).
	settings[keyLogLevel] = DefaultLogLevel
	sources[keyLogLevel] = SourceDefault
	for k, v := range argDefaults(b.specs) {
		settings[k] = v
		sources[k] = SourceDefault
	}
	for k, v := range b.defaults {
		settings[k] = deepCopyValue(v)
		sources[k] = SourceDefault
	}

	// Layer 2: file values override defaults. Null-valued keys are skipped
	// so an empty YAML entry cannot mask a default.
	for k, v := range fileSettings {
		if v == nil {
			continue
		}
		key := normalizeKey(k)
		settings[key] = deepCopyValue(v)
		sources[key] = SourceFile
	}

	// Layer 3: CLI values override everything.
	for k, v := range cli {
		settings[k] = deepCopyValue(v)
		sources[k] = SourceCLI
	}

	return &Config{
		appName:   b.appName,
		platform:  b.platform,
		configDir: configDir,
		filePath:  filePath,
		settings:  settings,
		sources:   sources,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("confumo build failed: %v", err))
	}
	return cfg
}

// Quick creates a Config for appName with the process arguments and no
// extension flags. This is the one-call path for simple applications.
func Quick(appName string) (*Config, error) {
	return NewBuilder(appName).Build()
}
