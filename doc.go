// File: confumo/doc.go

// Package confumo provides process-wide configuration management for Go
// applications: platform-appropriate configuration directories, YAML
// configuration files, command-line overrides, and per-identity singleton
// instances.
//
// Features:
//   - Platform directory conventions (Windows, Linux, Darwin, fallback)
//   - Built-in flags (--config, --log-level, --config-dir) plus
//     caller-declared extension flags via spf13/pflag
//   - Fixed merge precedence: CLI > file > default
//   - YAML persistence with atomic writes; TOML and JSON accepted on load
//   - Deep-copy semantics for instance duplication and snapshots
//   - Identity-keyed singleton registry with explicit reset for tests
//   - Attribute promotion as explicit snapshots into a shared namespace
//   - Typed accessors and struct decoding via mapstructure
//
// Basic usage:
//
//	cfg, err := confumo.NewBuilder("my_app").Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(cfg.LogLevel(), cfg.ConfigDir())
//
// Singleton usage:
//
//	cfg, err := confumo.GetInstance("my_app", confumo.NewBuilder("my_app"))
//
// Extension flags:
//
//	b := confumo.NewBuilder("my_app").WithArgSpecs(confumo.ArgSpec{
//		Name:  "upstream-api-provider-port",
//		Type:  confumo.ArgString,
//		Usage: "Upstream provider port",
//	})
//
// All failures are typed: ErrEnvironmentResolution, ErrDuplicateFlag,
// ErrArgumentType, ErrConfigFile/ErrConfigNotFound. Nothing is logged and
// swallowed; callers decide what is fatal.
package confumo
