// File: confumo/platform.go
package confumo

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Platform identifies the host operating system family for the purpose of
// configuration directory resolution.
type Platform string

const (
	PlatformWindows Platform = "Windows"
	PlatformLinux   Platform = "Linux"
	PlatformDarwin  Platform = "Darwin"
	PlatformOther   Platform = "Other"
)

// DetectPlatform maps the running OS to a Platform value.
func DetectPlatform() Platform {
	switch runtime.GOOS {
	case "windows":
		return PlatformWindows
	case "linux":
		return PlatformLinux
	case "darwin":
		return PlatformDarwin
	default:
		return PlatformOther
	}
}

// Environment bundles the host lookups needed for directory resolution so
// ResolveConfigDir stays pure and testable. Both fields must be non-nil.
type Environment struct {
	// LookupEnv reports an environment variable and whether it is set.
	LookupEnv func(key string) (string, bool)

	// UserHomeDir returns the current user's home directory.
	UserHomeDir func() (string, error)
}

// OSEnvironment returns an Environment backed by the real process
// environment.
func OSEnvironment() Environment {
	return Environment{
		LookupEnv:   os.LookupEnv,
		UserHomeDir: os.UserHomeDir,
	}
}

// ResolveConfigDir computes the platform-conventional configuration
// directory for appName. It performs no I/O beyond the injected lookups:
//
//	Windows:      %LOCALAPPDATA%\<app> (or <home>\AppData\Local\<app>)
//	Darwin:       <home>/Library/Application Support/<app>
//	Linux, Other: <home>/.config/<app>
//
// Returns ErrEnvironmentResolution when the home directory cannot be
// determined.
func ResolveConfigDir(env Environment, platform Platform, appName string) (string, error) {
	base, err := resolveBaseDir(env, platform)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// resolveBaseDir returns the per-platform base directory, before the app
// name is appended.
func resolveBaseDir(env Environment, platform Platform) (string, error) {
	if platform == PlatformWindows {
		if dir, ok := env.LookupEnv("LOCALAPPDATA"); ok && dir != "" {
			return dir, nil
		}
		home, err := userHome(env)
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Local"), nil
	}

	home, err := userHome(env)
	if err != nil {
		return "", err
	}

	switch platform {
	case PlatformDarwin:
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		// Linux and unrecognized platforms share the XDG-style convention.
		return filepath.Join(home, ".config"), nil
	}
}

func userHome(env Environment) (string, error) {
	home, err := env.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: user home directory: %v", ErrEnvironmentResolution, err)
	}
	if home == "" {
		return "", fmt.Errorf("%w: user home directory is empty", ErrEnvironmentResolution)
	}
	return home, nil
}
