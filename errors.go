// File: confumo/errors.go
package confumo

import "errors"

// Sentinel errors returned by confumo operations. Callers match with
// errors.Is; wrapped messages carry the failing path or flag name.
var (
	// ErrEnvironmentResolution indicates the user home directory (or the
	// platform app-data variable) could not be determined.
	ErrEnvironmentResolution = errors.New("cannot resolve environment")

	// ErrDuplicateFlag indicates an extension flag collides with a built-in
	// flag or with another extension flag. Raised at construction, before
	// any argument is parsed.
	ErrDuplicateFlag = errors.New("duplicate flag declaration")

	// ErrArgumentType indicates a CLI value failed its declared type coercion.
	ErrArgumentType = errors.New("invalid argument value")

	// ErrConfigFile indicates a configuration file could not be read,
	// parsed, or written.
	ErrConfigFile = errors.New("config file error")

	// ErrConfigNotFound indicates the named configuration file does not
	// exist. Load sites wrap it together with ErrConfigFile so callers can
	// match either sentinel.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrNoInstance indicates a registry lookup for an identity that has
	// no stored instance.
	ErrNoInstance = errors.New("no instance registered")
)
