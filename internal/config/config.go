// Package config holds the settings entityctl reads from its config file,
// environment and flags.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/spf13/viper"

	"entity-projector/internal/logging"
)

// Keys understood by Load. Environment variables use the EnvPrefix and upper
// case, e.g. ENTITYCTL_WORKERS.
const (
	KeyDeclarations = "declarations"
	KeyFormat       = "format"
	KeyIndent       = "indent"
	KeyLogLevel     = "log_level"
	KeyWorkers      = "workers"

	EnvPrefix = "ENTITYCTL"
)

// Output formats accepted by render.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrBadIndent     = errors.New("indent must be between 0 and 8")
	ErrBadWorkers    = errors.New("workers must be positive")
	ErrBadLogLevel   = errors.New("unknown log level")
)

// Config is the resolved entityctl configuration.
type Config struct {
	Declarations []string
	Format       string
	Indent       int
	LogLevel     string
	Workers      int
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDeclarations, []string{})
	v.SetDefault(KeyFormat, FormatJSON)
	v.SetDefault(KeyIndent, 2)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyWorkers, runtime.GOMAXPROCS(0))
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		Declarations: v.GetStringSlice(KeyDeclarations),
		Format:       v.GetString(KeyFormat),
		Indent:       v.GetInt(KeyIndent),
		LogLevel:     v.GetString(KeyLogLevel),
		Workers:      v.GetInt(KeyWorkers),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field and returns the first problem found.
func (c Config) Validate() error {
	if !slices.Contains([]string{FormatJSON, FormatYAML}, c.Format) {
		return fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownFormat, c.Format, FormatJSON, FormatYAML)
	}

	if c.Indent < 0 || c.Indent > 8 {
		return fmt.Errorf("%w: %d", ErrBadIndent, c.Indent)
	}

	if c.Workers < 1 {
		return fmt.Errorf("%w: %d", ErrBadWorkers, c.Workers)
	}

	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: %q", ErrBadLogLevel, c.LogLevel)
	}

	return nil
}
