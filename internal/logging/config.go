// Package logging configures the zerolog logger shared by entityctl.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const (
	EnvLogLevel     = "ENTITYCTL_LOG_LEVEL"
	EnvLogTimestamp = "ENTITYCTL_LOG_TIMESTAMP"
	EnvLogNoColor   = "ENTITYCTL_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config controls how log lines are written.
type Config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Output    io.Writer
}

var (
	configureOnce sync.Once
	logger        = zerolog.Nop()
)

func ConfigureRuntime(level string) zerolog.Logger {
	return Configure(ProfileRuntime, level)
}

func ConfigureTests() zerolog.Logger {
	return Configure(ProfileTest, "")
}

// Configure builds the shared logger once. level, when valid, overrides the
// profile default; the environment overrides both.
func Configure(profile Profile, level string) zerolog.Logger {
	configureOnce.Do(func() {
		cfg := DefaultConfig(profile)
		if lvl, ok := ParseLevel(level); ok {
			cfg.Level = lvl
		}

		applyEnvOverrides(&cfg, os.Getenv)
		logger = New(cfg)
	})

	return logger
}

// Logger returns the shared logger, a no-op one until Configure runs.
func Logger() zerolog.Logger {
	return logger
}

func DefaultConfig(profile Profile) Config {
	cfg := Config{Output: os.Stderr}

	switch profile {
	case ProfileTest:
		cfg.Level = zerolog.DebugLevel
		cfg.Timestamp = false
	default:
		cfg.Level = zerolog.InfoLevel
		cfg.Timestamp = true
	}

	return cfg
}

// New returns a console logger for cfg. Color is only used on terminals.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	cw := zerolog.ConsoleWriter{
		Out:     out,
		NoColor: cfg.NoColor || !isTerminal(out),
	}

	if !cfg.Timestamp {
		cw.PartsExclude = []string{zerolog.TimestampFieldName}
	}

	ctx := zerolog.New(cw).Level(cfg.Level).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}

	return ctx.Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if lvl, ok := ParseLevel(getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(getenv(EnvLogTimestamp)); ok {
		cfg.Timestamp = v
	}
	if v, ok := parseBool(getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

// ParseLevel accepts zerolog level names and a few aliases. The bool is
// false for empty or unknown input.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
