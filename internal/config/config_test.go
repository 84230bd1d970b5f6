package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Empty(t, cfg.Declarations)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, 2, cfg.Indent)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Workers)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entityctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
declarations:
  - users.yaml
  - orders.toml
format: yaml
indent: 4
log_level: debug
workers: 3
`), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, Config{
		Declarations: []string{"users.yaml", "orders.toml"},
		Format:       FormatYAML,
		Indent:       4,
		LogLevel:     "debug",
		Workers:      3,
	}, cfg)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("ENTITYCTL_WORKERS", "7")
	t.Setenv("ENTITYCTL_FORMAT", "yaml")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Workers)
	assert.Equal(t, FormatYAML, cfg.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		wantErr error
	}{
		{"format", KeyFormat, "xml", ErrUnknownFormat},
		{"negative indent", KeyIndent, -1, ErrBadIndent},
		{"huge indent", KeyIndent, 20, ErrBadIndent},
		{"no workers", KeyWorkers, 0, ErrBadWorkers},
		{"log level", KeyLogLevel, "chatty", ErrBadLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
