package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"entity-projector/entity"
	"entity-projector/internal/config"
	"entity-projector/internal/decl"
	"entity-projector/internal/logging"
)

var errNoDeclarations = errors.New("no declaration files: pass them as arguments or with --decl")

var (
	cfgFile string
	cfg     config.Config
	log     = zerolog.Nop()
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "entityctl",
	Short: "Check and render entity declarations",
	Long: `entityctl loads entity declarations from YAML or TOML files, reports
problems in them and renders documents through the fields they declare.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		cfg = loaded
		log = logging.ConfigureRuntime(cfg.LogLevel)

		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.entityctl.yaml)")
	pf.StringSlice("decl", nil, "entity declaration files, yaml or toml")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error, off")
	pf.Int("workers", 0, "documents rendered concurrently (default GOMAXPROCS)")

	_ = viper.BindPFlag(config.KeyDeclarations, pf.Lookup("decl"))
	_ = viper.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyWorkers, pf.Lookup("workers"))
}

// initConfig loads configuration from the config file and environment.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".entityctl")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "using config file", viper.ConfigFileUsed())
	}
}

// declarations returns args, or the configured declaration files when args
// is empty.
func declarations(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	if len(cfg.Declarations) > 0 {
		return cfg.Declarations, nil
	}

	return nil, errNoDeclarations
}

// loadRegistry builds every entity declared in paths into one registry.
// Later files may name entities of earlier files as parents.
func loadRegistry(paths []string, logger zerolog.Logger) (*entity.Registry, error) {
	reg := entity.NewRegistry(entity.WithLogger(logger))

	for _, path := range paths {
		f, err := decl.LoadFile(path)
		if err != nil {
			return nil, err
		}

		if err := decl.Build(f, reg, builtinFuncs()); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		logger.Debug().Str("file", path).Int("entities", len(f.Entities)).Msg("loaded declarations")
	}

	return reg, nil
}
