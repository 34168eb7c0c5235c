package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Loader handles loading configuration from files and command-line arguments.
type Loader struct{}

// ErrHelpRequested is returned when the user requests help via --help flag.
var ErrHelpRequested = errors.New("help requested")

// NewLoader creates a new configuration Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses command-line arguments and configuration files to produce a Config.
func (Loader) Load(args []string) (*Config, error) {
	cmd := newFlagCommand()
	if err := cmd.Flags().Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
		return nil, err
	}

	flagSet := cmd.Flags()
	configPath := flagSet.Lookup("config").Value.String()

	cfg := &Config{
		Timeout:    2 * time.Second,
		Iterations: 1,
		Analyzer:   "go vet -json ./internal/scenarios/...",
		ConfigFile: configPath,
		Tracing:    TracingConfig{Protocol: "grpc", SampleRate: 1.0},
	}

	if configPath != "" {
		cfgViper := viper.New()
		cfgViper.SetConfigFile(configPath)
		if err := cfgViper.ReadInConfig(); err != nil {
			return nil, err
		}
		if err := cfgViper.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyFlagOverrides(cfg, flagSet); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyFlagOverrides copies values for flags the user explicitly set,
// letting the command line win over the config file.
func applyFlagOverrides(cfg *Config, flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "run-dangerous":
			cfg.RunDangerous, err = flags.GetBool(f.Name)
		case "timeout":
			cfg.Timeout, err = flags.GetDuration(f.Name)
		case "only":
			cfg.Only, err = flags.GetStringSlice(f.Name)
		case "skip":
			cfg.Skip, err = flags.GetStringSlice(f.Name)
		case "iterations":
			cfg.Iterations, err = flags.GetInt(f.Name)
		case "rate":
			cfg.Rate, err = flags.GetInt(f.Name)
		case "scratch-dir":
			cfg.ScratchDir, err = flags.GetString(f.Name)
		case "list":
			cfg.List, err = flags.GetBool(f.Name)
		case "json-output":
			cfg.JSONOutput, err = flags.GetBool(f.Name)
		case "log-errors":
			cfg.LogErrors, err = flags.GetBool(f.Name)
		case "threshold":
			cfg.Thresholds, err = flags.GetStringSlice(f.Name)
		case "verify":
			cfg.Verify, err = flags.GetBool(f.Name)
		case "manifest":
			cfg.Manifest, err = flags.GetString(f.Name)
		case "analyzer":
			cfg.Analyzer, err = flags.GetString(f.Name)
		case "trace-endpoint":
			cfg.Tracing.Endpoint, err = flags.GetString(f.Name)
		case "trace-protocol":
			cfg.Tracing.Protocol, err = flags.GetString(f.Name)
		case "trace-insecure":
			cfg.Tracing.Insecure, err = flags.GetBool(f.Name)
		case "trace-sample-rate":
			cfg.Tracing.SampleRate, err = flags.GetFloat64(f.Name)
		case "trace-service-name":
			cfg.Tracing.ServiceName, err = flags.GetString(f.Name)
		}
	})
	if err != nil {
		return fmt.Errorf("apply flag overrides: %w", err)
	}
	return nil
}

func displayHelp(cmd *cobra.Command) {
	fmt.Print(cmd.UsageString())
}
