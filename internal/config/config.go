// Package config resolves solver and display settings from defaults, an
// optional gomdm.yaml file, GOMDM_* environment variables and command flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/alexiusacademia/gomdm/internal/mdm"
)

// Keys shared by the config file, the environment and the bound flags
const (
	KeyMaxIterations = "solver.max_iterations"
	KeyTolerance     = "solver.tolerance"
	KeyStiffnessRule = "solver.stiffness_rule"
	KeySamples       = "diagram.samples"
	KeyDecimals      = "output.decimals"
)

const (
	configName = "gomdm"
	envPrefix  = "GOMDM"
)

// Config holds the resolved settings
type Config struct {
	Solver  SolverConfig
	Diagram DiagramConfig
	Output  OutputConfig

	// File is the config file that was read, empty when none was found
	File string
}

// SolverConfig controls the moment distribution
type SolverConfig struct {
	MaxIterations int
	Tolerance     float64
	StiffnessRule string
}

// DiagramConfig controls diagram sampling
type DiagramConfig struct {
	Samples int
}

// OutputConfig controls report formatting
type OutputConfig struct {
	Decimals int
}

// New returns a viper instance with defaults and environment overrides set up.
// Flags are bound to it by the caller before Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyMaxIterations, mdm.DefaultMaxIterations)
	v.SetDefault(KeyTolerance, mdm.DefaultTolerance)
	v.SetDefault(KeyStiffnessRule, mdm.StandardStiffness.String())
	v.SetDefault(KeySamples, mdm.DefaultSamples)
	v.SetDefault(KeyDecimals, 2)

	// GOMDM_SOLVER_TOLERANCE overrides solver.tolerance
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file and returns the resolved settings. An explicit
// path must exist; otherwise gomdm.yaml is looked up in the working directory
// and the user config directory, and a missing file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Solver: SolverConfig{
			MaxIterations: v.GetInt(KeyMaxIterations),
			Tolerance:     v.GetFloat64(KeyTolerance),
			StiffnessRule: v.GetString(KeyStiffnessRule),
		},
		Diagram: DiagramConfig{
			Samples: v.GetInt(KeySamples),
		},
		Output: OutputConfig{
			Decimals: v.GetInt(KeyDecimals),
		},
		File: v.ConfigFileUsed(),
	}

	if cfg.Output.Decimals < 0 || cfg.Output.Decimals > 10 {
		return nil, fmt.Errorf("output.decimals must be between 0 and 10 (got %d)", cfg.Output.Decimals)
	}
	return cfg, nil
}

// Options converts the solver settings into validated solver options
func (c *Config) Options() (mdm.Options, error) {
	rule, err := mdm.ParseStiffnessRule(c.Solver.StiffnessRule)
	if err != nil {
		return mdm.Options{}, fmt.Errorf("%w: %v", mdm.ErrInvalidOptions, err)
	}
	opts := mdm.Options{
		MaxIterations: c.Solver.MaxIterations,
		Tolerance:     c.Solver.Tolerance,
		Stiffness:     rule,
		Samples:       c.Diagram.Samples,
	}
	if err := opts.Validate(); err != nil {
		return mdm.Options{}, err
	}
	return opts, nil
}
