// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the ukernel tool configuration from defaults, an
// optional ukernel.yaml, UKERNEL_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ajroetker/go-ukernel/ukernel"
	"github.com/ajroetker/go-ukernel/ukernel/cpuinfo"
	"github.com/ajroetker/go-ukernel/ukernel/device"
)

// EnvPrefix prefixes every environment variable, e.g. UKERNEL_WORKERS or
// UKERNEL_SELFTEST_SEED.
const EnvPrefix = "UKERNEL"

// Config is the complete tool configuration.
type Config struct {
	Workers        int            `mapstructure:"workers"`
	MinRowsPerTask int            `mapstructure:"min_rows_per_task"`
	GenericOnly    bool           `mapstructure:"generic_only"`
	Features       []string       `mapstructure:"features"`
	Log            LogConfig      `mapstructure:"log"`
	Selftest       SelftestConfig `mapstructure:"selftest"`
}

// LogConfig configures klog.
type LogConfig struct {
	Verbosity int `mapstructure:"verbosity"`
}

// SelftestConfig configures the differential self-test.
type SelftestConfig struct {
	Iterations  int    `mapstructure:"iterations"`
	Seed        uint64 `mapstructure:"seed"`
	Parallelism int    `mapstructure:"parallelism"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Workers:        0,
		MinRowsPerTask: device.DefaultMinRowsPerTask,
		Log:            LogConfig{Verbosity: 0},
		Selftest: SelftestConfig{
			Iterations:  20,
			Seed:        1,
			Parallelism: 0,
		},
	}
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("min_rows_per_task", cfg.MinRowsPerTask)
	v.SetDefault("generic_only", cfg.GenericOnly)
	v.SetDefault("features", cfg.Features)
	v.SetDefault("log.verbosity", cfg.Log.Verbosity)
	v.SetDefault("selftest.iterations", cfg.Selftest.Iterations)
	v.SetDefault("selftest.seed", cfg.Selftest.Seed)
	v.SetDefault("selftest.parallelism", cfg.Selftest.Parallelism)
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"workers":      "workers",
	"min-rows":     "min_rows_per_task",
	"generic-only": "generic_only",
	"features":     "features",
	"verbosity":    "log.verbosity",
	"iterations":   "selftest.iterations",
	"seed":         "selftest.seed",
	"parallelism":  "selftest.parallelism",
}

// Load reads the configuration. cfgFile may be empty, in which case
// ukernel.yaml is looked up in the working directory and in
// $HOME/.config/ukernel; a missing file is not an error. Flags in fs that
// were set on the command line override everything else.
func Load(cfgFile string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	cfg := Default()
	setDefaults(v, cfg)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "ukernel"))
		}
		v.SetConfigName("ukernel")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "binding flag --%s", name)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config")
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return cfg, nil
}

// Validate checks value ranges and feature names.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.MinRowsPerTask < 1 {
		return errors.Errorf("min_rows_per_task must be >= 1, got %d", c.MinRowsPerTask)
	}
	if c.Log.Verbosity < 0 {
		return errors.Errorf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}
	if c.Selftest.Iterations < 1 {
		return errors.Errorf("selftest.iterations must be >= 1, got %d", c.Selftest.Iterations)
	}
	if c.Selftest.Parallelism < 0 {
		return errors.Errorf("selftest.parallelism must be >= 0, got %d", c.Selftest.Parallelism)
	}
	if _, err := cpuinfo.ParseFeatures(ukernel.HostArch(), c.Features); err != nil {
		return errors.Wrap(err, "features")
	}
	return nil
}

// CPUData returns the host feature data with the configured overrides.
func (c *Config) CPUData() ([]uint64, error) {
	return cpuinfo.ApplyOverrides(ukernel.HostArch(), cpuinfo.Query(), c.Features)
}

// DeviceOptions returns the device options the configuration describes.
func (c *Config) DeviceOptions() ([]device.Option, error) {
	data, err := c.CPUData()
	if err != nil {
		return nil, err
	}
	return []device.Option{
		device.WithCPUData(data),
		device.WithWorkers(c.Workers),
		device.WithMinRowsPerTask(c.MinRowsPerTask),
		device.WithGenericOnly(c.GenericOnly),
	}, nil
}
