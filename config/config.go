// Package config loads settings for the fluent command from defaults, a YAML
// file, FLUENT_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/hasbyte1/go-fluent/arr"
	"github.com/hasbyte1/go-fluent/collections"
)

// Default configuration values.
const (
	DefaultMacrosDir = "macros"
	DefaultOutput    = "json"
	EnvPrefix        = "FLUENT_"
)

// DefaultFiles are looked up in the working directory when no config file is
// given explicitly.
var DefaultFiles = []string{"fluent.yaml", "fluent.yml"}

// Outputs lists the accepted values of Config.Output.
var Outputs = []string{"json", "yaml", "table", "dot"}

// Config is the resolved configuration.
type Config struct {
	Separator string `koanf:"separator"`
	Strict    bool   `koanf:"strict"`
	Debug     bool   `koanf:"debug"`
	MacrosDir string `koanf:"macros_dir"`
	Output    string `koanf:"output"`
	Deferred  bool   `koanf:"deferred"`

	// File is the config file that was read, empty when none was.
	File string `koanf:"-"`
}

// Load builds a Config. Precedence (highest to lowest): flags that were set
// explicitly > FLUENT_* env vars > config file > defaults.
//
// An explicit cfgFile must exist; otherwise the first of DefaultFiles found in
// the working directory is used.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"separator":  arr.DefaultSeparator,
		"strict":     false,
		"debug":      false,
		"macros_dir": DefaultMacrosDir,
		"output":     DefaultOutput,
		"deferred":   false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used, err := findConfigFile(cfgFile)
	if err != nil {
		return nil, err
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: FLUENT_MACROS_DIR -> macros_dir
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			// --defer sets the deferred key
			if key == "defer" {
				key = "deferred"
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	for _, name := range DefaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Separator == "" {
		return fmt.Errorf("separator must not be empty")
	}
	for _, o := range Outputs {
		if c.Output == o {
			return nil
		}
	}
	return fmt.Errorf("unknown output %q (want one of %s)", c.Output, strings.Join(Outputs, ", "))
}

// Options translates c into Container options. logger receives step logs
// when Debug is set.
func (c *Config) Options(logger *slog.Logger) []collections.Option {
	opts := []collections.Option{
		collections.WithSeparator(c.Separator),
		collections.WithStrict(c.Strict),
		collections.WithDebug(c.Debug),
	}
	if logger != nil {
		opts = append(opts, collections.WithLogger(logger))
	}
	if c.Deferred {
		opts = append(opts, collections.Deferred())
	}
	return opts
}

// Resolver returns the path resolver matching c.
func (c *Config) Resolver() arr.Resolver {
	return arr.Resolver{Separator: c.Separator, Strict: c.Strict}
}
