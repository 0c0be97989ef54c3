package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "STOREFRONT_"

// cliConfig is the resolved configuration for one invocation.
type cliConfig struct {
	Server  string
	Storage string
	Timeout time.Duration
	Verbose bool
}

// configDir is $XDG_CONFIG_HOME/storefront, falling back to the platform
// default config directory.
func configDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		var err error
		if base, err = os.UserConfigDir(); err != nil {
			base = "."
		}
	}
	return filepath.Join(base, "storefront")
}

func defaultConfigPath() string  { return filepath.Join(configDir(), "config.yaml") }
func defaultStoragePath() string { return filepath.Join(configDir(), "storage.json") }

// loadConfig layers defaults, the YAML file, STOREFRONT_ environment
// variables and finally flags the user set explicitly. A missing config file
// is only an error when its path was given with --config.
func loadConfig(flags *pflag.FlagSet, path string) (cliConfig, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"server":  "http://localhost:8080",
		"storage": defaultStoragePath(),
		"timeout": "15s",
		"verbose": false,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return cliConfig{}, fmt.Errorf("load defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cliConfig{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	envKey := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return cliConfig{}, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return cliConfig{}, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg := cliConfig{
		Server:  strings.TrimSuffix(k.String("server"), "/"),
		Storage: k.String("storage"),
		Timeout: k.Duration("timeout"),
		Verbose: k.Bool("verbose"),
	}
	if cfg.Server == "" {
		return cliConfig{}, errors.New("server address is empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return cfg, nil
}
