// Package config loads the layered tool configuration: embedded
// defaults, then the user config file from the XDG config directory,
// then GIT_CONFIGSPEC_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	specerrors "github.com/chrillof/git-configspec/pkg/errors"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// GIT_CONFIGSPEC_GIT_BINARY=/usr/local/bin/git.
const EnvPrefix = "GIT_CONFIGSPEC_"

// Config is the effective tool configuration.
type Config struct {
	Spec SpecConfig `koanf:"spec" toml:"spec"`
	Git  GitConfig  `koanf:"git" toml:"git"`
}

// SpecConfig controls how the config spec source is located.
type SpecConfig struct {
	// Filename is used when no positional spec path is given.
	Filename string `koanf:"filename" toml:"filename"`
}

// GitConfig controls the executor's external git invocation.
type GitConfig struct {
	Binary       string   `koanf:"binary" toml:"binary"`
	CheckoutArgs []string `koanf:"checkout_args" toml:"checkout_args"`
	Timeout      string   `koanf:"timeout" toml:"timeout"`
}

// ExecTimeout parses the configured timeout, falling back to five
// minutes on an unparseable value.
func (g GitConfig) ExecTimeout() time.Duration {
	d, err := time.ParseDuration(g.Timeout)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// UserConfigPath returns the path of the optional user config file.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "git-configspec", "config.toml")
}

// Load builds the effective configuration.
func Load() (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, specerrors.Wrap(err, specerrors.ErrConfigLoad, "failed to load embedded defaults")
	}

	// 2. User config file, if present
	if path := UserConfigPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, specerrors.Wrapf(err, specerrors.ErrConfigParse,
					"failed to load user config from %s", path)
			}
		}
	}

	// 3. Environment overrides: GIT_CONFIGSPEC_GIT_BINARY -> git.binary
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, specerrors.Wrap(err, specerrors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, specerrors.Wrap(err, specerrors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// Default returns the configuration built from embedded defaults only.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		// The embedded defaults are compiled in; failing to parse them
		// is a programming error.
		panic(err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(err)
	}
	return &cfg
}

// Dump renders a configuration as TOML, for the genconfig command.
func Dump(cfg *Config) ([]byte, error) {
	out, err := gotoml.Marshal(cfg)
	if err != nil {
		return nil, specerrors.Wrap(err, specerrors.ErrInternal, "failed to render configuration")
	}
	return out, nil
}
