// Package config resolves runtime settings.
//
// Sources in priority order: command-line flags, TODO_* environment
// variables, the config file (config.yaml in <user config dir>/todo, or
// --config), then defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/idilsaglam/todotxt/internal/logging"
)

// Keys shared with flag bindings.
const (
	KeyFile        = "file"
	KeyTheme       = "theme"
	KeyLogLevel    = "log.level"
	KeyOnMalformed = "on_malformed"
	KeyGroup       = "group"
)

const (
	EnvPrefix       = "TODO"
	DefaultFileName = "todo.txt"

	PolicyAbort = "abort"
	PolicySkip  = "skip"
)

var (
	themes   = []string{"classic", "neon", "mono"}
	policies = []string{PolicyAbort, PolicySkip}
)

// Config holds the resolved settings for one invocation.
type Config struct {
	File        string
	Theme       string
	LogLevel    string
	OnMalformed string
	Group       bool
}

// SkipMalformed reports whether bad records should be dropped on load.
func (c *Config) SkipMalformed() bool { return c.OnMalformed == PolicySkip }

// Validate rejects values no component understands.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.File) == "" {
		errs = append(errs, errors.New("file: must not be empty"))
	}
	if !slices.Contains(themes, c.Theme) {
		errs = append(errs, fmt.Errorf("theme: %q is not one of %s", c.Theme, strings.Join(themes, ", ")))
	}
	if !slices.Contains(policies, c.OnMalformed) {
		errs = append(errs, fmt.Errorf("on_malformed: %q is not one of %s", c.OnMalformed, strings.Join(policies, ", ")))
	}
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("log.level: %q is not one of debug, info, warn, error", c.LogLevel))
	}
	return errors.Join(errs...)
}

// DefaultFile is todo.txt in the user's home directory.
func DefaultFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, DefaultFileName)
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyFile, DefaultFile())
	v.SetDefault(KeyTheme, "classic")
	v.SetDefault(KeyLogLevel, logging.DefaultLevel)
	v.SetDefault(KeyOnMalformed, PolicyAbort)
	v.SetDefault(KeyGroup, false)
}

// NewViper prepares a viper instance with defaults, environment lookup and
// the config file. A missing default config file is not an error; a missing
// explicit cfgFile is.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(ExpandPath(cfgFile))
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "todo"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// New builds a Config from v.
func New(v *viper.Viper) *Config {
	return &Config{
		File:        ExpandPath(v.GetString(KeyFile)),
		Theme:       strings.ToLower(v.GetString(KeyTheme)),
		LogLevel:    strings.ToLower(v.GetString(KeyLogLevel)),
		OnMalformed: strings.ToLower(v.GetString(KeyOnMalformed)),
		Group:       v.GetBool(KeyGroup),
	}
}

// ExpandPath expands environment variables and a leading ~.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}
