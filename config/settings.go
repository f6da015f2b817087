// Package config loads tool settings and provides the key-value store shared with route handlers.
package config

import (
	"errors"
	"fmt"
	"github.com/saylorsolutions/genmenu/globalconfig"
	"github.com/spf13/viper"
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvPrefix     = "GENMENU"
	EnvConfigPath = "GENMENU_CONFIG" // EnvConfigPath overrides the location of the settings file.
	EnvDebug      = "GENMENU_DEBUG"  // EnvDebug enables debug logging when set to a true value.
	EnvNoColor    = "NO_COLOR"       // EnvNoColor disables styled output when set to any value.

	DefaultRegistryURL = "https://registry.npmjs.org"
)

// Settings configures the collaborators wired by the driver.
type Settings struct {
	RegistryURL    string   `mapstructure:"registry_url"`
	NPMCommand     string   `mapstructure:"npm_command"`
	RunCommand     string   `mapstructure:"run_command"`
	LookupPaths    []string `mapstructure:"lookup_paths"`
	DenyList       []string `mapstructure:"deny_list"`
	GlobalConfig   string   `mapstructure:"global_config"`
	InsightPath    string   `mapstructure:"insight_path"`
	LogFile        string   `mapstructure:"log_file"`
	Debug          bool     `mapstructure:"debug"`
	SearchSize     int      `mapstructure:"search_size"`
	SearchAttempts int      `mapstructure:"search_attempts"`
}

// Dir returns the directory holding the settings and insight files.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, "genmenu"), nil
}

func setDefaults(v *viper.Viper, dir string) {
	home, _ := os.UserHomeDir()
	v.SetDefault("registry_url", DefaultRegistryURL)
	v.SetDefault("npm_command", "npm")
	v.SetDefault("run_command", "yo")
	v.SetDefault("lookup_paths", []string{})
	v.SetDefault("deny_list", []string{})
	v.SetDefault("global_config", filepath.Join(home, globalconfig.DefaultFileName))
	v.SetDefault("insight_path", filepath.Join(dir, "insight.toml"))
	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)
	v.SetDefault("search_size", 250)
	v.SetDefault("search_attempts", 3)
}

// Load reads [Settings] from the TOML file at path, falling back to defaults for anything not set.
// Environment variables with the GENMENU_ prefix override file values.
//
// If path is empty, then [EnvConfigPath] is consulted, and finally config.toml in [Dir].
// Only an explicitly requested file is required to exist.
func Load(path string) (Settings, error) {
	dir, err := Dir()
	if err != nil {
		return Settings{}, err
	}
	v := viper.New()
	setDefaults(v, dir)
	v.SetConfigType("toml")

	if len(path) == 0 {
		path = EnvVal(EnvConfigPath, "")
	}
	explicit := len(path) > 0
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if s.SearchSize <= 0 {
		s.SearchSize = 250
	}
	if s.SearchAttempts < 1 {
		s.SearchAttempts = 1
	}
	return s, nil
}
