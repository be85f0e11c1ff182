// Package config loads promptdeck tool configuration from a priority
// hierarchy: built-in defaults, then the user file, then the project
// file, then PROMPTDECK_* environment variables. Higher priority wins
// key by key.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved tool configuration.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	// MarkerDir is the directory name that marks an installation root.
	MarkerDir string `mapstructure:"marker_dir"`
	// GlobalRoot is the fixed global installation root. Defaults to
	// ~/.promptdeck when empty.
	GlobalRoot string `mapstructure:"global_root"`
	// AssetDir is the directory holding the shipped asset bundle, laid
	// out one subdirectory per category.
	AssetDir string `mapstructure:"asset_dir"`
	// IgnorePatterns are doublestar globs excluded from fingerprint
	// walks and catalog discovery.
	IgnorePatterns []string `mapstructure:"ignore_patterns"`
}

var defaultConfig = Config{
	LogLevel:  "info",
	MarkerDir: ".promptdeck",
	AssetDir:  "assets",
	IgnorePatterns: []string{
		"**/.DS_Store",
		"**/*.bak",
		"**/*.swp",
	},
}

// Default returns a copy of the built-in defaults.
func Default() Config {
	cfg := defaultConfig
	cfg.IgnorePatterns = append([]string(nil), defaultConfig.IgnorePatterns...)
	return cfg
}

// Load resolves configuration for the given working directory.
func Load(workDir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", defaultConfig.LogLevel)
	v.SetDefault("marker_dir", defaultConfig.MarkerDir)
	v.SetDefault("asset_dir", defaultConfig.AssetDir)
	v.SetDefault("global_root", "")
	v.SetDefault("ignore_patterns", defaultConfig.IgnorePatterns)

	// User file first so the project file can override it.
	if home, err := os.UserHomeDir(); err == nil {
		userConfig := filepath.Join(home, ".promptdeck", "config.yaml")
		if _, err := os.Stat(userConfig); err == nil {
			v.SetConfigFile(userConfig)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading user config %s: %w", userConfig, err)
			}
		}
	}

	for _, name := range []string{".promptdeck.yaml", ".promptdeck.yml"} {
		projectConfig := filepath.Join(workDir, name)
		if _, err := os.Stat(projectConfig); err == nil {
			v.SetConfigFile(projectConfig)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("reading project config %s: %w", projectConfig, err)
			}
			break
		}
	}

	v.SetEnvPrefix("PROMPTDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"log_level", "marker_dir", "global_root", "asset_dir"} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.GlobalRoot == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.GlobalRoot = filepath.Join(home, ".promptdeck")
	}

	return &cfg, nil
}
