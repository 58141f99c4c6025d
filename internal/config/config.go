// Package config provides centralized configuration management using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/onboardr/internal/flagstore"
	"github.com/mark3labs/onboardr/internal/logger"
	"github.com/mark3labs/onboardr/internal/onboarding"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for onboardr.
type Config struct {
	DataDir              string `mapstructure:"data_dir" yaml:"data_dir"`
	Store                string `mapstructure:"store" yaml:"store"`
	LogLevel             string `mapstructure:"log_level" yaml:"log_level"`
	LogFile              string `mapstructure:"log_file" yaml:"log_file"`
	FadeDuration         string `mapstructure:"fade_duration" yaml:"fade_duration"`
	InstructionsBackRule string `mapstructure:"instructions_back_rule" yaml:"instructions_back_rule"`
	ScreenpipeDir        string `mapstructure:"screenpipe_dir" yaml:"screenpipe_dir"`
	MCPAddr              string `mapstructure:"mcp_addr" yaml:"mcp_addr"`
}

// keys lists every config key; each is bound to ONBOARDR_<KEY>.
var keys = []string{
	"data_dir",
	"store",
	"log_level",
	"log_file",
	"fade_duration",
	"instructions_back_rule",
	"screenpipe_dir",
	"mcp_addr",
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		DataDir:              ".onboardr",
		Store:                flagstore.BackendFile,
		LogLevel:             "info",
		FadeDuration:         onboarding.DefaultFadeDuration.String(),
		InstructionsBackRule: string(onboarding.BackRuleDevelopmentFirst),
		MCPAddr:              "127.0.0.1:0",
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("onboardr")

	def := Default()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("store", def.Store)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("fade_duration", def.FadeDuration)
	v.SetDefault("instructions_back_rule", def.InstructionsBackRule)
	v.SetDefault("screenpipe_dir", def.ScreenpipeDir)
	v.SetDefault("mcp_addr", def.MCPAddr)

	v.SetEnvPrefix("ONBOARDR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range keys {
		if err := v.BindEnv(key, "ONBOARDR_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
		logger.Debug("Loaded global config from %s", globalPath)
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
		logger.Debug("Merged project config from %s", projectPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, errors.New("data_dir must not be empty"))
	}
	if !flagstore.ValidBackend(c.Store) {
		errs = append(errs, fmt.Errorf("store %q is not one of %s", c.Store, strings.Join(flagstore.Backends(), ", ")))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Fade(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.BackRule(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Fade parses fade_duration. An empty value means the default.
func (c *Config) Fade() (time.Duration, error) {
	if strings.TrimSpace(c.FadeDuration) == "" {
		return onboarding.DefaultFadeDuration, nil
	}
	d, err := time.ParseDuration(c.FadeDuration)
	if err != nil {
		return 0, fmt.Errorf("fade_duration: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("fade_duration must not be negative, got %s", d)
	}
	return d, nil
}

// BackRule parses instructions_back_rule.
func (c *Config) BackRule() (onboarding.InstructionsBackRule, error) {
	rule, err := onboarding.ParseInstructionsBackRule(c.InstructionsBackRule)
	if err != nil {
		return "", fmt.Errorf("instructions_back_rule: %w", err)
	}
	return rule, nil
}

// PipesRoot returns the screenpipe directory, defaulting to the working
// directory.
func (c *Config) PipesRoot() string {
	if c.ScreenpipeDir != "" {
		return c.ScreenpipeDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/onboardr/onboardr.yml or $XDG_CONFIG_HOME/onboardr/onboardr.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "onboardr", "onboardr.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "onboardr", "onboardr.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "onboardr.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	return write(GlobalPath(), cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	logger.Debug("Config written to %s", path)
	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
