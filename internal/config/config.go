// Package config loads cdump configuration from .cdump/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the cdump configuration file.
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the cdump configuration directory.
const ConfigDirName = ".cdump"

// Config holds all cdump configuration.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
}

// InputConfig holds configuration for the source file to read.
type InputConfig struct {
	// File is the C source file to extract from. Shell-style $VAR and ~
	// expansion is applied before the file is opened.
	File string `yaml:"file"`
}

// OutputConfig holds configuration for output rendering.
type OutputConfig struct {
	// Format is the default output format: text, yaml, or json.
	Format string `yaml:"format"`
}

// ErrConfigNotFound is returned when no config file can be found.
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultConfig returns configuration with sensible defaults. These are
// used when no config file exists or when fields are missing from it.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			File: "./main.c",
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Load reads config from .cdump/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking
// up the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// Merge merges loaded config with defaults. Values from loaded config
// take precedence over defaults.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	if loaded.Input.File != "" {
		result.Input.File = loaded.Input.File
	} else {
		result.Input.File = defaults.Input.File
	}

	if loaded.Output.Format != "" {
		result.Output.Format = loaded.Output.Format
	} else {
		result.Output.Format = defaults.Output.Format
	}

	return result
}

// Validate checks that config values are valid.
func Validate(cfg *Config) error {
	switch cfg.Output.Format {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("%w: output format must be text, yaml, or json, got %q",
			ErrInvalidConfig, cfg.Output.Format)
	}

	if cfg.Input.File == "" {
		return fmt.Errorf("%w: input file must not be empty", ErrInvalidConfig)
	}

	return nil
}

// FindConfigDir locates the .cdump directory by walking up from startDir.
// Returns the path to the .cdump directory if found.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .cdump directory if it doesn't exist.
// Returns the path to the .cdump directory.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return configDir, nil
}
