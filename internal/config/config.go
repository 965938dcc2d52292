// Package config loads forge-deploy.yaml, the deploy pipeline configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dosanma1/forge-deploy/internal/workspace"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "forge-deploy.yaml"

// ErrInvalidConfig marks configuration errors.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the forge-deploy.yaml configuration file.
type Config struct {
	// Project is the web project being packaged.
	Project ProjectConfig `yaml:"project"`

	// DistDir is where the framework build writes its output.
	DistDir string `yaml:"distDir"`

	// CorberBin is the corber executable used for native builds.
	CorberBin string `yaml:"corberBin"`

	// Verbose enables verbose plugin output.
	Verbose bool `yaml:"verbose"`

	// Plugins run in declaration order for every pipeline stage.
	Plugins []PluginConfig `yaml:"plugins"`

	// Dir is the directory containing the configuration file.
	Dir string `yaml:"-"`
}

// ProjectConfig describes the web project.
type ProjectConfig struct {
	Name string `yaml:"name"`
	Root string `yaml:"root"`
}

// PluginConfig declares one plugin instance.
type PluginConfig struct {
	// Name identifies the instance (kebab-case, unique).
	Name string `yaml:"name"`
	// Type selects the plugin implementation. Defaults to Name.
	Type string `yaml:"type"`
	// Config holds plugin options in declaration order.
	Config Options `yaml:"config"`
}

// Find locates forge-deploy.yaml starting at dir and walking up.
func Find(dir string) (string, error) {
	root, err := workspace.FindRoot(dir, FileName)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, FileName), nil
}

// Load reads, validates and parses the configuration file at path.
// A .env file next to it is loaded first and ${VAR} references are expanded
// from the environment.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(absPath)

	if err := loadDotEnv(dir); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(ExpandEnv(data), dir)
}

// Parse parses configuration data. dir anchors relative paths.
func Parse(data []byte, dir string) (*Config, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}
	config.Dir = dir

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// Validate checks semantic rules the schema cannot express.
func (c *Config) Validate() error {
	names := make(map[string]bool, len(c.Plugins))
	for _, plugin := range c.Plugins {
		if err := workspace.ValidateName(plugin.Name); err != nil {
			return fmt.Errorf("plugin: %w", err)
		}
		if names[plugin.Name] {
			return fmt.Errorf("duplicate plugin name: %s", plugin.Name)
		}
		names[plugin.Name] = true

		if plugin.Type == "" {
			return fmt.Errorf("plugin %s: type is required", plugin.Name)
		}
	}

	return nil
}

// GetPlugin finds a plugin declaration by name.
func (c *Config) GetPlugin(name string) (*PluginConfig, error) {
	for i := range c.Plugins {
		if c.Plugins[i].Name == name {
			return &c.Plugins[i], nil
		}
	}
	return nil, fmt.Errorf("plugin not found: %s", name)
}

// applyDefaults sets default values for missing fields.
func (c *Config) applyDefaults() {
	if c.Project.Root == "" {
		c.Project.Root = "."
	}
	c.Project.Root = absFrom(c.Dir, c.Project.Root)

	if c.Project.Name == "" {
		c.Project.Name = filepath.Base(c.Project.Root)
	}

	if c.DistDir == "" {
		c.DistDir = "dist"
	}
	c.DistDir = absFrom(c.Project.Root, c.DistDir)

	if c.CorberBin == "" {
		c.CorberBin = "corber"
	}

	for i := range c.Plugins {
		if c.Plugins[i].Type == "" {
			c.Plugins[i].Type = c.Plugins[i].Name
		}
	}
}

func absFrom(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

func loadDotEnv(dir string) error {
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err != nil {
		return nil
	}
	if err := godotenv.Load(envPath); err != nil {
		return fmt.Errorf("failed to load %s: %w", envPath, err)
	}
	return nil
}
