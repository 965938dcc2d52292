package config

import (
	"fmt"
	"path/filepath"
)

// Resolver handles configuration precedence: CLI flags > forge-deploy.yaml > defaults
type Resolver struct {
	config *Config
}

// NewResolver creates a new configuration resolver.
func NewResolver(config *Config) *Resolver {
	return &Resolver{config: config}
}

// ResolveDistDir resolves the framework build output directory.
// Precedence: CLI flag > distDir
func (r *Resolver) ResolveDistDir(cliDistDir string) string {
	if cliDistDir != "" {
		if abs, err := filepath.Abs(cliDistDir); err == nil {
			return abs
		}
		return cliDistDir
	}
	return r.config.DistDir
}

// ResolveVerbose resolves verbosity. Either source can turn it on.
func (r *Resolver) ResolveVerbose(cliVerbose bool) bool {
	return cliVerbose || r.config.Verbose
}

// ResolvePlugins returns the plugin declarations to run, in declaration
// order. An empty filter selects every plugin.
func (r *Resolver) ResolvePlugins(only []string) ([]PluginConfig, error) {
	if len(only) == 0 {
		return r.config.Plugins, nil
	}

	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		if _, err := r.config.GetPlugin(name); err != nil {
			return nil, err
		}
		wanted[name] = true
	}

	selected := make([]PluginConfig, 0, len(only))
	for _, plugin := range r.config.Plugins {
		if wanted[plugin.Name] {
			selected = append(selected, plugin)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no plugins selected")
	}
	return selected, nil
}
