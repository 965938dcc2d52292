package pipeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dosanma1/forge-deploy/internal/config"
)

// ErrUnknownPlugin is returned for a plugin type nobody registered.
var ErrUnknownPlugin = errors.New("unknown plugin type")

// Factory creates a plugin instance with the given name.
type Factory func(name string) Plugin

// Registry holds plugin factories by type.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for a plugin type.
func (r *Registry) Register(pluginType string, factory Factory) error {
	if _, exists := r.factories[pluginType]; exists {
		return fmt.Errorf("plugin type %q already registered", pluginType)
	}
	r.factories[pluginType] = factory
	return nil
}

// New creates a plugin of the given type.
func (r *Registry) New(pluginType, name string) (Plugin, error) {
	factory, ok := r.factories[pluginType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlugin, pluginType)
	}
	return factory(name), nil
}

// Types returns all registered plugin types, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Instantiate creates and configures plugins for each declaration, in order.
func (r *Registry) Instantiate(decls []config.PluginConfig) ([]Plugin, error) {
	plugins := make([]Plugin, 0, len(decls))
	for _, decl := range decls {
		plugin, err := r.New(decl.Type, decl.Name)
		if err != nil {
			return nil, fmt.Errorf("plugin %s: %w", decl.Name, err)
		}

		if c, ok := plugin.(Configurer); ok {
			if err := c.Configure(decl.Config); err != nil {
				return nil, fmt.Errorf("failed to configure plugin %s: %w", decl.Name, err)
			}
		}

		plugins = append(plugins, plugin)
	}
	return plugins, nil
}
