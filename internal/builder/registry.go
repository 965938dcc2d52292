package builder

import (
	"fmt"
	"sort"

	"github.com/dosanma1/forge-deploy/internal/executor"
)

// Factory creates a builder that runs tools through ex.
type Factory func(ex executor.Runner) Builder

// Registry of available builders
var builders = map[string]Factory{
	"angular": func(ex executor.Runner) Builder { return NewAngularBuilder(ex) },
	"npm":     func(ex executor.Runner) Builder { return NewNpmScriptBuilder(ex) },
}

// GetBuilder returns a builder instance by name
func GetBuilder(name string, ex executor.Runner) (Builder, error) {
	factory, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown builder: %s", name)
	}
	return factory(ex), nil
}

// RegisterBuilder adds a new builder to the registry
func RegisterBuilder(name string, factory Factory) {
	builders[name] = factory
}

// ListBuilders returns all registered builder names, sorted
func ListBuilders() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
