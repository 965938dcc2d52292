package deployer

import (
	"fmt"
	"sort"

	"github.com/dosanma1/forge-deploy/internal/executor"
)

// Factory creates a deployer that runs tools through ex.
type Factory func(ex executor.Runner) Deployer

// Registry of available deployers
var deployers = map[string]Factory{
	"firebase-appdistribution": func(ex executor.Runner) Deployer { return NewFirebaseAppDistribution(ex) },
}

// GetDeployer returns a deployer instance by name
func GetDeployer(name string, ex executor.Runner) (Deployer, error) {
	factory, ok := deployers[name]
	if !ok {
		return nil, fmt.Errorf("unknown deployer: %s", name)
	}
	return factory(ex), nil
}

// RegisterDeployer adds a new deployer to the registry
func RegisterDeployer(name string, factory Factory) {
	deployers[name] = factory
}

// ListDeployers returns all registered deployer names, sorted
func ListDeployers() []string {
	names := make([]string, 0, len(deployers))
	for name := range deployers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
