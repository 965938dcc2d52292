package deployer

import (
	"context"
	"io"
)

// DeployOptions contains options for publishing build artifacts
type DeployOptions struct {
	// Name of the plugin instance running the deployment
	Name string
	// Artifacts are the files to publish, in order
	Artifacts []string
	// Options are deployer-specific plugin options
	Options map[string]any
	// ProjectRoot is the absolute path to the project root
	ProjectRoot string
	// Env holds extra environment variables for the deploy tool
	Env map[string]string
	// Output receives the deploy tool's output. Nil discards it.
	Output io.Writer
	// Verbose enables detailed output
	Verbose bool
}

// Deployer is the interface that all deployers must implement
type Deployer interface {
	// Deploy publishes the artifacts and returns the ones it uploaded
	Deploy(ctx context.Context, opts *DeployOptions) ([]string, error)

	// Name returns the deployer name (e.g., "firebase-appdistribution")
	Name() string
}

func (o *DeployOptions) output() io.Writer {
	if o.Output == nil {
		return io.Discard
	}
	return o.Output
}
