// Package builder produces the web bundle that later pipeline stages package
// into native apps.
package builder

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
)

// Builder is the interface that all framework-specific builders must implement.
type Builder interface {
	// Name returns the builder name (e.g., "angular", "npm")
	Name() string

	// Build executes the build and reports where the bundle was written
	Build(ctx context.Context, opts *BuildOptions) (*BuildArtifact, error)

	// Validate validates the build options
	Validate(opts *BuildOptions) error
}

// BuildOptions contains the options for a build operation
type BuildOptions struct {
	// ProjectRoot is the absolute path to the project root
	ProjectRoot string

	// Configuration is the framework configuration to use (e.g., "production")
	Configuration string

	// Options are the builder-specific plugin options
	Options map[string]any

	// Env holds extra environment variables for the build process
	Env map[string]string

	// Output receives the build tool's output. Nil discards it.
	Output io.Writer

	Verbose bool
}

// outputPath resolves the outputPath option against the project root.
func (o *BuildOptions) outputPath() string {
	path := getStringOption(o.Options, "outputPath", "dist")
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(o.ProjectRoot, path)
}

func (o *BuildOptions) output() io.Writer {
	if o.Output == nil {
		return io.Discard
	}
	return o.Output
}

func validateRoot(opts *BuildOptions) error {
	if opts == nil || opts.ProjectRoot == "" {
		return fmt.Errorf("project root is required")
	}
	return nil
}

func getStringOption(opts map[string]any, key, defaultValue string) string {
	if v, ok := opts[key].(string); ok && v != "" {
		return v
	}
	return defaultValue
}

func getBoolOption(opts map[string]any, key string, defaultValue bool) bool {
	if v, ok := opts[key].(bool); ok {
		return v
	}
	return defaultValue
}
