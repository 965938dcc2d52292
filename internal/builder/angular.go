package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dosanma1/forge-deploy/internal/executor"
)

// AngularBuilder builds Angular projects with the Angular CLI
type AngularBuilder struct {
	exec executor.Runner
}

// NewAngularBuilder creates a new Angular builder
func NewAngularBuilder(ex executor.Runner) *AngularBuilder {
	return &AngularBuilder{exec: ex}
}

// Name returns the builder name
func (b *AngularBuilder) Name() string {
	return "angular"
}

// Build runs `ng build` and returns the static bundle
func (b *AngularBuilder) Build(ctx context.Context, opts *BuildOptions) (*BuildArtifact, error) {
	if err := b.Validate(opts); err != nil {
		return nil, err
	}

	outputPath := opts.outputPath()
	project := getStringOption(opts.Options, "project", filepath.Base(opts.ProjectRoot))
	sourceMap := getBoolOption(opts.Options, "sourceMap", true)

	args := []string{"build", project}
	if opts.Configuration != "" {
		args = append(args, "--configuration="+opts.Configuration)
	}
	args = append(args, "--output-path="+outputPath)
	if !sourceMap {
		args = append(args, "--source-map=false")
	}

	err := b.exec.Run(ctx, executor.Command{
		Program: "ng",
		Args:    args,
		Dir:     findAngularJSONDir(opts.ProjectRoot),
		Env:     opts.Env,
		Stdout:  opts.output(),
		Stderr:  opts.output(),
	})
	if err != nil {
		return nil, fmt.Errorf("ng build failed: %w", err)
	}

	return &BuildArtifact{
		Type: ArtifactTypeStatic,
		Path: outputPath,
		Metadata: map[string]any{
			"project":       project,
			"configuration": opts.Configuration,
		},
	}, nil
}

// Validate checks that an angular.json is reachable from the project root
func (b *AngularBuilder) Validate(opts *BuildOptions) error {
	if err := validateRoot(opts); err != nil {
		return err
	}

	if _, err := os.Stat(opts.ProjectRoot); os.IsNotExist(err) {
		return fmt.Errorf("project root does not exist: %s", opts.ProjectRoot)
	}

	if !fileExists(filepath.Join(opts.ProjectRoot, "angular.json")) &&
		!fileExists(filepath.Join(filepath.Dir(opts.ProjectRoot), "angular.json")) {
		return fmt.Errorf("angular.json not found in project root or parent")
	}

	return nil
}

// findAngularJSONDir returns the directory containing angular.json, the
// project root or its parent in a workspace setup.
func findAngularJSONDir(projectRoot string) string {
	if fileExists(filepath.Join(projectRoot, "angular.json")) {
		return projectRoot
	}

	parent := filepath.Dir(projectRoot)
	if fileExists(filepath.Join(parent, "angular.json")) {
		return parent
	}

	return projectRoot
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
