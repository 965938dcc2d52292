package builder

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dosanma1/forge-deploy/internal/executor"
)

// NpmScriptBuilder runs a package.json script, for frameworks without a
// dedicated builder.
type NpmScriptBuilder struct {
	exec executor.Runner
}

// NewNpmScriptBuilder creates a new npm script builder
func NewNpmScriptBuilder(ex executor.Runner) *NpmScriptBuilder {
	return &NpmScriptBuilder{exec: ex}
}

func (b *NpmScriptBuilder) Name() string {
	return "npm"
}

// Build runs `npm run <script>`. The script is expected to write its bundle
// to outputPath.
func (b *NpmScriptBuilder) Build(ctx context.Context, opts *BuildOptions) (*BuildArtifact, error) {
	if err := b.Validate(opts); err != nil {
		return nil, err
	}

	script := getStringOption(opts.Options, "script", "build")
	args := []string{"run", script}
	if opts.Configuration != "" {
		args = append(args, "--", "--configuration="+opts.Configuration)
	}

	err := b.exec.Run(ctx, executor.Command{
		Program: "npm",
		Args:    args,
		Dir:     opts.ProjectRoot,
		Env:     opts.Env,
		Stdout:  opts.output(),
		Stderr:  opts.output(),
	})
	if err != nil {
		return nil, fmt.Errorf("npm run %s failed: %w", script, err)
	}

	return &BuildArtifact{
		Type:     ArtifactTypeStatic,
		Path:     opts.outputPath(),
		Metadata: map[string]any{"script": script},
	}, nil
}

func (b *NpmScriptBuilder) Validate(opts *BuildOptions) error {
	if err := validateRoot(opts); err != nil {
		return err
	}
	if !fileExists(filepath.Join(opts.ProjectRoot, "package.json")) {
		return fmt.Errorf("package.json not found in %s", opts.ProjectRoot)
	}
	return nil
}
