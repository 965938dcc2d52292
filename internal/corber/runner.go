package corber

import (
	"context"
	"fmt"
	"slices"

	"github.com/dosanma1/forge-deploy/internal/executor"
	"github.com/dosanma1/forge-deploy/internal/pipeline"
	"github.com/dosanma1/forge-deploy/internal/ui"
)

// BuildSettings is what a build runner is constructed with.
type BuildSettings struct {
	UI       *ui.UI
	Project  pipeline.Project
	Settings map[string]any
}

// BuildRunner runs a native build to completion.
type BuildRunner interface {
	ValidateAndRun(ctx context.Context, args []string) error
}

// RunnerFactory creates a BuildRunner for one build.
type RunnerFactory func(settings BuildSettings) BuildRunner

// ExecRunner runs `corber build` as a child process in the project root.
type ExecRunner struct {
	settings BuildSettings
	bin      string
	exec     executor.Runner
}

// NewExecRunnerFactory returns a factory producing ExecRunners for bin.
func NewExecRunnerFactory(bin string, ex executor.Runner) RunnerFactory {
	return func(settings BuildSettings) BuildRunner {
		return &ExecRunner{settings: settings, bin: bin, exec: ex}
	}
}

// ValidateAndRun implements BuildRunner. Passing --quiet lowers the UI to
// warnings, the same side effect corber has on its own logger.
func (r *ExecRunner) ValidateAndRun(ctx context.Context, args []string) error {
	if r.bin == "" {
		return fmt.Errorf("corber binary is not configured")
	}
	if r.settings.Project.Root == "" {
		return fmt.Errorf("project root is required")
	}

	u := r.settings.UI
	if u == nil {
		u = ui.Discard()
	}
	if slices.Contains(args, FlagQuiet) {
		u.SetLogLevel(ui.LevelQuiet)
	}

	cmdArgs := append([]string{"build"}, args...)
	return r.exec.Run(ctx, executor.Command{
		Program: r.bin,
		Args:    cmdArgs,
		Dir:     r.settings.Project.Root,
		Stdout:  u.Writer(),
		Stderr:  u.Writer(),
	})
}
