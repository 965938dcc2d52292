package pipeline

import (
	"context"
	"fmt"
)

// Runner executes hooks stage by stage. Within a stage plugins run one at a
// time in declaration order and each delta is applied before the next hook.
type Runner struct {
	plugins []Plugin
}

// NewRunner creates a runner for already-configured plugins.
func NewRunner(plugins ...Plugin) *Runner {
	return &Runner{plugins: plugins}
}

// Plugins returns the plugins in execution order.
func (r *Runner) Plugins() []Plugin {
	return r.plugins
}

// Run executes the given stages (DefaultStages when none are given). The
// first failing hook stops the run.
func (r *Runner) Run(ctx context.Context, pctx *Context, stages ...Stage) error {
	if len(stages) == 0 {
		stages = DefaultStages
	}

	logger := pctx.UI.Logger().With("run", pctx.RunID)
	for _, stage := range stages {
		for _, plugin := range r.plugins {
			ran, err := r.runHook(ctx, stage, plugin, pctx)
			if err != nil {
				return &HookError{Stage: stage, Plugin: plugin.Name(), Err: err}
			}
			if ran {
				logger.Debug("hook finished", "stage", string(stage), "plugin", plugin.Name())
			}
		}
	}

	return nil
}

func (r *Runner) runHook(ctx context.Context, stage Stage, plugin Plugin, pctx *Context) (bool, error) {
	var (
		delta *Delta
		err   error
	)

	switch stage {
	case StageSetup:
		hook, ok := plugin.(SetupHook)
		if !ok {
			return false, nil
		}
		err = hook.Setup(ctx, pctx)
	case StageBuild:
		hook, ok := plugin.(BuildHook)
		if !ok {
			return false, nil
		}
		delta, err = hook.Build(ctx, pctx)
	case StageDidBuild:
		hook, ok := plugin.(DidBuildHook)
		if !ok {
			return false, nil
		}
		delta, err = hook.DidBuild(ctx, pctx)
	case StageDeploy:
		hook, ok := plugin.(DeployHook)
		if !ok {
			return false, nil
		}
		delta, err = hook.Deploy(ctx, pctx)
	default:
		return false, fmt.Errorf("unknown stage %q", stage)
	}

	if err != nil {
		return true, err
	}

	pctx.Apply(delta)
	return true, nil
}

// HookError reports which hook failed. Unwrap returns the hook's own error.
type HookError struct {
	Stage  Stage
	Plugin string
	Err    error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook of plugin %s failed: %v", e.Stage, e.Plugin, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}
