package pipeline

import (
	"context"

	"github.com/dosanma1/forge-deploy/internal/config"
)

// Stage names a lifecycle stage.
type Stage string

const (
	StageSetup    Stage = "setup"
	StageBuild    Stage = "build"
	StageDidBuild Stage = "didBuild"
	StageDeploy   Stage = "deploy"
)

// DefaultStages is the full pipeline in execution order.
var DefaultStages = []Stage{StageSetup, StageBuild, StageDidBuild, StageDeploy}

// Plugin is the minimal contract; hooks are optional interfaces below.
type Plugin interface {
	// Name returns the instance name from the configuration.
	Name() string
}

// Configurer receives the plugin's options before any stage runs.
type Configurer interface {
	Configure(opts config.Options) error
}

// SetupHook runs before anything is built.
type SetupHook interface {
	Setup(ctx context.Context, pctx *Context) error
}

// BuildHook produces the framework build.
type BuildHook interface {
	Build(ctx context.Context, pctx *Context) (*Delta, error)
}

// DidBuildHook runs after the framework build exists in DistDir.
type DidBuildHook interface {
	DidBuild(ctx context.Context, pctx *Context) (*Delta, error)
}

// DeployHook publishes what earlier stages produced.
type DeployHook interface {
	Deploy(ctx context.Context, pctx *Context) (*Delta, error)
}
