// Package corber packages a framework build into native apps by delegating
// to corber (Cordova), then records the produced artifacts in the pipeline
// context.
package corber

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dosanma1/forge-deploy/internal/config"
	"github.com/dosanma1/forge-deploy/internal/executor"
	"github.com/dosanma1/forge-deploy/internal/fsutil"
	"github.com/dosanma1/forge-deploy/internal/pipeline"
	"github.com/dosanma1/forge-deploy/internal/ui"
)

// Type is the registry name of this plugin.
const Type = "corber"

// Plugin stages the framework build into the Cordova project, runs the
// native build and discovers its artifacts.
type Plugin struct {
	pipeline.Base

	fs         fsutil.FS
	newRunner  RunnerFactory
	nativePath NativePathFunc
	strategies Strategies
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithFS sets the filesystem.
func WithFS(fs fsutil.FS) Option {
	return func(p *Plugin) { p.fs = fs }
}

// WithRunnerFactory sets how build runners are created.
func WithRunnerFactory(f RunnerFactory) Option {
	return func(p *Plugin) { p.newRunner = f }
}

// WithNativePath overrides the native project path resolver.
func WithNativePath(f NativePathFunc) Option {
	return func(p *Plugin) { p.nativePath = f }
}

// WithStrategies replaces the artifact discovery table.
func WithStrategies(s Strategies) Option {
	return func(p *Plugin) { p.strategies = s }
}

// New creates a corber plugin instance.
func New(name string, opts ...Option) *Plugin {
	p := &Plugin{
		Base:       pipeline.NewBase(name, config.NewOptions("enabled", true)),
		fs:         fsutil.NewOS(),
		newRunner:  NewExecRunnerFactory("corber", executor.NewOSRunner()),
		nativePath: CordovaPath,
		strategies: DefaultStrategies(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Factory returns a pipeline factory creating plugins with opts.
func Factory(opts ...Option) pipeline.Factory {
	return func(name string) pipeline.Plugin {
		return New(name, opts...)
	}
}

// Args returns the arguments the next native build would receive.
func (p *Plugin) Args() []string {
	return BuildArgs(p.PluginConfig())
}

// Setup clears the platform's native build output so stale artifacts are
// never picked up.
func (p *Plugin) Setup(ctx context.Context, pctx *pipeline.Context) error {
	if !p.Enabled() {
		return nil
	}

	platform := p.ReadString("platform")
	dir, ok := p.strategies.OutputDir(platform, p.nativePath(pctx.Project))
	if !ok {
		p.Log(pctx, fmt.Sprintf("Cannot clear build output for platform %q: not supported yet", platform), pipeline.LogOptions{Color: pipeline.ColorRed})
		return nil
	}

	p.Log(pctx, fmt.Sprintf("Clearing build output %s", dir), pipeline.LogOptions{Verbose: true})
	if err := p.fs.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear build output: %w", err)
	}
	return nil
}

// DidBuild stages DistDir into <native>/www, runs the native build and
// returns the artifacts for the configured platform merged with any the
// context already holds. A nil delta means the plugin is disabled; without a
// configured platform the delta carries no artifacts at all.
func (p *Plugin) DidBuild(ctx context.Context, pctx *pipeline.Context) (*pipeline.Delta, error) {
	if !p.Enabled() {
		return nil, nil
	}

	platform := p.ReadString("platform")
	nativeRoot := p.nativePath(pctx.Project)
	www := wwwDir(nativeRoot)

	// cordova embeds whatever is in its www directory
	p.Log(pctx, fmt.Sprintf("Copying framework build to %s", www), pipeline.LogOptions{Verbose: true})
	if err := p.fs.CopyDir(pctx.DistDir, www); err != nil {
		return nil, fmt.Errorf("failed to stage framework build: %w", err)
	}

	args := p.Args()
	p.Log(pctx, fmt.Sprintf("Running: corber build %s", strings.Join(args, " ")), pipeline.LogOptions{Verbose: true})

	u := pctx.UI
	if u == nil {
		u = ui.Discard()
	}
	runner := p.newRunner(BuildSettings{
		UI:       u,
		Project:  pctx.Project,
		Settings: map[string]any{},
	})

	level := u.LogLevel()
	err := runner.ValidateAndRun(ctx, args)
	u.SetLogLevel(level)
	if err != nil {
		return nil, err
	}
	p.Log(pctx, "Corber build okay", pipeline.LogOptions{Verbose: true})

	artifacts := p.discoverArtifacts(pctx, platform, nativeRoot)
	if platform == "" {
		return &pipeline.Delta{}, nil
	}

	merged := append(slices.Clone(pctx.Corber[platform]), artifacts...)
	return &pipeline.Delta{
		Corber: map[string][]string{platform: merged},
	}, nil
}

// discoverArtifacts lists the platform output directory. Every failure is
// downgraded to a warning; the build itself already succeeded.
func (p *Plugin) discoverArtifacts(pctx *pipeline.Context, platform, nativeRoot string) []string {
	dir, ok := p.strategies.OutputDir(platform, nativeRoot)
	if !ok {
		p.Log(pctx, fmt.Sprintf("Adding build artifacts to the pipeline context is not supported yet for platform %q", platform), pipeline.LogOptions{Color: pipeline.ColorRed})
		return nil
	}

	names, err := p.fs.ReadDirNames(dir)
	if err != nil || len(names) == 0 {
		p.Log(pctx, "Could not capture any build artifacts", pipeline.LogOptions{Color: pipeline.ColorRed})
		return nil
	}

	artifacts := artifactPaths(dir, names)
	p.Log(pctx, fmt.Sprintf("Build artifacts: %s", strings.Join(artifacts, ", ")), pipeline.LogOptions{Verbose: true})
	return artifacts
}
