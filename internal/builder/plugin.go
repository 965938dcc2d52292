package builder

import (
	"context"
	"fmt"

	"github.com/dosanma1/forge-deploy/internal/config"
	"github.com/dosanma1/forge-deploy/internal/executor"
	"github.com/dosanma1/forge-deploy/internal/pipeline"
)

// PluginType is the registry name of the build plugin.
const PluginType = "build"

// Plugin runs a framework builder in the build stage and points the
// pipeline's DistDir at the result.
type Plugin struct {
	pipeline.Base
	exec executor.Runner
}

// NewPlugin creates a build plugin. Builders run their tools through ex.
func NewPlugin(name string, ex executor.Runner) *Plugin {
	return &Plugin{
		Base: pipeline.NewBase(name, config.NewOptions(
			"builder", "angular",
			"outputPath", "dist",
		)),
		exec: ex,
	}
}

// PluginFactory returns a pipeline factory for build plugins.
func PluginFactory(ex executor.Runner) pipeline.Factory {
	return func(name string) pipeline.Plugin {
		return NewPlugin(name, ex)
	}
}

// Build implements pipeline.BuildHook.
func (p *Plugin) Build(ctx context.Context, pctx *pipeline.Context) (*pipeline.Delta, error) {
	if !p.Enabled() {
		return nil, nil
	}

	b, err := GetBuilder(p.ReadString("builder"), p.exec)
	if err != nil {
		return nil, err
	}

	opts := &BuildOptions{
		ProjectRoot:   pctx.Project.Root,
		Configuration: p.ReadString("configuration"),
		Options:       p.options(),
		Verbose:       pctx.CommandOptions.Verbose,
	}
	if pctx.UI != nil {
		opts.Output = pctx.UI.Writer()
	}

	p.Log(pctx, fmt.Sprintf("Building web bundle with %s", b.Name()), pipeline.LogOptions{})
	artifact, err := b.Build(ctx, opts)
	if err != nil {
		return nil, err
	}
	p.Log(pctx, fmt.Sprintf("Web bundle written to %s", artifact.Path), pipeline.LogOptions{Verbose: true})

	return &pipeline.Delta{DistDir: artifact.Path}, nil
}

// options resolves every declared and configured option.
func (p *Plugin) options() map[string]any {
	out := map[string]any{}
	for _, key := range []string{"outputPath", "script", "project", "sourceMap"} {
		if v := p.ReadConfig(key); v != nil {
			out[key] = v
		}
	}
	for _, opt := range p.PluginConfig() {
		out[opt.Key] = opt.Value
	}
	return out
}
