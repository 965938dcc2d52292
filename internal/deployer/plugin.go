// Package deployer publishes the native artifacts collected by earlier
// pipeline stages.
package deployer

import (
	"context"
	"fmt"

	"github.com/dosanma1/forge-deploy/internal/config"
	"github.com/dosanma1/forge-deploy/internal/executor"
	"github.com/dosanma1/forge-deploy/internal/pipeline"
)

// Plugin runs a deployer in the deploy stage for one platform's artifacts.
type Plugin struct {
	pipeline.Base
	deployer Deployer
}

// NewPlugin wraps d as a pipeline plugin.
func NewPlugin(name string, d Deployer) *Plugin {
	return &Plugin{
		Base:     pipeline.NewBase(name, config.NewOptions("platform", "android")),
		deployer: d,
	}
}

// PluginFactory returns a pipeline factory for the named deployer.
func PluginFactory(deployerName string, ex executor.Runner) (pipeline.Factory, error) {
	factory, ok := deployers[deployerName]
	if !ok {
		return nil, fmt.Errorf("unknown deployer: %s", deployerName)
	}
	return func(name string) pipeline.Plugin {
		return NewPlugin(name, factory(ex))
	}, nil
}

// Configure implements pipeline.Configurer. appId is required.
func (p *Plugin) Configure(opts config.Options) error {
	if err := p.Base.Configure(opts); err != nil {
		return err
	}
	if p.ReadString("appId") == "" {
		return fmt.Errorf("plugin %q: appId is required", p.Name())
	}
	return nil
}

// Deploy implements pipeline.DeployHook.
func (p *Plugin) Deploy(ctx context.Context, pctx *pipeline.Context) (*pipeline.Delta, error) {
	if !p.Enabled() {
		return nil, nil
	}

	platform := p.ReadString("platform")
	artifacts := pctx.Artifacts(platform)
	if len(artifacts) == 0 {
		p.Log(pctx, fmt.Sprintf("No %s artifacts to deploy", platform), pipeline.LogOptions{Color: pipeline.ColorRed})
		return nil, nil
	}

	opts := &DeployOptions{
		Name:        p.Name(),
		Artifacts:   artifacts,
		Options:     p.options(),
		ProjectRoot: pctx.Project.Root,
		Verbose:     pctx.CommandOptions.Verbose,
	}
	if pctx.UI != nil {
		opts.Output = pctx.UI.Writer()
	}

	p.Log(pctx, fmt.Sprintf("Deploying %d %s artifact(s) with %s", len(artifacts), platform, p.deployer.Name()), pipeline.LogOptions{})
	uploaded, err := p.deployer.Deploy(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &pipeline.Delta{
		Deployments: map[string][]string{p.Name(): uploaded},
	}, nil
}

func (p *Plugin) options() map[string]any {
	out := map[string]any{}
	for _, opt := range p.PluginConfig() {
		out[opt.Key] = opt.Value
	}
	return out
}
