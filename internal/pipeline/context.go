// Package pipeline runs deploy plugins through the lifecycle stages
// setup, build, didBuild and deploy, threading a shared Context through them.
package pipeline

import (
	"slices"

	"github.com/google/uuid"

	"github.com/dosanma1/forge-deploy/internal/ui"
)

// Project describes the web project being deployed.
type Project struct {
	Name string `json:"name"`
	Root string `json:"root"`
}

// CommandOptions carries CLI flags visible to plugins.
type CommandOptions struct {
	Verbose bool `json:"verbose"`
}

// Context is the shared record passed to every hook. Hooks must treat it as
// read-only and report changes through a Delta; the Runner folds deltas in.
type Context struct {
	RunID          string         `json:"runId"`
	DistDir        string         `json:"distDir"`
	Project        Project        `json:"project"`
	CommandOptions CommandOptions `json:"commandOptions"`

	// Corber maps a platform to the native build artifacts produced for it.
	Corber map[string][]string `json:"corber,omitempty"`

	// Deployments maps a deploy plugin name to what it published.
	Deployments map[string][]string `json:"deployments,omitempty"`

	UI *ui.UI `json:"-"`
}

// NewContext creates a context with a fresh run ID.
func NewContext(project Project, distDir string, u *ui.UI, opts CommandOptions) *Context {
	if u == nil {
		u = ui.Discard()
	}
	return &Context{
		RunID:          uuid.NewString(),
		DistDir:        distDir,
		Project:        project,
		CommandOptions: opts,
		UI:             u,
	}
}

// Delta is the partial context a hook returns.
type Delta struct {
	DistDir     string
	Corber      map[string][]string
	Deployments map[string][]string
}

// Apply folds a delta into the context. Platform and deployment keys are
// replaced wholesale: hooks return the complete merged list for a key.
func (c *Context) Apply(d *Delta) {
	if d == nil {
		return
	}

	if d.DistDir != "" {
		c.DistDir = d.DistDir
	}

	for platform, artifacts := range d.Corber {
		if c.Corber == nil {
			c.Corber = make(map[string][]string)
		}
		c.Corber[platform] = slices.Clone(artifacts)
	}

	for name, published := range d.Deployments {
		if c.Deployments == nil {
			c.Deployments = make(map[string][]string)
		}
		c.Deployments[name] = slices.Clone(published)
	}
}

// Artifacts returns a copy of the artifacts recorded for platform.
func (c *Context) Artifacts(platform string) []string {
	return slices.Clone(c.Corber[platform])
}
