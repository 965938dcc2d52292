package deployer

import (
	"context"
	"fmt"
	"strings"

	"github.com/dosanma1/forge-deploy/internal/builder"
	"github.com/dosanma1/forge-deploy/internal/executor"
	"github.com/dosanma1/forge-deploy/internal/pipeline"
)

// FirebaseAppDistribution uploads native packages to Firebase App
// Distribution with the firebase CLI
type FirebaseAppDistribution struct {
	exec executor.Runner
}

// NewFirebaseAppDistribution creates a new App Distribution deployer
func NewFirebaseAppDistribution(ex executor.Runner) *FirebaseAppDistribution {
	return &FirebaseAppDistribution{exec: ex}
}

// Name returns the deployer identifier
func (d *FirebaseAppDistribution) Name() string {
	return "firebase-appdistribution"
}

// Deploy uploads every artifact in order and stops at the first failure.
func (d *FirebaseAppDistribution) Deploy(ctx context.Context, opts *DeployOptions) ([]string, error) {
	appID, _ := opts.Options["appId"].(string)
	if appID == "" {
		return nil, fmt.Errorf("firebase-appdistribution requires 'appId' in options for %q", opts.Name)
	}

	uploaded := make([]string, 0, len(opts.Artifacts))
	for _, artifact := range opts.Artifacts {
		if t := builder.ClassifyArtifact(artifact); t == builder.ArtifactTypeStatic {
			return uploaded, fmt.Errorf("firebase app distribution requires a packaged app, got %s", artifact)
		}

		args := distributeArgs(artifact, appID, opts.Options)
		if opts.Verbose {
			fmt.Fprintf(opts.output(), "   Running: firebase %s\n", strings.Join(args, " "))
		}

		err := d.exec.Run(ctx, executor.Command{
			Program: "firebase",
			Args:    args,
			Dir:     opts.ProjectRoot,
			Env:     opts.Env,
			Stdout:  opts.output(),
			Stderr:  opts.output(),
		})
		if err != nil {
			return uploaded, fmt.Errorf("firebase appdistribution:distribute %s failed: %w", artifact, err)
		}
		uploaded = append(uploaded, artifact)
	}

	return uploaded, nil
}

func distributeArgs(artifact, appID string, options map[string]any) []string {
	args := []string{"appdistribution:distribute", artifact, "--app", appID}

	if groups := pipeline.StringList(options["groups"]); len(groups) > 0 {
		args = append(args, "--groups", strings.Join(groups, ","))
	}
	if notes, ok := options["releaseNotes"].(string); ok && notes != "" {
		args = append(args, "--release-notes", notes)
	}
	if project, ok := options["project"].(string); ok && project != "" {
		args = append(args, "--project", project)
	}

	return args
}
