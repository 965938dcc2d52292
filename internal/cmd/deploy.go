package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dosanma1/forge-deploy/internal/pipeline"
	"github.com/dosanma1/forge-deploy/internal/ui"
	"github.com/dosanma1/forge-deploy/pkg/xos"
)

var (
	deploySkipBuild  bool
	deployDistDir    string
	deployContextOut string
	deployOnly       []string
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Run the full pipeline: setup, build, didBuild and deploy",
	Long: `Run every configured plugin through the pipeline stages.

Examples:
  forge-deploy deploy                          # build, package and publish
  forge-deploy deploy --skip-build             # package an existing dist directory
  forge-deploy deploy --only corber            # run only the corber plugin
  forge-deploy deploy --context-out out.json   # save the final pipeline context`,
	Args: cobra.NoArgs,
	RunE: runDeploy,
}

func init() {
	deployCmd.Flags().BoolVar(&deploySkipBuild, "skip-build", false, "Skip the build stage and use the existing dist directory")
	deployCmd.Flags().StringVar(&deployDistDir, "dist-dir", "", "Framework build output directory (overrides distDir)")
	deployCmd.Flags().StringVar(&deployContextOut, "context-out", "", "Write the final pipeline context as JSON to this file")
	deployCmd.Flags().StringSliceVar(&deployOnly, "only", nil, "Run only these plugins (comma-separated names)")
}

func runDeploy(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	fs, done := s.stagingFS()
	plugins, err := s.plugins(fs, deployOnly)
	if err != nil {
		return err
	}

	pctx := s.newContext(s.resolver.ResolveDistDir(deployDistDir))
	s.ui.WriteLine("%s Deploying %s", ui.IconRocket, s.cfg.Project.Name)
	s.ui.Logger().Debug("pipeline starting", "run", pctx.RunID, "plugins", len(plugins))

	err = pipeline.NewRunner(plugins...).Run(cmd.Context(), pctx, deployStages(deploySkipBuild)...)
	done()
	if err != nil {
		s.ui.WriteLine("%s", ui.Failure("Deploy failed"))
		return err
	}

	printArtifacts(s.ui, pctx)

	if deployContextOut != "" {
		if err := xos.WriteJSON(deployContextOut, pctx, 0o644); err != nil {
			return fmt.Errorf("failed to write context: %w", err)
		}
		s.ui.Logger().Debug("context written", "path", deployContextOut)
	}

	s.ui.WriteLine("%s", ui.Success("Deploy completed"))
	return nil
}

func deployStages(skipBuild bool) []pipeline.Stage {
	stages := make([]pipeline.Stage, 0, len(pipeline.DefaultStages))
	for _, stage := range pipeline.DefaultStages {
		if skipBuild && stage == pipeline.StageBuild {
			continue
		}
		stages = append(stages, stage)
	}
	return stages
}
