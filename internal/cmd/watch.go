package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dosanma1/forge-deploy/internal/daemon"
	"github.com/dosanma1/forge-deploy/internal/fsutil"
	"github.com/dosanma1/forge-deploy/internal/pipeline"
	"github.com/dosanma1/forge-deploy/internal/ui"
)

var (
	watchDeploy  bool
	watchDistDir string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-package the web bundle whenever it changes",
	Long: `Watch the dist directory and run setup and didBuild after every change.
Runs never overlap. Use --deploy to publish each new package as well.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchDeploy, "deploy", false, "Also run the deploy stage after each rebuild")
	watchCmd.Flags().StringVar(&watchDistDir, "dist-dir", "", "Directory to watch (overrides distDir)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	fs := fsutil.NewOS()
	plugins, err := s.plugins(fs, nil)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(plugins...)
	distDir := s.resolver.ResolveDistDir(watchDistDir)

	w, err := daemon.NewWatcher(daemon.DefaultWatcherConfig(distDir))
	if err != nil {
		return err
	}
	if err := w.Start(cmd.Context()); err != nil {
		return err
	}
	defer w.Stop()

	s.ui.WriteLine("👀 Watching %s (ctrl+c to stop)", distDir)

	daemon.Serve(cmd.Context(), w, func(ctx context.Context, batch daemon.Batch) error {
		s.ui.Logger().Debug("change detected", "paths", strings.Join(batch.Paths(), ","))
		// the bundler clears dist before writing it again
		if ok, err := fs.Exists(distDir); err != nil || !ok {
			s.ui.Logger().Debug("dist directory missing, waiting for rebuild", "dir", distDir)
			return err
		}
		pctx := s.newContext(distDir)
		if err := runner.Run(ctx, pctx, watchStages(watchDeploy)...); err != nil {
			return err
		}
		printArtifacts(s.ui, pctx)
		s.ui.WriteLine("%s", ui.Success("Rebuilt"))
		return nil
	}, func(err error) {
		s.ui.Logger().Error("watch run failed", "error", err)
	})

	return nil
}

func watchStages(deploy bool) []pipeline.Stage {
	stages := []pipeline.Stage{pipeline.StageSetup, pipeline.StageDidBuild}
	if deploy {
		stages = append(stages, pipeline.StageDeploy)
	}
	return stages
}
