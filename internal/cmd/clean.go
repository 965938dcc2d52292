package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dosanma1/forge-deploy/internal/fsutil"
	"github.com/dosanma1/forge-deploy/internal/pipeline"
	"github.com/dosanma1/forge-deploy/internal/ui"
)

var cleanYes bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove native build output",
	Long: `Run the setup stage of every plugin, which clears native build output
directories so stale packages are never picked up.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Do not ask for confirmation")
}

func runClean(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	if !cleanYes {
		ok, err := ui.AskConfirm("Remove native build output for " + s.cfg.Project.Name)
		if err != nil {
			return err
		}
		if !ok {
			s.ui.WriteLine("Aborted")
			return nil
		}
	}

	plugins, err := s.plugins(fsutil.NewOS(), nil)
	if err != nil {
		return err
	}

	pctx := s.newContext(s.cfg.DistDir)
	if err := pipeline.NewRunner(plugins...).Run(cmd.Context(), pctx, pipeline.StageSetup); err != nil {
		return err
	}

	s.ui.WriteLine("%s", ui.Success("Clean completed"))
	return nil
}
