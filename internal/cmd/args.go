package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dosanma1/forge-deploy/internal/corber"
	"github.com/dosanma1/forge-deploy/internal/fsutil"
)

var argsCmd = &cobra.Command{
	Use:   "args [plugin]",
	Short: "Print the corber build arguments each corber plugin would use",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runArgs,
}

func runArgs(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	var only []string
	if len(args) == 1 {
		only = args
	}

	plugins, err := s.plugins(fsutil.NewMemory(), only)
	if err != nil {
		return err
	}

	found := false
	out := cmd.OutOrStdout()
	for _, plugin := range plugins {
		p, ok := plugin.(*corber.Plugin)
		if !ok {
			continue
		}
		found = true
		fmt.Fprintf(out, "%s: %s build %s\n", p.Name(), s.cfg.CorberBin, strings.Join(p.Args(), " "))
	}

	if !found {
		return fmt.Errorf("no corber plugin selected")
	}
	return nil
}
