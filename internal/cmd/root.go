// Package cmd implements the forge-deploy command line.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "forge-deploy",
	Short: "Forge Deploy - package web builds into native apps and ship them",
	Long: `Forge Deploy runs a plugin pipeline over your web project:
setup, build, didBuild and deploy.

The corber plugin stages the framework build into a Cordova project, runs
the native build and records the produced packages, which deploy plugins
then publish.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, cancelled on shutdown.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to forge-deploy.yaml (default: search from the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")

	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(argsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(watchCmd)
}
