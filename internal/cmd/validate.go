package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dosanma1/forge-deploy/internal/config"
	"github.com/dosanma1/forge-deploy/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate forge-deploy.yaml",
	Long: `Validates forge-deploy.yaml against its JSON Schema and checks plugin
declarations (unique kebab-case names, known structure).`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, err := findConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "🔍 Validating %s...\n", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", config.FileName, err)
	}

	var validationErr *config.ValidationError
	if err := config.ValidateSchema(config.ExpandEnv(data)); err != nil {
		if errors.As(err, &validationErr) {
			fmt.Fprintln(out, ui.Failure(config.FileName+" has validation errors:"))
			for _, problem := range validationErr.Problems {
				fmt.Fprintf(out, "  - %s\n", problem)
			}
		}
		return err
	}

	if _, err := config.Load(path); err != nil {
		return err
	}

	fmt.Fprintln(out, ui.Success(config.FileName+" is valid!"))
	return nil
}
