package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate [cv.json]",
	Short: "Check a CV against the schema and the wizard's step rules",
	Long: `Validates a CV document (or the cached draft when no file is given) against
the CV schema, then reports which wizard steps would block forward navigation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	printer := observability.NewPrinter(cmd.OutOrStdout())

	cv, err := loadCV(cfg, args)
	if err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			printer.PrintSchemaErrors(ve)
			return fmt.Errorf("schema validation failed with %d error(s)", len(ve.Errors))
		}
		return err
	}

	printer.PrintSectionSummary(cv)
	if failing := printer.PrintGates(cv); failing > 0 {
		return fmt.Errorf("%d step(s) are incomplete", failing)
	}
	return nil
}
