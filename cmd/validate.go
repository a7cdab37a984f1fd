package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/inktable/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a generated card table",
	Long: `Validate checks that a card table file has the CARDS header and footer, that every
entry line has thirteen values of the right kinds, and reports duplicate names.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tablePath := args[0]
		out := cmd.OutOrStdout()

		// Check if path exists
		if _, err := os.Stat(tablePath); os.IsNotExist(err) {
			return fmt.Errorf("table file not found: %s", tablePath)
		}

		v := validator.NewValidator(tablePath)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			colorize.New(colorize.FgGreen).Fprintf(out, "✅ Table '%s' is valid (%d cards).\n", tablePath, results.Entries)
		} else {
			colorize.New(colorize.FgRed).Fprintf(out, "❌ Table '%s' has %d validation errors:\n", tablePath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				colorize.New(colorize.FgYellow).Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}
