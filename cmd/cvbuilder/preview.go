package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/rendering"
)

var previewCmd = &cobra.Command{
	Use:   "preview [cv.json]",
	Short: "Render a CV in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPreview,
}

var (
	previewStyle    string
	previewWidth    int
	previewMarkdown bool
	previewInsights bool
)

func init() {
	previewCmd.Flags().StringVar(&previewStyle, "style", "", "Glamour style (dark, light, notty, ...); default follows the terminal")
	previewCmd.Flags().IntVar(&previewWidth, "width", rendering.DefaultWrapWidth, "Wrap width")
	previewCmd.Flags().BoolVar(&previewMarkdown, "markdown", false, "Print the raw Markdown instead of rendering it")
	previewCmd.Flags().BoolVar(&previewInsights, "insights", false, "Also print the AI insights, when present")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cv, err := loadCV(cfg, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if previewMarkdown {
		fmt.Fprint(out, rendering.RenderMarkdown(cv))
	} else {
		text, err := rendering.RenderTerminal(cv, rendering.TerminalOptions{Width: previewWidth, Style: previewStyle})
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
	}

	if previewInsights {
		if in, ok := cv.AIInsights.Get(); ok {
			observability.NewPrinter(out).PrintInsights(&in)
		}
	}
	return nil
}
