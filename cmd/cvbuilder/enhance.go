package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/draftcache"
	"github.com/jonathan/cv-builder/internal/enhance"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance [cv.json]",
	Short: "Polish a CV with AI",
	Long: `Sends a CV (or the cached draft) for enhancement. The enhanced document is
written to --out, or to stdout when a file was given. Without a file the cached
draft is replaced. A response that drops certifications is rejected and nothing
is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEnhance,
}

var (
	enhanceOut   string
	enhanceLocal bool
	enhanceMode  string
)

func init() {
	enhanceCmd.Flags().StringVarP(&enhanceOut, "out", "o", "", "Write the enhanced CV JSON to this file")
	enhanceCmd.Flags().BoolVar(&enhanceLocal, "local", false, "Use the local Gemini model instead of the API")
	enhanceCmd.Flags().StringVar(&enhanceMode, "mode", "", "Builder mode guidance: manual or ai-interview (default from config)")
	rootCmd.AddCommand(enhanceCmd)
}

func runEnhance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mode := enhanceMode
	if mode == "" {
		mode = cfg.DefaultMode
	}
	builderMode, err := types.ParseBuilderMode(mode)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cv, err := loadCV(cfg, args)
	if err != nil {
		return err
	}

	enh, closeEnh, err := newEnhancer(ctx, cfg, logger, enhanceLocal)
	if err != nil {
		return err
	}
	defer closeEnh()
	if enh == nil {
		return errNoEnhancer
	}

	res, err := enhance.NewBridge(enh, enhance.WithLogger(logger)).Enhance(ctx, cv, builderMode)
	if err != nil {
		msg, _ := enhance.Notification(err)
		return fmt.Errorf("%s: %w", msg, err)
	}

	toStdout := enhanceOut == "" && len(args) > 0
	status := cmd.OutOrStdout()
	if toStdout {
		status = cmd.ErrOrStderr()
	}
	observability.NewPrinter(status).PrintEnhancement(res)

	data, err := rendering.RenderJSON(res.CV)
	if err != nil {
		return err
	}
	switch {
	case enhanceOut != "":
		if err := os.WriteFile(enhanceOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write enhanced CV: %w", err)
		}
		fmt.Fprintf(status, "Wrote %s\n", enhanceOut)
	case toStdout:
		_, err = cmd.OutOrStdout().Write(data)
		return err
	default:
		return saveDraft(cfg, res.CV)
	}
	return nil
}

// saveDraft replaces the cached draft, as an accepted wizard enhancement does.
func saveDraft(cfg *config.Config, cv *types.CVData) error {
	store, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Set(draftcache.DraftKey, cv, draftcache.Options{ExpiresIn: draftcache.DraftTTL}); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	if in, ok := cv.AIInsights.Get(); ok {
		if err := store.Set(draftcache.InsightsKey, in, draftcache.Options{ExpiresIn: draftcache.InsightsTTL}); err != nil {
			return fmt.Errorf("failed to save insights: %w", err)
		}
	}
	return nil
}
