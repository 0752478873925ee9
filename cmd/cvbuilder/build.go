package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/cv-builder/internal/draftcache"
	"github.com/jonathan/cv-builder/internal/enhance"
	"github.com/jonathan/cv-builder/internal/tui"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/wizard"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build your CV step by step in the terminal",
	Long: `Opens the interactive CV wizard. The draft is saved after every change and
restored on the next run. Use --continue to resume the last builder mode or
--select to choose again.`,
	RunE: runBuild,
}

var (
	buildContinue bool
	buildSelect   bool
	buildQuery    string
	buildLocal    bool
	buildStyle    string
	buildEphem    bool
)

func init() {
	buildCmd.Flags().BoolVar(&buildContinue, "continue", false, "Resume the cached builder mode")
	buildCmd.Flags().BoolVar(&buildSelect, "select", false, "Show the mode selector and forget the cached mode")
	buildCmd.Flags().StringVar(&buildQuery, "query", "", "Mount parameters as a query string, e.g. continue=true")
	buildCmd.Flags().BoolVar(&buildLocal, "local", false, "Enhance with the local Gemini model instead of the API")
	buildCmd.Flags().StringVar(&buildStyle, "style", "", "Preview style (dark, light, notty); default follows the terminal")
	buildCmd.Flags().BoolVar(&buildEphem, "ephemeral", false, "Keep the draft in memory only; nothing is read from or written to the cache")
	rootCmd.AddCommand(buildCmd)
}

// mountOptions merges --query with the explicit flags; either source can set a flag.
func mountOptions() (wizard.MountOptions, error) {
	opts := wizard.MountOptions{Continue: buildContinue, Select: buildSelect}
	if buildQuery == "" {
		return opts, nil
	}
	q, _, err := wizard.ParseMountQuery(buildQuery)
	if err != nil {
		return opts, fmt.Errorf("invalid --query: %w", err)
	}
	opts.Continue = opts.Continue || q.Continue
	opts.Select = opts.Select || q.Select
	return opts, nil
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := mountOptions()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var store draftcache.Store
	cachePath := "memory"
	if buildEphem {
		store = draftcache.NewMemoryStore(nil)
	} else {
		sq, err := openCache(cfg)
		if err != nil {
			return err
		}
		store, cachePath = sq, sq.Path()
	}
	defer store.Close()

	sessionCfg := wizard.SessionConfig{Store: store, Logger: logger}
	enh, closeEnh, err := newEnhancer(ctx, cfg, logger, buildLocal)
	if err != nil {
		return err
	}
	defer closeEnh()
	if enh != nil {
		sessionCfg.Bridge = enhance.NewBridge(enh, enhance.WithInsightsCache(store), enhance.WithLogger(logger))
	} else {
		logger.Info("enhancement disabled: no API token or Gemini key configured")
	}

	session, err := wizard.Mount(sessionCfg, opts)
	if err != nil {
		return fmt.Errorf("failed to start wizard: %w", err)
	}
	defer session.Close()

	logger.Info("wizard started",
		zap.String("cache", cachePath),
		zap.Bool("continue", opts.Continue),
		zap.Bool("select", opts.Select))

	return tui.Run(ctx, session, tui.Options{
		Logger:       logger,
		DefaultMode:  types.BuilderMode(cfg.DefaultMode),
		PreviewStyle: buildStyle,
	})
}
