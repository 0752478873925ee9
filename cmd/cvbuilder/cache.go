package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/draftcache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the local draft cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached keys",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the draft, builder mode and AI insights",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove expired entries",
	Args:  cobra.NoArgs,
	RunE:  runCachePurge,
}

var cacheClearSuggestions bool

var suggestionKinds = []draftcache.SuggestionKind{
	draftcache.SuggestJobTitles,
	draftcache.SuggestCompanies,
	draftcache.SuggestLocations,
	draftcache.SuggestSkills,
}

func init() {
	cacheClearCmd.Flags().BoolVar(&cacheClearSuggestions, "suggestions", false, "Also forget typing suggestions")
	cacheCmd.AddCommand(cacheListCmd, cacheClearCmd, cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	keys, err := store.Keys()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cache: %s\n", store.Path())
	if len(keys) == 0 {
		fmt.Fprintln(out, "  (empty)")
	}
	for _, k := range keys {
		fmt.Fprintf(out, "  %s\n", k)
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	keys := []string{draftcache.DraftKey, draftcache.ModeKey, draftcache.InsightsKey}
	if cacheClearSuggestions {
		for _, k := range suggestionKinds {
			keys = append(keys, draftcache.SuggestionKey(k))
		}
	}
	var errs []error
	for _, k := range keys {
		if err := store.Remove(k); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
	return nil
}

func runCachePurge(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Purge()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired entries.\n", n)
	return nil
}
