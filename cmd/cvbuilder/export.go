package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/rendering"
)

var exportCmd = &cobra.Command{
	Use:   "export [cv.json]",
	Short: "Export a CV to PDF, Word, HTML, Markdown, LaTeX or JSON",
	Long: `Renders a CV (or the cached draft) in one or more formats and writes the files
to the export directory. Files are named after the full name, or "CV".

Formats: pdf, doc, docx, print, html, md, tex, json. PDF export needs Chrome or Chromium.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var (
	exportFormats []string
	exportDir     string
	exportAll     bool
)

func init() {
	exportCmd.Flags().StringSliceVarP(&exportFormats, "format", "f", []string{"pdf"}, "Formats to export (repeatable or comma-separated)")
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "", "Output directory (default from config)")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every format")
	rootCmd.AddCommand(exportCmd)
}

func parseFormats() ([]rendering.Format, error) {
	if exportAll {
		return rendering.Formats, nil
	}
	seen := make(map[rendering.Format]bool)
	var out []rendering.Format
	for _, name := range exportFormats {
		f, err := rendering.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no export format given")
	}
	return out, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	formats, err := parseFormats()
	if err != nil {
		return err
	}
	dir := exportDir
	if dir == "" {
		dir = cfg.ExportDir
	}
	cv, err := loadCV(cfg, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	exporter := &rendering.Exporter{
		PDF:           rendering.PDFRenderer{ChromePath: cfg.ChromePath},
		LaTeXTemplate: cfg.Template,
	}
	artifacts, err := exporter.ExportAll(ctx, cv, formats)
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path, err := rendering.WriteArtifact(dir, a)
		if err != nil {
			return err
		}
		paths = append(paths, path)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintArtifacts(paths)
	return nil
}
