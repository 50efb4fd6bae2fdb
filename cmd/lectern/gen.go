package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lectern-dev/lectern/internal/catalog"
	"github.com/lectern-dev/lectern/internal/resources"
)

func genCmd() *cobra.Command {
	var (
		dataDir   string
		templates string
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate subject pages from the data directory",
		Long: `Generate one HTML fragment per subject JSON file.

Output files that already match are left untouched, so unchanged
subjects keep their modification times.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}

			g := &catalog.Generator{
				DataDir:      dataDir,
				TemplatesDir: templates,
				Logger:       logger,
			}
			stats, err := g.Run()
			if err != nil {
				return err
			}

			success("generated subject pages")
			info("written:   %d", stats.Written)
			info("updated:   %d", stats.Updated)
			info("unchanged: %d", stats.Unchanged)
			if stats.Skipped > 0 {
				info("skipped:   %d (invalid data files)", stats.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "data", "Subject JSON directory")
	cmd.Flags().StringVar(&templates, "templates", "templates", "Generated page directory")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}

func repairCmd() *cobra.Command {
	var (
		templates string
		filesDir  string
		s3Bucket  string
		s3Prefix  string
		dryRun    bool
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Rewrite broken file links in generated pages",
		Long: `Scan the generated pages for PDF links whose files no longer
exist under those names, and rewrite them to the closest match in the
file store. Useful after files are re-uploaded under new batch names.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := newStore(ctx, filesDir, s3Bucket, s3Prefix)
			if err != nil {
				return err
			}
			repairer := resources.NewRepairer(store, logger)

			pages, err := filepath.Glob(filepath.Join(templates, "*.html"))
			if err != nil {
				return err
			}
			sort.Strings(pages)

			total := 0
			for _, page := range pages {
				n, err := repairPage(ctx, repairer, page, dryRun)
				if err != nil {
					return err
				}
				if n > 0 {
					info("%s: %d link(s) rewritten", filepath.Base(page), n)
				}
				total += n
			}
			success("repaired %d link(s) across %d page(s)", total, len(pages))
			return nil
		},
	}

	cmd.Flags().StringVar(&templates, "templates", "templates", "Generated page directory")
	cmd.Flags().StringVar(&filesDir, "files", "files", "Local file directory")
	cmd.Flags().StringVar(&s3Bucket, "s3-bucket", "", "Check files in this S3 bucket instead of --files")
	cmd.Flags().StringVar(&s3Prefix, "s3-prefix", "", "Key prefix within the S3 bucket")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report rewrites without writing files")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}

func repairPage(ctx context.Context, repairer *resources.Repairer, page string, dryRun bool) (int, error) {
	content, err := os.ReadFile(page)
	if err != nil {
		return 0, err
	}
	repaired, n, err := repairer.RepairHTML(ctx, string(content))
	if err != nil {
		return 0, err
	}
	if n == 0 || dryRun {
		return n, nil
	}
	if err := os.WriteFile(page, []byte(repaired), 0o644); err != nil {
		return 0, err
	}
	return n, nil
}
