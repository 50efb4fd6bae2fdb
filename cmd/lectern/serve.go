package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/lectern-dev/lectern/internal/portal"
	"github.com/lectern-dev/lectern/internal/resources"
)

func serveCmd() *cobra.Command {
	var (
		addr      string
		dataDir   string
		templates string
		filesDir  string
		s3Bucket  string
		s3Prefix  string
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the portal server",
		Long: `Run the portal HTTP server.

On startup the subject pages are regenerated from the data directory,
then the server listens until interrupted. Files are served from a
local directory by default, or from S3 when --s3-bucket is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := newStore(ctx, filesDir, s3Bucket, s3Prefix)
			if err != nil {
				return err
			}

			cfg := portal.DefaultConfig()
			cfg.Address = addr
			cfg.DataDir = dataDir
			cfg.TemplatesDir = templates

			server := portal.New(cfg, store, portal.WithLogger(logger))
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Listen address")
	cmd.Flags().StringVar(&dataDir, "data", "data", "Subject JSON directory")
	cmd.Flags().StringVar(&templates, "templates", "templates", "Generated page directory")
	cmd.Flags().StringVar(&filesDir, "files", "files", "Local file directory")
	cmd.Flags().StringVar(&s3Bucket, "s3-bucket", "", "Serve files from this S3 bucket instead of --files")
	cmd.Flags().StringVar(&s3Prefix, "s3-prefix", "", "Key prefix within the S3 bucket")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func newStore(ctx context.Context, filesDir, bucket, prefix string) (resources.Store, error) {
	if bucket == "" {
		return resources.NewDirStore(filesDir)
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return resources.NewS3Store(s3.NewFromConfig(cfg), bucket, prefix), nil
}
