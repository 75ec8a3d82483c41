package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dealdeck/dealdeck/internal/config"
	"github.com/dealdeck/dealdeck/internal/database"
	"github.com/dealdeck/dealdeck/internal/logging"
	"github.com/dealdeck/dealdeck/internal/seed"
)

func seedCmd() *cobra.Command {
	var (
		csvPath  string
		s3Bucket string
		s3Key    string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import the hotel-deals feed from CSV",
		Long: `Import feed rows into the database from a local CSV file or an
object in S3. Hotels are upserted by name and already-imported deals
are skipped, so re-running the same feed is safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (csvPath == "") == (s3Bucket == "") {
				return fmt.Errorf("exactly one of --csv or --s3-bucket is required")
			}
			if s3Bucket != "" && s3Key == "" {
				return fmt.Errorf("--s3-key is required with --s3-bucket")
			}
			return runSeed(cmd.Context(), csvPath, s3Bucket, s3Key)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to a local feed CSV")
	cmd.Flags().StringVar(&s3Bucket, "s3-bucket", "", "S3 bucket holding the feed")
	cmd.Flags().StringVar(&s3Key, "s3-key", "", "S3 object key of the feed CSV")
	return cmd
}

func runSeed(ctx context.Context, csvPath, s3Bucket, s3Key string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	var feed io.ReadCloser
	if csvPath != "" {
		feed, err = os.Open(csvPath)
		if err != nil {
			return fmt.Errorf("failed to open feed: %w", err)
		}
	} else {
		client, err := seed.NewS3Client(ctx, cfg.S3Region)
		if err != nil {
			return err
		}
		feed, err = seed.OpenS3(ctx, client, s3Bucket, s3Key)
		if err != nil {
			return err
		}
	}
	defer feed.Close()

	importer := seed.NewImporter(database.NewHotelRepo(pool), database.NewDealRepo(pool))
	result, err := importer.ImportCSV(ctx, feed)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d deals (%d skipped)\n", result.Imported, result.Skipped)
	return nil
}
