package main

import (
	"fmt"

	"github.com/jobkeeper/application-tracker/internal/classifier"
	"github.com/jobkeeper/application-tracker/internal/config"
	"github.com/jobkeeper/application-tracker/internal/dedup"
	"github.com/jobkeeper/application-tracker/internal/graph"
	"github.com/jobkeeper/application-tracker/internal/pipeline"
	"github.com/jobkeeper/application-tracker/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncSinceDays int

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync emails from the inbox into the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}

		cleanup := setupLogging(cfg)
		defer cleanup()

		sinceDays := syncSinceDays
		if sinceDays <= 0 {
			sinceDays = cfg.Service.SyncDays
		}
		zap.S().Infof("starting sync for last %d days", sinceDays)

		s, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("initializing data store: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		ingestion := service.NewIngestionService(
			s,
			classifier.New(),
			dedup.NewMatcher(s, cfg.Service.MergeWindowDays),
			pipeline.New(nil),
			graph.NewClient(ctx, cfg),
		)

		result, err := ingestion.Sync(ctx, sinceDays)
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			return err
		}

		fmt.Printf("[OK] Authenticated as: %s\n", result.User)
		fmt.Printf("[OK] Fetched %d messages\n", result.Fetched)
		fmt.Println("\n[OK] Sync complete:")
		fmt.Printf("  Processed: %d emails\n", result.Processed)
		fmt.Printf("  Skipped: %d emails\n", result.Skipped)
		return nil
	},
}

func init() {
	syncCmd.Flags().IntVar(&syncSinceDays, "since-days", 0, "Days of mail to sync (default from configuration)")
}
