package main

import (
	"fmt"
	"os"

	"github.com/jobkeeper/application-tracker/internal/config"
	"github.com/jobkeeper/application-tracker/internal/dedup"
	"github.com/jobkeeper/application-tracker/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import applications from a CSV or JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}

		cleanup := setupLogging(cfg)
		defer cleanup()

		if _, err := os.Stat(importFile); err != nil {
			fmt.Printf("[ERROR] File not found: %s\n", importFile)
			return err
		}

		zap.S().Infof("importing from %s", importFile)

		s, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("initializing data store: %w", err)
		}
		defer s.Close()

		importer := service.NewImportService(s, dedup.NewMatcher(s, cfg.Service.MergeWindowDays), cfg.Location())
		result, err := importer.ImportFile(cmd.Context(), importFile)
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			return err
		}

		fmt.Printf("[OK] Loaded %d entries from file\n", result.Loaded)
		fmt.Println("\n[OK] Import complete:")
		fmt.Printf("  Imported: %d new applications\n", result.Imported)
		fmt.Printf("  Merged: %d existing applications\n", result.Merged)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "File to import")
	_ = importCmd.MarkFlagRequired("file")
}
