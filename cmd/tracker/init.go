package main

import (
	"fmt"
	"path/filepath"

	"github.com/jobkeeper/application-tracker/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the application database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}

		cleanup := setupLogging(cfg)
		defer cleanup()

		zap.S().Info("Initializing database...")

		s, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("initializing data store: %w", err)
		}
		defer s.Close()

		fmt.Println("[OK] Database initialized successfully")
		if cfg.Database.Type == "sqlite" {
			if abs, err := filepath.Abs(cfg.Database.Path); err == nil {
				fmt.Printf("  Location: %s\n", abs)
			}
		}
		return nil
	},
}
