package main

import (
	"fmt"
	"path/filepath"

	"github.com/jobkeeper/application-tracker/internal/config"
	"github.com/jobkeeper/application-tracker/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}

		cleanup := setupLogging(cfg)
		defer cleanup()

		if exportFormat != "xlsx" {
			fmt.Println("[ERROR] Only xlsx format is currently supported")
			return fmt.Errorf("unsupported export format: %s", exportFormat)
		}

		output := exportOutput
		if output == "" {
			output = cfg.Service.ExportPath
		}
		zap.S().Infof("exporting to %s", output)

		s, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("initializing data store: %w", err)
		}
		defer s.Close()

		result, err := service.NewExportService(s).ExportXLSX(cmd.Context(), output)
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			return err
		}

		path := result.Path
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		fmt.Printf("[OK] Exported to: %s\n", path)
		fmt.Printf("  Applications: %d\n", result.Applications)
		fmt.Printf("  Events: %d\n", result.Events)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "xlsx", "Export format")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Output path (default from configuration)")
}
