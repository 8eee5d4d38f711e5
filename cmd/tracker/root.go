package main

import (
	"github.com/jobkeeper/application-tracker/internal/config"
	"github.com/jobkeeper/application-tracker/internal/store"
	"github.com/jobkeeper/application-tracker/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "tracker follows job applications from inbox to offer.",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}

// setupLogging installs the global logger at the configured level and
// returns the teardown for a deferred call.
func setupLogging(cfg *config.Config) func() {
	logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
	undo := zap.ReplaceGlobals(logger)
	return func() {
		_ = logger.Sync()
		undo()
	}
}

// openStore connects to the database and runs the schema migration.
func openStore(cfg *config.Config) (store.Store, error) {
	db, err := store.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	s := store.NewStore(db)
	if err := s.InitialMigration(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}
