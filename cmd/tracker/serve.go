package main

import (
	"fmt"
	"net"
	"os/signal"
	"syscall"

	apiserver "github.com/jobkeeper/application-tracker/internal/api_server"
	"github.com/jobkeeper/application-tracker/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}

		cleanup := setupLogging(cfg)
		defer cleanup()

		s, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("initializing data store: %w", err)
		}
		defer s.Close()

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		listener, err := net.Listen("tcp", cfg.Service.Address)
		if err != nil {
			return fmt.Errorf("creating listener: %w", err)
		}

		zap.S().Infof("serving dashboard on %s", cfg.Service.Address)
		return apiserver.New(cfg, s, listener).Run(ctx)
	},
}
