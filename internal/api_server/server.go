package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jobkeeper/application-tracker/internal/config"
	handlers "github.com/jobkeeper/application-tracker/internal/handlers/v1alpha1"
	"github.com/jobkeeper/application-tracker/internal/store"
	"github.com/jobkeeper/application-tracker/pkg/metrics"
	"github.com/jobkeeper/application-tracker/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

// Server exposes the read-only dashboard API over the ledger.
type Server struct {
	cfg      *config.Config
	store    store.Store
	listener net.Listener
}

func New(cfg *config.Config, store store.Store, listener net.Listener) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		listener: listener,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			MaxAge:         300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	handlers.NewHandler(s.store).RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler())

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}
