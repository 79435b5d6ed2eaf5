package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/meur/shortbox/internal/api"
	"github.com/meur/shortbox/internal/config"
	"github.com/meur/shortbox/internal/metrics"
	"github.com/meur/shortbox/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the collection web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides config")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	// A nil repo keeps the service unconfigured; the page still renders.
	var repo service.Repository
	if cfg.Configured() {
		store, err := openStore(cfg)
		if err != nil {
			logger.Warn("store unavailable, serving unconfigured", zap.Error(err))
		} else {
			defer store.Close()
			repo = store
			logger.Info("store ready",
				zap.String("driver", store.Driver()),
				zap.String("user_id", cfg.UserID),
			)
		}
	} else {
		logger.Warn("DB_DSN or SHORTBOX_USER_ID missing, serving unconfigured")
	}

	svc := service.New(repo, cfg.UserID, cfg.Refetch, logger.Named("service"), m)
	handler := api.New(svc, api.Options{
		Logger:         logger.Named("http"),
		Metrics:        m,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("shortbox listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
