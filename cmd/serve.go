package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/senyabanana/records-browser/internal/browser"
	"github.com/senyabanana/records-browser/internal/handlers"
	"github.com/senyabanana/records-browser/internal/router"
	"github.com/senyabanana/records-browser/internal/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP-сервер",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := newRecordsRepository(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	recordsService := services.NewRecordsService(repo)

	sessions := browser.NewSessionStore(cfg.SessionTTL, func() *browser.Controller {
		return browser.NewController(recordsService, logger.Named("browser"), cfg.DefaultPageSize)
	})
	go sessions.Run(ctx, cfg.SessionSweepInterval())

	recordsHandler := handlers.NewRecordsHandler(recordsService, logger, cfg.RecordsAPITimeout, cfg.DefaultPageSize)
	browserHandler := handlers.NewBrowserHandler(sessions, logger, cfg.SessionTTL)

	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router.InitRoutes(recordsHandler, browserHandler, cfg.AllowedOrigins()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server is listening", zap.String("address", cfg.ServerAddress))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
