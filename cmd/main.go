package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/senyabanana/records-browser/internal/db"
	"github.com/senyabanana/records-browser/internal/repository"
	"github.com/senyabanana/records-browser/internal/router/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	configPath string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "records-browser",
	Short: "Просмотр записей о госзакупках (OCDS) с фильтрами и постраничной навигацией",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("cannot load config: %w", err)
		}

		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		zapConfig := zap.NewProductionConfig()
		zapConfig.Level = level
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "каталог с файлом app.env")
	rootCmd.AddCommand(serveCmd, fetchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRecordsRepository собирает репозиторий записей: клиент API с
// ограничением частоты и, если задан POSTGRES_CONN, кэш снимков в Postgres.
// Возвращаемая функция освобождает ресурсы.
func newRecordsRepository(ctx context.Context) (repository.RecordsRepository, func(), error) {
	limit := rate.Inf
	if cfg.RecordsAPIRPS > 0 {
		limit = rate.Limit(cfg.RecordsAPIRPS)
	}
	client := &http.Client{Timeout: cfg.RecordsAPITimeout}
	api := repository.NewAPIRecordsRepository(cfg.RecordsAPIURL, client, rate.NewLimiter(limit, cfg.RecordsAPIBurst))

	if !cfg.CacheEnabled() {
		logger.Info("snapshot cache disabled, POSTGRES_CONN is not set")
		return api, func() {}, nil
	}

	if err := db.RunMigrations(cfg.MigrationURL, cfg.PostgresConn); err != nil {
		return nil, nil, err
	}
	logger.Info("db migrated successfully")

	dbPool, err := db.InitDb(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing database: %w", err)
	}

	snapshots := repository.NewPostgresSnapshotRepository(dbPool)
	cached := repository.NewCachedRecordsRepository(api, snapshots, cfg.CacheTTL, logger)
	return cached, dbPool.Close, nil
}
