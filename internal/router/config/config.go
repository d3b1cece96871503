package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config - структура для хранения конфигураций приложения
type Config struct {
	ServerAddress      string        `mapstructure:"SERVER_ADDRESS"`
	RecordsAPIURL      string        `mapstructure:"RECORDS_API_URL"`
	RecordsAPITimeout  time.Duration `mapstructure:"RECORDS_API_TIMEOUT"`
	RecordsAPIRPS      float64       `mapstructure:"RECORDS_API_RPS"`
	RecordsAPIBurst    int           `mapstructure:"RECORDS_API_BURST"`
	DefaultPageSize    int           `mapstructure:"DEFAULT_PAGE_SIZE"`
	PostgresConn       string        `mapstructure:"POSTGRES_CONN"`
	MigrationURL       string        `mapstructure:"MIGRATION_URL"`
	CacheTTL           time.Duration `mapstructure:"CACHE_TTL"`
	SessionTTL         time.Duration `mapstructure:"SESSION_TTL"`
	CORSAllowedOrigins string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
}

// Значения по умолчанию.
var defaults = map[string]any{
	"SERVER_ADDRESS":       "0.0.0.0:8080",
	"RECORDS_API_URL":      "https://contratacionesabiertas.oece.gob.pe/api/v1/records",
	"RECORDS_API_TIMEOUT":  "30s",
	"RECORDS_API_RPS":      2.0,
	"RECORDS_API_BURST":    4,
	"DEFAULT_PAGE_SIZE":    50,
	"POSTGRES_CONN":        "",
	"MIGRATION_URL":        "file://migrations",
	"CACHE_TTL":            "10m",
	"SESSION_TTL":          "30m",
	"CORS_ALLOWED_ORIGINS": "*",
	"LOG_LEVEL":            "info",
}

// CacheEnabled сообщает, что настроено подключение к базе данных.
func (c Config) CacheEnabled() bool {
	return c.PostgresConn != ""
}

// AllowedOrigins разбирает CORS_ALLOWED_ORIGINS через запятую.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// MinSweepInterval - нижняя граница периода уборки сессий.
const MinSweepInterval = time.Second

// SessionSweepInterval возвращает период уборки сессий: половину
// SESSION_TTL, но не меньше MinSweepInterval.
func (c Config) SessionSweepInterval() time.Duration {
	if interval := c.SessionTTL / 2; interval > MinSweepInterval {
		return interval
	}
	return MinSweepInterval
}

// LoadConfig загружает конфигурацию из файла app.env в каталоге path,
// .env (если есть) и переменных окружения. Переменные окружения имеют
// приоритет над файлом.
func LoadConfig(path string) (cfg Config, err error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate проверяет значения конфигурации.
func (c Config) Validate() error {
	if c.RecordsAPIURL == "" {
		return errors.New("RECORDS_API_URL must be set")
	}
	if c.DefaultPageSize < 1 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be positive, got %d", c.DefaultPageSize)
	}
	if c.RecordsAPIRPS < 0 {
		return fmt.Errorf("RECORDS_API_RPS must not be negative, got %v", c.RecordsAPIRPS)
	}
	if c.RecordsAPIRPS > 0 && c.RecordsAPIBurst < 1 {
		return fmt.Errorf("RECORDS_API_BURST must be at least 1 when RECORDS_API_RPS is set, got %d", c.RecordsAPIBurst)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}
