package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the client configuration.
type Config struct {
	// Базовый URL бэкенда; все пути контракта фиксированы относительно него.
	APIBaseURL string `envconfig:"STORYBOOK_API_URL" default:"http://localhost:8080"`

	// Таймаут на весь HTTP запрос.
	RequestTimeout time.Duration `envconfig:"STORYBOOK_REQUEST_TIMEOUT" default:"10s"`

	// Интервал между опросами статуса генерации.
	PollInterval time.Duration `envconfig:"STORYBOOK_POLL_INTERVAL" default:"3s"`

	LogLevel string `envconfig:"STORYBOOK_LOG_LEVEL" default:"info"`

	// Переопределение пути к файлу с токеном; пусто = стандартное место
	// в пользовательском каталоге конфигурации.
	TokenFile string `envconfig:"STORYBOOK_TOKEN_FILE"`
}

// Load loads configuration from environment variables, optionally seeded
// from a .env file when one exists at envFilePath.
func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	if cfg.TokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("cannot resolve user config dir for token file: %w", err)
		}
		cfg.TokenFile = filepath.Join(dir, "storybook", "token")
	}

	return &cfg, nil
}

// BuildLogger constructs a zap logger honouring the configured level.
// Output goes to stderr so it never mixes with rendered stories on stdout.
func (c *Config) BuildLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	return zapCfg.Build()
}
