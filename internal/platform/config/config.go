package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"

	fileName = "fitx.yaml"
)

type Config struct {
	DataDir          string `yaml:"-"`
	DBPath           string `yaml:"-"`
	Store            string `yaml:"store"`
	PostgresDSN      string `yaml:"postgres_dsn"`
	UserID           string `yaml:"user"`
	HTTPAddr         string `yaml:"http_addr"`
	TelegramToken    string `yaml:"telegram_token"`
	ReportSchedule   string `yaml:"report_schedule"`
	ReportWindowDays int    `yaml:"report_window_days"`
	PluginsEnabled   bool   `yaml:"plugins_enabled"`
	LogLevel         string `yaml:"log_level"`
	LogJSON          bool   `yaml:"log_json"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:          dataDir,
		DBPath:           filepath.Join(dataDir, ".fitx", "fitx.db"),
		Store:            StoreSQLite,
		UserID:           "default",
		HTTPAddr:         ":8080",
		ReportSchedule:   "@weekly",
		ReportWindowDays: 7,
		LogLevel:         "info",
	}, nil
}

// Load layers defaults, <dataDir>/fitx.yaml, the optional env file and the
// process environment, in that order.
func Load(dataDir, envFile string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.mergeFile(filepath.Join(dataDir, fileName)); err != nil {
		return Config{}, err
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	}
	if err := cfg.mergeEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	return nil
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("FITX_STORE", &c.Store)
	str("FITX_POSTGRES_DSN", &c.PostgresDSN)
	str("FITX_USER", &c.UserID)
	str("FITX_HTTP_ADDR", &c.HTTPAddr)
	str("FITX_TELEGRAM_TOKEN", &c.TelegramToken)
	str("FITX_REPORT_SCHEDULE", &c.ReportSchedule)
	str("FITX_LOG_LEVEL", &c.LogLevel)

	if v, ok := lookup("FITX_REPORT_WINDOW_DAYS"); ok && v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FITX_REPORT_WINDOW_DAYS: %w", err)
		}
		c.ReportWindowDays = days
	}
	for key, dst := range map[string]*bool{"FITX_PLUGINS_ENABLED": &c.PluginsEnabled, "FITX_LOG_JSON": &c.LogJSON} {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres store requires FITX_POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported store %q", c.Store)
	}
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if c.ReportWindowDays <= 0 {
		return fmt.Errorf("report window days must be positive")
	}
	return nil
}
