package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		Env             string        `yaml:"env"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Database struct {
		Driver          string        `yaml:"driver"` // postgres, mysql, sqlite
		DSN             string        `yaml:"url"`
		QueryTimeout    time.Duration `yaml:"query_timeout"`
		MaxOpenConns    int           `yaml:"max_open_conns"`
		MaxIdleConns    int           `yaml:"max_idle_conns"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
		AutoMigrate     bool          `yaml:"auto_migrate"`
	} `yaml:"database"`

	Breaker struct {
		MaxRequests      uint32        `yaml:"max_requests"`
		Interval         time.Duration `yaml:"interval"`
		Timeout          time.Duration `yaml:"timeout"`
		FailureThreshold uint32        `yaml:"failure_threshold"`
	} `yaml:"breaker"`

	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Authz struct {
		PolicyPath string `yaml:"policy_path"` // пусто - встроенная политика
	} `yaml:"authz"`

	Workers struct {
		CollectionSweepInterval time.Duration `yaml:"collection_sweep_interval"`
	} `yaml:"workers"`

	Relatedness struct {
		DefaultLimit int `yaml:"default_limit"`
		MaxLimit     int `yaml:"max_limit"`
	} `yaml:"relatedness"`

	// Первый администратор создается при старте, если админов еще нет
	FirstAdminEmail string `yaml:"first_admin_email"`
	FirstAdminName  string `yaml:"first_admin_name"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию в AppConfig. Ошибка загрузки фатальна.
func LoadConfig() {
	// .env опционален
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load читает YAML-файл, применяет переменные окружения и значения по умолчанию.
// Если задан DATABASE_URL, файл может отсутствовать.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && os.Getenv("DATABASE_URL") != "":
		log.Printf("Config file %s not found, using environment", path)
	default:
		return nil, fmt.Errorf("open config file %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("FIRST_ADMIN_EMAIL"); v != "" {
		cfg.FirstAdminEmail = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.QueryTimeout == 0 {
		cfg.Database.QueryTimeout = 3 * time.Second
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30 * time.Minute
	}

	if cfg.Breaker.MaxRequests == 0 {
		cfg.Breaker.MaxRequests = 3
	}
	if cfg.Breaker.Interval == 0 {
		cfg.Breaker.Interval = time.Minute
	}
	if cfg.Breaker.Timeout == 0 {
		cfg.Breaker.Timeout = 30 * time.Second
	}
	if cfg.Breaker.FailureThreshold == 0 {
		cfg.Breaker.FailureThreshold = 5
	}

	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "MuseWorks"
	}

	if cfg.Workers.CollectionSweepInterval == 0 {
		cfg.Workers.CollectionSweepInterval = 5 * time.Minute
	}

	if cfg.Relatedness.DefaultLimit == 0 {
		cfg.Relatedness.DefaultLimit = 6
	}
	if cfg.Relatedness.MaxLimit == 0 {
		cfg.Relatedness.MaxLimit = 50
	}

	if cfg.FirstAdminEmail != "" && cfg.FirstAdminName == "" {
		cfg.FirstAdminName = "Administrator"
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database url is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required")
	}
	if c.Relatedness.DefaultLimit > c.Relatedness.MaxLimit {
		return fmt.Errorf("relatedness default_limit %d exceeds max_limit %d",
			c.Relatedness.DefaultLimit, c.Relatedness.MaxLimit)
	}
	return nil
}

// IsProduction - true для любого окружения, кроме development и test
func (c *Config) IsProduction() bool {
	return c.Server.Env != "development" && c.Server.Env != "test"
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
