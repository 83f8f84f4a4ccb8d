package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tithmeassambo-coder/QCM/internal/logger"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	HTTPAddr string `yaml:"http_addr"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	StorageDriver  string        `yaml:"storage_driver"`
	SQLitePath     string        `yaml:"sqlite_path"`
	DatabaseURL    string        `yaml:"database_url"`
	PersistTimeout time.Duration `yaml:"persist_timeout"`

	AdminPassphrase string   `yaml:"admin_passphrase"`
	StartupData     string   `yaml:"startup_data"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

// LoadConfig reads the optional YAML file at path, applies environment
// overrides and defaults, and validates the result.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if cfg, err = parseConfig(data); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseConfig(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(new(yaml.Node)); !errors.Is(err, io.EOF) {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	str := map[string]*string{
		"HTTP_ADDR":        &cfg.HTTPAddr,
		"LOG_LEVEL":        &cfg.LogLevel,
		"LOG_FILE":         &cfg.LogFile,
		"STORAGE_DRIVER":   &cfg.StorageDriver,
		"SQLITE_PATH":      &cfg.SQLitePath,
		"DATABASE_URL":     &cfg.DatabaseURL,
		"ADMIN_PASSPHRASE": &cfg.AdminPassphrase,
		"QUIZ_DATA":        &cfg.StartupData,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok {
		cfg.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	if v, ok := os.LookupEnv("PERSIST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PERSIST_TIMEOUT: %w", err)
		}
		cfg.PersistTimeout = d
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = DriverSQLite
	}
	cfg.StorageDriver = strings.ToLower(cfg.StorageDriver)
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "qcm.db"
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = 5 * time.Second
	}
	if _, ok := os.LookupEnv("ADMIN_PASSPHRASE"); !ok && cfg.AdminPassphrase == "" {
		cfg.AdminPassphrase = "1234"
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: postgres storage requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.StorageDriver)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
