package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Catalog sources.
const (
	CatalogFromFile     = "file"
	CatalogFromDatabase = "database"
)

var ErrInvalidConfig = errors.New("invalid config")

// Simulator holds all configuration for the battle simulator.
// Environment variables override values from the YAML file.
type Simulator struct {
	LogLevel string `yaml:"log_level" env:"MONBATTLE_LOG_LEVEL"`

	// Catalog
	CatalogSource string `yaml:"catalog_source" env:"MONBATTLE_CATALOG_SOURCE"` // file | database
	CatalogPath   string `yaml:"catalog_path" env:"MONBATTLE_CATALOG_PATH"`

	// Scenarios
	ScenarioDir string `yaml:"scenario_dir" env:"MONBATTLE_SCENARIO_DIR"`
	Parallelism int    `yaml:"parallelism" env:"MONBATTLE_PARALLELISM"`

	// Database, used when CatalogSource is database and by import-catalog
	Database       DatabaseConfig `yaml:"database"`
	MigrateOnStart bool           `yaml:"migrate_on_start" env:"MONBATTLE_MIGRATE_ON_START"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"MONBATTLE_DB_HOST"`
	Port     int    `yaml:"port" env:"MONBATTLE_DB_PORT"`
	User     string `yaml:"user" env:"MONBATTLE_DB_USER"`
	Password string `yaml:"password" env:"MONBATTLE_DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"MONBATTLE_DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"MONBATTLE_DB_SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSimulator returns Simulator config with sensible defaults.
func DefaultSimulator() Simulator {
	return Simulator{
		LogLevel:       "info",
		CatalogSource:  CatalogFromFile,
		CatalogPath:    "config/catalog.yaml",
		ScenarioDir:    "scenarios",
		Parallelism:    4,
		MigrateOnStart: true,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "monbattle",
			Password: "monbattle",
			DBName:   "monbattle",
			SSLMode:  "disable",
		},
	}
}

// LoadSimulator loads simulator config from a YAML file, then applies
// MONBATTLE_* environment overrides.
// If the file doesn't exist, starts from defaults.
func LoadSimulator(path string) (Simulator, error) {
	cfg := DefaultSimulator()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Simulator) validate() error {
	switch c.CatalogSource {
	case CatalogFromFile, CatalogFromDatabase:
	default:
		return fmt.Errorf("catalog_source %q: %w", c.CatalogSource, ErrInvalidConfig)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism %d: %w", c.Parallelism, ErrInvalidConfig)
	}
	return nil
}
