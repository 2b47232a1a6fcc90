package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the top-level application config.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Analysis AnalysisConfig `koanf:"analysis"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type DatabaseConfig struct {
	Type         string `koanf:"type"`
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type CatalogConfig struct {
	// SeedPath points at the YAML file with areas, products and operator
	// accounts. Seeding only runs when SeedOnStart is set and the catalog is
	// empty.
	SeedPath    string `koanf:"seed_path"`
	SeedOnStart bool   `koanf:"seed_on_start"`
}

type AnalysisConfig struct {
	// TopN bounds the ranked-list metrics (best-selling products, top customers).
	TopN int `koanf:"top_n"`

	// SnapshotPageSize is the cursor page size used when loading the sales
	// snapshot for one pipeline run.
	SnapshotPageSize int `koanf:"snapshot_page_size"`

	// RefreshEnabled turns on the periodic background re-run of the analysis.
	// The interactive trigger works either way.
	RefreshEnabled  bool   `koanf:"refresh_enabled"`
	RefreshInterval string `koanf:"refresh_interval"`

	// ExportPath is where the CSV export of the last report is written.
	ExportPath string `koanf:"export_path"`
}

func (c AnalysisConfig) EffectiveRefreshInterval() string {
	if c.RefreshInterval != "" {
		return c.RefreshInterval
	}
	return "15m"
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}
	if c.Database.Type != "" && c.Database.Type != "postgres" {
		return fmt.Errorf("unsupported database.type %q", c.Database.Type)
	}

	if c.Catalog.SeedOnStart && strings.TrimSpace(c.Catalog.SeedPath) == "" {
		return fmt.Errorf("catalog.seed_path is required when catalog.seed_on_start is set")
	}

	if c.Analysis.TopN <= 0 {
		return fmt.Errorf("analysis.top_n must be > 0")
	}
	if c.Analysis.SnapshotPageSize <= 0 {
		return fmt.Errorf("analysis.snapshot_page_size must be > 0")
	}
	interval, err := time.ParseDuration(c.Analysis.EffectiveRefreshInterval())
	if err != nil {
		return fmt.Errorf("invalid analysis refresh interval %q: %w", c.Analysis.EffectiveRefreshInterval(), err)
	}
	if interval <= 0 {
		return fmt.Errorf("analysis refresh interval must be > 0")
	}
	if strings.TrimSpace(c.Analysis.ExportPath) == "" {
		return fmt.Errorf("analysis.export_path is required")
	}

	return nil
}

// Load parses config from file + env and validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":                 8080,
		"server.host":                 "0.0.0.0",
		"server.max_body_size_mb":     1,
		"server.mode":                 "release",
		"database.type":               "postgres",
		"database.dsn":                "",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     25,
		"database.auto_migrate":       true,
		"catalog.seed_path":           "./config/catalog.yaml",
		"catalog.seed_on_start":       true,
		"analysis.top_n":              10,
		"analysis.snapshot_page_size": 5000,
		"analysis.refresh_enabled":    false,
		"analysis.refresh_interval":   "15m",
		"analysis.export_path":        "./analisis_supermercado.csv",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("BODEGA_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "BODEGA_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
