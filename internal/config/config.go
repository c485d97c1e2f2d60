package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. RPTRUNK_LOG_LEVEL.
const EnvPrefix = "RPTRUNK_"

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Simulator holds all configuration for the simulator binary.
type Simulator struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// Data directory with abilities.yaml, items.yaml, entities.yaml
	DataPath string `yaml:"data_path" env:"DATA_PATH"`

	// Tick loop
	TickInterval time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"` // wall-clock step (default: 100ms)
	TickDelta    int64         `yaml:"tick_delta" env:"TICK_DELTA"`       // simulated time per step (default: 1)
	MaxTicks     int64         `yaml:"max_ticks" env:"MAX_TICKS"`         // 0 = run until interrupted

	// Conflict resolver: "direct" or "mitigation"
	Resolver string `yaml:"resolver" env:"RESOLVER"`

	// In-memory journal capacity
	JournalSize int `yaml:"journal_size" env:"JOURNAL_SIZE"`

	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`
}

// DefaultSimulator returns Simulator config with sensible defaults.
func DefaultSimulator() Simulator {
	return Simulator{
		LogLevel:     "info",
		DataPath:     "data",
		TickInterval: 100 * time.Millisecond,
		TickDelta:    1,
		MaxTicks:     0,
		Resolver:     "direct",
		JournalSize:  256,
		Database: DatabaseConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "rptrunk",
			Password: "rptrunk",
			DBName:   "rptrunk",
			SSLMode:  "disable",
		},
	}
}

// LoadSimulator loads simulator config from a YAML file and applies
// RPTRUNK_* environment overrides on top.
// If the file doesn't exist, defaults are used.
func LoadSimulator(path string) (Simulator, error) {
	cfg := DefaultSimulator()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the tick loop cannot run with.
func (c Simulator) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be > 0, got %s", c.TickInterval)
	}
	if c.TickDelta <= 0 {
		return fmt.Errorf("tick_delta must be > 0, got %d", c.TickDelta)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("max_ticks must be >= 0, got %d", c.MaxTicks)
	}
	switch c.Resolver {
	case "direct", "mitigation":
	default:
		return fmt.Errorf("unknown resolver %q", c.Resolver)
	}
	return nil
}
