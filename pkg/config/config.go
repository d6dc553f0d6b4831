package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

const (
	SourceCSV        = "csv"
	SourceClickHouse = "clickhouse"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8050"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled       bool          `yaml:"enabled" default:"true"`
		Path          string        `yaml:"path" default:"/metrics"`
		SlowThreshold time.Duration `yaml:"slow_threshold" default:"250ms"`
	} `yaml:"metrics"`
	Dataset struct {
		Source      string        `yaml:"source" default:"csv"`
		Path        string        `yaml:"path" default:"avocado.csv"`
		DateFormat  string        `yaml:"date_format" default:"2006-01-02"`
		Table       string        `yaml:"table"`
		LoadTimeout time.Duration `yaml:"load_timeout" default:"30s"`
	} `yaml:"dataset"`
	Dashboard struct {
		Title         string `yaml:"title" default:"Avocado Analytics: Understand Your Avocados!"`
		DefaultRegion string `yaml:"default_region" default:"Albany"`
		DefaultType   string `yaml:"default_type" default:"organic"`
	} `yaml:"dashboard"`
	Cache struct {
		Enabled       bool          `yaml:"enabled" default:"true"`
		TTL           time.Duration `yaml:"ttl" default:"5m"`
		MemoryMaxSize int           `yaml:"memory_max_size" default:"1000"`
		Redis         struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"avodash"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	RateLimit struct {
		Capacity     float64 `yaml:"capacity" default:"20"`
		RefillPerSec float64 `yaml:"refill_per_sec" default:"10"`
	} `yaml:"rate_limit"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"default"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"30s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
}

// Default returns a Config populated only from struct defaults.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c, err := Default()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("AVODASH_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("AVODASH_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("AVODASH_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("AVODASH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("AVODASH_DATASET_SOURCE"); v != "" {
		c.Dataset.Source = v
	}
	if v := os.Getenv("AVODASH_DATASET_PATH"); v != "" {
		c.Dataset.Path = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Host = host
		if ok {
			p, err := strconv.Atoi(port)
			if err != nil {
				return nil, fmt.Errorf("REDIS_ADDR: %w", err)
			}
			c.Cache.Redis.Port = p
		}
	}
	if v := os.Getenv("CLICKHOUSE_PASSWORD"); v != "" {
		c.ClickHouse.Password = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Dataset.Source {
	case SourceCSV:
		if c.Dataset.Path == "" {
			return fmt.Errorf("dataset.path is required for csv source")
		}
	case SourceClickHouse:
		if c.Dataset.Table == "" {
			return fmt.Errorf("dataset.table is required for clickhouse source")
		}
		if c.ClickHouse.Host == "" {
			return fmt.Errorf("clickhouse.host is required for clickhouse source")
		}
	default:
		return fmt.Errorf("dataset.source must be 'csv' or 'clickhouse', got '%s'", c.Dataset.Source)
	}
	if c.Dataset.DateFormat == "" {
		return fmt.Errorf("dataset.date_format is required")
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when cache is enabled")
	}
	return nil
}
