package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"StockDash/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	AlphaVantage struct {
		BaseURL     string        `yaml:"base_url"`
		APIKey      string        `yaml:"api_key"`
		Timeout     time.Duration `yaml:"timeout"`
		SeriesTTL   time.Duration `yaml:"series_ttl"`
		OverviewTTL time.Duration `yaml:"overview_ttl"`
	} `yaml:"alphavantage"`
	GitHub struct {
		BaseURL  string        `yaml:"base_url"`
		Token    string        `yaml:"token"`
		Username string        `yaml:"username"`
		Timeout  time.Duration `yaml:"timeout"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"github"`
	Dashboard struct {
		Symbols         []string      `yaml:"symbols"`
		DefaultInterval string        `yaml:"default_interval"`
		RefreshInterval time.Duration `yaml:"refresh_interval"`
	} `yaml:"dashboard"`
	Cache struct {
		MemoryMaxSize int `yaml:"memory_max_size"`
		Redis         struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables. Overrides are applied before validation so a secret left
// empty in the file can be supplied by the environment alone.
func LoadWithEnv(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}

	c.applyEnv()
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func parse(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		c.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		c.GitHub.Token = v
	}
	if v := os.Getenv("GITHUB_USERNAME"); v != "" {
		c.GitHub.Username = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Dashboard.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if c.AlphaVantage.Timeout == 0 {
		c.AlphaVantage.Timeout = 15 * time.Second
	}
	if c.GitHub.Timeout == 0 {
		c.GitHub.Timeout = 10 * time.Second
	}
	if c.AlphaVantage.BaseURL == "" {
		c.AlphaVantage.BaseURL = "https://www.alphavantage.co"
	}
	if c.AlphaVantage.SeriesTTL == 0 {
		c.AlphaVantage.SeriesTTL = time.Minute
	}
	if c.AlphaVantage.OverviewTTL == 0 {
		c.AlphaVantage.OverviewTTL = time.Hour
	}
	if c.GitHub.BaseURL == "" {
		c.GitHub.BaseURL = "https://api.github.com"
	}
	if c.GitHub.TTL == 0 {
		c.GitHub.TTL = time.Hour
	}
	if c.Dashboard.DefaultInterval == "" {
		c.Dashboard.DefaultInterval = "5min"
	}
	if c.Dashboard.RefreshInterval == 0 {
		c.Dashboard.RefreshInterval = time.Minute
	}
	if c.Cache.MemoryMaxSize == 0 {
		c.Cache.MemoryMaxSize = 1000
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "stockdash"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.AlphaVantage.APIKey == "" {
		return fmt.Errorf("alphavantage.api_key is required")
	}
	if len(c.Dashboard.Symbols) == 0 {
		return fmt.Errorf("dashboard.symbols cannot be empty")
	}
	if c.Dashboard.DefaultInterval != "5min" && c.Dashboard.DefaultInterval != "daily" {
		return fmt.Errorf("dashboard.default_interval must be '5min' or 'daily', got '%s'", c.Dashboard.DefaultInterval)
	}
	if c.Dashboard.RefreshInterval < 10*time.Second {
		return fmt.Errorf("dashboard.refresh_interval must be at least 10s")
	}
	return nil
}
