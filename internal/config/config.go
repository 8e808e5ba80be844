package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	API struct {
		BaseURL    string `yaml:"base_url"`
		WebBaseURL string `yaml:"web_base_url"`
	} `yaml:"api"`
	Roster struct {
		File string `yaml:"file"`
	} `yaml:"roster"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Fetch struct {
		MaxRetries   int `yaml:"max_retries"`
		RetryDelayMs int `yaml:"retry_delay_ms"`
		PageDelayMs  int `yaml:"page_delay_ms"`
	} `yaml:"fetch"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is fine; every field has a working default.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MOONWALK_API_BASE"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("MOONWALK_WEB_BASE"); v != "" {
		cfg.API.WebBaseURL = v
	}
	if v := os.Getenv("ROSTER_FILE"); v != "" {
		cfg.Roster.File = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("FETCH_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.MaxRetries = n
		}
	}

	// Defaults
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.moonwalk.fit"
	}
	if cfg.API.WebBaseURL == "" {
		cfg.API.WebBaseURL = "https://app.moonwalk.fit"
	}
	if cfg.Roster.File == "" {
		cfg.Roster.File = "moonwalk_users.csv"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	if cfg.Fetch.MaxRetries == 0 {
		cfg.Fetch.MaxRetries = 3
	}
	if cfg.Fetch.RetryDelayMs == 0 {
		cfg.Fetch.RetryDelayMs = 1000
	}
	if cfg.Fetch.PageDelayMs == 0 {
		cfg.Fetch.PageDelayMs = 200
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.WebBaseURL == "" {
		return fmt.Errorf("api.web_base_url is required")
	}
	if c.Roster.File == "" {
		return fmt.Errorf("roster.file is required")
	}
	if c.Fetch.MaxRetries < 0 {
		return fmt.Errorf("fetch.max_retries must not be negative")
	}
	return nil
}

// RetryDelay is the pause between attempts at the same page offset.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Fetch.RetryDelayMs) * time.Millisecond
}

// PageDelay is the pause between consecutive successful page fetches.
func (c *Config) PageDelay() time.Duration {
	return time.Duration(c.Fetch.PageDelayMs) * time.Millisecond
}
