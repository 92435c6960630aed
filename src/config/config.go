package config

import (
	"fmt"
	"os"
	"time"

	"finance-dashboard/src/helpers"
	"finance-dashboard/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, &helpers.ConfigurationError{DashboardError: helpers.DashboardError{
			Message: "config validation failed", Cause: err,
		}}
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate App configuration (Flattened)
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration (Flattened)
	if c.ServerEnabled {
		if c.Host == "" {
			return fmt.Errorf("server host cannot be empty")
		}
		if c.Port <= 1024 || c.Port > 65535 {
			return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
		}
	}

	// Validate ticker universe
	if len(c.Tickers) == 0 {
		return fmt.Errorf("at least one ticker must be configured")
	}
	for i, ticker := range c.Tickers {
		if ticker == "" {
			return fmt.Errorf("ticker %d cannot be empty", i)
		}
	}

	// Validate analysis range
	if _, err := c.DateRange(); err != nil {
		return err
	}
	switch c.Alignment {
	case "", "outer", "intersect":
	default:
		return fmt.Errorf("invalid alignment policy: %q (must be 'outer' or 'intersect')", c.Alignment)
	}

	// Validate Export configuration
	if c.Export.Precision < 0 {
		return fmt.Errorf("export precision cannot be negative")
	}

	// Validate Storage configuration
	if c.Storage.DBType == "" {
		return fmt.Errorf("database type cannot be empty")
	}
	if c.Storage.DBType == "sqlite" && c.Storage.DBPath == "" {
		return fmt.Errorf("database path cannot be empty for sqlite")
	}
	if c.Storage.DBType == "postgres" && c.Storage.DBConnectionString == "" {
		return fmt.Errorf("connection string cannot be empty for postgres")
	}
	if c.Storage.CacheTTLDays <= 0 {
		return fmt.Errorf("cache TTL days must be greater than 0")
	}

	// Validate Network configuration
	if c.Network.Enabled {
		if c.Network.RequestTimeout <= 0 {
			return fmt.Errorf("request timeout must be greater than 0")
		}
		if c.Network.MaxRetries < 0 {
			return fmt.Errorf("max retries cannot be negative")
		}
		if c.Network.ConcurrentRequests <= 0 {
			return fmt.Errorf("concurrent requests must be greater than 0")
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// DateRange parses the configured analysis window into a validated range.
func (c *Config) DateRange() (models.MDateRange, error) {
	start, err := time.Parse(models.DateFormat, c.Range.Start)
	if err != nil {
		return models.MDateRange{}, fmt.Errorf("invalid range start '%s': %w", c.Range.Start, err)
	}
	end, err := time.Parse(models.DateFormat, c.Range.End)
	if err != nil {
		return models.MDateRange{}, fmt.Errorf("invalid range end '%s': %w", c.Range.End, err)
	}
	if end.Before(start) {
		return models.MDateRange{}, fmt.Errorf("range end %s precedes start %s", c.Range.End, c.Range.Start)
	}
	return models.NewDateRange(start, end), nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
