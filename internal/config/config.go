// Package config defines the service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/medistock/medistock/pkg/config"
	"github.com/medistock/medistock/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPServer config.HTTPConfig     `koanf:"server"`
	Store      StoreConfig           `koanf:"store"`
	Log        config.LogConfig      `koanf:"log"`
	PProf      config.PProfConfig    `koanf:"pprof"`
	Shutdown   config.ShutdownConfig `koanf:"shutdown"`
	Alerts     AlertsConfig          `koanf:"alerts"`
	Scheduler  SchedulerConfig       `koanf:"scheduler"`
}

// StoreConfig selects the storage backend. The database block is only
// required for the postgres backend.
type StoreConfig struct {
	Backend  string                `koanf:"backend"`
	Database config.DatabaseConfig `koanf:"database"`
}

func (c *StoreConfig) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendPostgres:
		return c.Database.Validate()
	default:
		return fmt.Errorf("unknown store backend: %q", c.Backend)
	}
}

// AlertsConfig holds the default alert cutoffs.
type AlertsConfig struct {
	LowStockThreshold int32 `koanf:"lowStockThreshold"`
	ExpiryHorizonDays int   `koanf:"expiryHorizonDays"`
}

func (c *AlertsConfig) Validate() error {
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("invalid low stock threshold: %d", c.LowStockThreshold)
	}
	if c.ExpiryHorizonDays < 0 {
		return fmt.Errorf("invalid expiry horizon days: %d", c.ExpiryHorizonDays)
	}
	return nil
}

// SchedulerConfig controls the periodic alert scan.
type SchedulerConfig struct {
	Enabled bool   `koanf:"enabled"`
	Spec    string `koanf:"spec"`
}

func (c *SchedulerConfig) Validate() error {
	if c.Enabled && c.Spec == "" {
		return fmt.Errorf("scheduler is enabled but cron spec is not configured")
	}
	return nil
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Server Configuration ---\n")
	b.WriteString(fmt.Sprintf("  server.port: %d\n", c.HTTPServer.Port))
	b.WriteString(fmt.Sprintf("  server.maxHeaderBytes: %d\n", c.HTTPServer.MaxHeaderBytes))
	b.WriteString(fmt.Sprintf("  server.timeout.read: %v\n", c.HTTPServer.Timeout.Read))
	b.WriteString(fmt.Sprintf("  server.timeout.write: %v\n", c.HTTPServer.Timeout.Write))
	b.WriteString(fmt.Sprintf("  server.timeout.idle: %v\n", c.HTTPServer.Timeout.Idle))
	b.WriteString(fmt.Sprintf("  server.timeout.readHeader: %v\n", c.HTTPServer.Timeout.ReadHeader))

	b.WriteString("\n--- Store Configuration ---\n")
	b.WriteString(fmt.Sprintf("  store.backend: %s\n", c.Store.Backend))
	if c.Store.Backend == BackendPostgres {
		b.WriteString(fmt.Sprintf("  store.database.url: %s\n", maskURL(c.Store.Database.URL)))
		b.WriteString(fmt.Sprintf("  store.database.timeout: %s\n", c.Store.Database.Timeout))
	}

	b.WriteString("\n--- Alerts & Scheduler ---\n")
	b.WriteString(fmt.Sprintf("  alerts.lowStockThreshold: %d\n", c.Alerts.LowStockThreshold))
	b.WriteString(fmt.Sprintf("  alerts.expiryHorizonDays: %d\n", c.Alerts.ExpiryHorizonDays))
	b.WriteString(fmt.Sprintf("  scheduler.enabled: %t\n", c.Scheduler.Enabled))
	b.WriteString(fmt.Sprintf("  scheduler.spec: %s\n", c.Scheduler.Spec))

	b.WriteString("\n--- Observability & Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  pprof.enabled: %t\n", c.PProf.Enabled))
	b.WriteString(fmt.Sprintf("  pprof.address: %s\n", c.PProf.Addr))

	b.WriteString("\n--- Application Behavior ---\n")
	b.WriteString(fmt.Sprintf("  shutdown.timeout: %s\n", c.Shutdown.Timeout))

	return b.String()
}

func maskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	// Mask the URL by replacing the username and password with "****"
	parts := strings.Split(url, "@")
	if len(parts) == 2 {
		return "****@" + parts[1]
	}
	return "****"
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if err := c.Alerts.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	return nil
}
