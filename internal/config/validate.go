package config

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	if _, err := ParseIsolation(c.Database.TxIsolation); err != nil {
		return fmt.Errorf("database.tx_isolation: %w", err)
	}

	if err := c.Catalog.validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	if !c.RateLimit.Disabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate_limit.requests_per_second must be > 0 (got %v); set rate_limit.disabled to turn limiting off", c.RateLimit.RequestsPerSecond)
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("rate_limit.burst must be > 0 (got %d)", c.RateLimit.Burst)
		}
	}

	if !c.Metrics.Disabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (c *CatalogConfig) validate() error {
	if c.SalesWindow <= 0 {
		return fmt.Errorf("sales_window must be > 0 (got %v)", c.SalesWindow)
	}
	if c.MaxImportItems <= 0 {
		return fmt.Errorf("max_import_items must be > 0 (got %d)", c.MaxImportItems)
	}
	return nil
}

// ParseIsolation maps a human readable isolation level ("read committed",
// "repeatable read", "serializable") to the pgx constant.
func ParseIsolation(s string) (pgx.TxIsoLevel, error) {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "read committed":
		return pgx.ReadCommitted, nil
	case "repeatable read":
		return pgx.RepeatableRead, nil
	case "serializable":
		return pgx.Serializable, nil
	default:
		return "", fmt.Errorf("unsupported isolation level %q", s)
	}
}
