package sqldb

import (
	"time"

	"github.com/huandu/go-sqlbuilder"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

type Config struct {
	Driver                string        `envconfig:"default=sqlite"`
	DSN                   string        `envconfig:"default=file:data.db?_pragma=busy_timeout(5000)"`
	MaxConnectionLifetime time.Duration `envconfig:"default=5m"`
	MaxIdleConnections    int           `envconfig:"default=2"`
	MaxOpenedConnections  int           `envconfig:"default=5"`
	Timeout               time.Duration `envconfig:"default=10s"`
	StartWatcher          bool          `envconfig:"default=true"`
}

// SetDefault fills zero values so a hand-built Config is usable.
func (c *Config) SetDefault() *Config {
	if c.Driver == "" {
		c.Driver = DriverSQLite
	}
	if c.DSN == "" {
		c.DSN = "file:data.db?_pragma=busy_timeout(5000)"
	}
	if c.MaxConnectionLifetime == 0 {
		c.MaxConnectionLifetime = 5 * time.Minute
	}
	if c.MaxIdleConnections == 0 {
		c.MaxIdleConnections = 2
	}
	if c.MaxOpenedConnections == 0 {
		c.MaxOpenedConnections = 5
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}

	return c
}

// Flavor is the sqlbuilder dialect matching Driver.
func (c *Config) Flavor() sqlbuilder.Flavor {
	if c.Driver == DriverPostgres {
		return sqlbuilder.PostgreSQL
	}
	return sqlbuilder.SQLite
}
