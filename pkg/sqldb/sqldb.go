package sqldb

import (
	"context"
	"sync/atomic"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"
)

type DB struct {
	conn           *sqlx.DB
	config         *Config
	shuttingDown   atomic.Bool
	watcherStopped atomic.Bool
}

func New(ctx context.Context, config *Config) (*DB, error) {
	if config == nil {
		return nil, errors.New("invalid passed options pointer")
	}

	switch config.SetDefault().Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, errors.Errorf("unsupported driver %q", config.Driver)
	}

	d := &DB{config: config}
	d.watcherStopped.Store(true)

	return d, nil
}

func (d *DB) GetConn() *sqlx.DB {
	return d.conn
}

func (d *DB) GetConfig() *Config {
	return d.config
}

// Start connects and, when configured, launches the connection watcher on errorGroup.
func (d *DB) Start(ctx context.Context, errorGroup *errgroup.Group) error {
	logger := d.GetLogger(ctx)

	if d.conn != nil {
		return nil
	}
	logger.Info().Str("driver", d.config.Driver).Msg("establishing connection...")

	var err error
	d.conn, err = sqlx.ConnectContext(ctx, d.config.Driver, d.config.DSN)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	logger.Info().Msg("connection established")

	d.SetConnPoolLifetime(d.config.MaxConnectionLifetime)
	d.SetConnPoolLimits(d.config.MaxIdleConnections, d.config.MaxOpenedConnections)

	if d.config.StartWatcher && d.IsWatcherStopped() && errorGroup != nil {
		d.SetWatcher(false)
		errorGroup.Go(func() error {
			return d.startWatcher(ctx)
		})
	}

	return nil
}

func (d *DB) GetLogger(ctx context.Context) *zerolog.Logger {
	logger := zerolog.Ctx(ctx).With().Str("name", "sqldb").Logger()

	return &logger
}

// SetConnPoolLifetime sets connection lifetime.
func (d *DB) SetConnPoolLifetime(connMaxLifetime time.Duration) {
	d.config.MaxConnectionLifetime = connMaxLifetime

	if d.conn != nil {
		d.conn.SetConnMaxLifetime(connMaxLifetime)
	}
}

// SetConnPoolLimits sets pool limits for connections counts.
func (d *DB) SetConnPoolLimits(maxIdleConnections, maxOpenedConnections int) {
	d.config.MaxIdleConnections = maxIdleConnections
	d.config.MaxOpenedConnections = maxOpenedConnections

	if d.conn != nil {
		d.conn.SetMaxIdleConns(maxIdleConnections)
		d.conn.SetMaxOpenConns(maxOpenedConnections)
	}
}

func (d *DB) startWatcher(ctx context.Context) error {
	d.GetLogger(ctx).Info().Msg("starting connection watcher")

	ticker := time.NewTicker(d.config.Timeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.GetLogger(ctx).Info().Msg("connection watcher stopped")
			d.SetWatcher(true)
			return nil
		case <-ticker.C:
			if d.IsShuttingDown() {
				d.SetWatcher(true)
				return nil
			}
			if err := d.Ping(ctx); err != nil {
				d.GetLogger(ctx).Error().Err(err).Msg("connection lost")
			}
		}
	}
}

// Shutdown waits for the connection watcher and closes the connection. This is a blocking call.
func (d *DB) Shutdown(ctx context.Context) error {
	d.GetLogger(ctx).Info().Msg("shutting down")
	d.SetShuttingDown(true)

	for !d.IsWatcherStopped() {
		time.Sleep(time.Millisecond * 100)
	}

	if err := d.shutdown(ctx); err != nil {
		return errors.Wrapf(err, "shutdown %q", d.GetFullName())
	}

	d.GetLogger(ctx).Info().Msg("shut down")
	return nil
}

func (d *DB) shutdown(ctx context.Context) error {
	if d.conn == nil {
		return nil
	}
	d.GetLogger(ctx).Info().Msg("closing connection...")

	if err := d.conn.Close(); err != nil {
		return errors.Wrap(err, "failed to close connection")
	}

	d.conn = nil

	return nil
}

// Ping is pinging connection if it's alive (or we think so).
func (d *DB) Ping(ctx context.Context) error {
	if d.conn == nil {
		return nil
	}

	if err := d.conn.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping connection")
	}

	return nil
}

func (d *DB) IsShuttingDown() bool {
	return d.shuttingDown.Load()
}

func (d *DB) SetShuttingDown(v bool) {
	d.shuttingDown.Store(v)
}

func (d *DB) IsWatcherStopped() bool {
	return d.watcherStopped.Load()
}

func (d *DB) SetWatcher(v bool) {
	d.watcherStopped.Store(v)
}

func (d *DB) GetFullName() string {
	return d.config.Driver
}
