package sqlstore

import (
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"github.com/plankt0n/streamplay-api/internal/storage/sqlstore/migrations"
	"github.com/plankt0n/streamplay-api/pkg/sqldb"
)

// ApplyMigrations brings the schema up to date using the migrations embedded
// for the configured driver. The database handle stays open afterwards.
func (s *Storage) ApplyMigrations() error {
	conn := s.db.GetConn()
	if conn == nil {
		return errors.New("database is not started")
	}

	var (
		driver database.Driver
		dir    string
		err    error
	)
	switch s.db.GetConfig().Driver {
	case sqldb.DriverPostgres:
		dir = "postgres"
		driver, err = pgxmigrate.WithInstance(conn.DB, &pgxmigrate.Config{})
	default:
		dir = "sqlite"
		driver, err = sqlitemigrate.WithInstance(conn.DB, &sqlitemigrate.Config{})
	}
	if err != nil {
		return errors.Wrap(err, "migration driver")
	}

	source, err := iofs.New(migrations.FS, dir)
	if err != nil {
		return errors.Wrap(err, "migration source")
	}

	instance, err := migrate.NewWithInstance("iofs", source, s.db.GetFullName(), driver)
	if err != nil {
		return errors.Wrap(err, "migration instance")
	}

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "apply migrations")
	}

	log.Info().Str("dir", dir).Msg("migrations applied")

	return nil
}
