package sqlstore

import (
	"context"
	"database/sql"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/plankt0n/streamplay-api/internal/logger"
	"github.com/plankt0n/streamplay-api/internal/storage"
	"github.com/plankt0n/streamplay-api/pkg/sqldb"
	"github.com/rs/zerolog"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pgUniqueViolation = "23505"

var log zerolog.Logger

type Storage struct {
	db     *sqldb.DB
	flavor sqlbuilder.Flavor
}

func NewStorage(ctx context.Context, db *sqldb.DB) *Storage {
	log = *logger.Log
	log = log.With().Str("name", "storage").Logger()

	return &Storage{db: db, flavor: db.GetConfig().Flavor()}
}

// mapError translates driver errors into storage sentinels.
func mapError(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrEntityNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return storage.ErrEntityNotUnique
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		// Extended result codes may be off, in which case only the primary code is reported.
		if code := liteErr.Code(); code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT {
			return storage.ErrEntityNotUnique
		}
	}

	return errors.Wrap(err, msg)
}
