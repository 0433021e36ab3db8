package sqlstore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

// Driver names accepted by Open. They match config.DriverSQLite and
// config.DriverPostgres.
const (
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// dialect captures the differences between the supported databases.
type dialect struct {
	name       string
	sqlDriver  string
	goose      goose.Dialect
	// migrations is the embedded directory holding this dialect's schema.
	migrations string
	numbered   bool
	uniqueName func(err error) (string, bool)
}

var dialects = map[string]dialect{
	SQLite: {
		name:       SQLite,
		sqlDriver:  "sqlite3",
		goose:      goose.DialectSQLite3,
		migrations: "migrations/sqlite",
		uniqueName: sqliteUniqueViolation,
	},
	Postgres: {
		name:       Postgres,
		sqlDriver:  "pgx",
		goose:      goose.DialectPostgres,
		migrations: "migrations/postgres",
		numbered:   true,
		uniqueName: postgresUniqueViolation,
	},
}

func lookupDialect(name string) (dialect, error) {
	d, ok := dialects[name]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported sql driver %q", name)
	}
	return d, nil
}

// rebind rewrites "?" placeholders to "$1", "$2"... for dialects that number them.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
const uniqueViolationCode = "23505"

func postgresUniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return pgErr.ConstraintName, true
	}
	return "", false
}

func sqliteUniqueViolation(err error) (string, bool) {
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) &&
		(sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqlErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		// The message names the column or index, e.g. "UNIQUE constraint failed: users.id".
		return sqlErr.Error(), true
	}
	return "", false
}
