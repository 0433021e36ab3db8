// Package sqlstore implements the store interfaces on a SQL database.
//
// Two dialects are supported: SQLite through github.com/mattn/go-sqlite3 and
// PostgreSQL through the pgx stdlib driver. Queries are written once with "?"
// placeholders and rebound for PostgreSQL. The schema is created by goose
// migrations embedded in the binary and applied by Open.
//
// Timestamps and UUIDs are stored as text in the same formats the jsonfile
// backend writes, so both backends round-trip identical domain values.
package sqlstore
