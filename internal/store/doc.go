// Package store defines interfaces for user and tweet persistence.
// The interfaces abstract the backend (whole-file JSON arrays, SQLite or
// PostgreSQL) so services and handlers never depend on how records are kept.
package store
