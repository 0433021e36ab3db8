// Package jsonfile implements the store interfaces on top of flat JSON files.
//
// Each record kind lives in its own file holding a single JSON array. Every
// operation decodes the whole file; every mutation re-encodes the whole array
// and replaces the file through a temp-file rename. There is no index and no
// cache: the file on disk is the only source of truth. Operations on one
// Collection are serialized by a mutex, which protects against concurrent
// requests in this process but not against other processes writing the file.
//
// This backend is meant for development and small data sets; the sqlstore
// package implements the same contracts on SQLite and PostgreSQL.
package jsonfile
