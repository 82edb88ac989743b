// Package history stores validation records as an append-only log and reads
// them back newest first.
//
// Four backends share the same method set: Postgres for production, SQLite for
// single-node and local use, Redis as a list-backed log, and an in-memory log
// for tests and development.
package history

import (
	_ "embed"
)

// PostgresSchema is the DDL for the validations table. The service does not
// run it; it is exposed for provisioning scripts and integration tests.
//
//go:embed sql/postgres.sql
var PostgresSchema string

//go:embed sql/sqlite.sql
var sqliteSchema string
