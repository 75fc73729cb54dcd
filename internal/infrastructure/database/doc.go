// Package database manages the SQLite connection and schema migrations.
//
// It wraps database/sql with WAL mode, busy-timeout and foreign-key
// pragmas, restrictive file permissions, and an embedded-filesystem
// migration runner. SQLite's unique constraints provide the atomicity
// the credential store relies on for duplicate registration.
package database
