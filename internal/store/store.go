// Package store holds the persistence backends shared by the registry, the
// ledger and account login. Memory serves tests and single-process runs; Gorm
// serves MySQL and SQLite deployments.
package store

import "errors"

var (
	ErrNotFound = errors.New("not found") // Row does not exist
	ErrConflict = errors.New("conflict")  // Unique key already taken
)
