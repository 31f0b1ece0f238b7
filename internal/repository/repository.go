// Package repository declares the storage contracts consumed by the service
// layer. Concrete adapters live in repository/postgres (GORM) and
// repository/memory (tests).
package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness rule.
	ErrDuplicate = errors.New("record already exists")
)
