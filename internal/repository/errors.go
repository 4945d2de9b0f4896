// Package repository defines the sentinel errors persistence
// implementations translate storage failures into.
package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when an insert loses to an existing row
	// with the same name. The schema resolver consumes this by re-running
	// its lookup.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrDuplicateEncodedName is returned when only the encoded-name
	// uniqueness constraint rejected an insert.
	ErrDuplicateEncodedName = errors.New("duplicate encoded name")

	// ErrUnavailable is returned when the store cannot be reached.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails.
	ErrForeignKeyViolation = errors.New("foreign key violation")
)
