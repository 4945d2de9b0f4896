package schema

import "errors"

var (
	// ErrInvalidName indicates an empty or unusable entity name.
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidType indicates an unknown column data type.
	ErrInvalidType = errors.New("invalid data type")
	// ErrSchemaConflict indicates a uniqueness conflict that survived a
	// retry of the lookup. This points at a broken invariant, not at
	// anything the caller did.
	ErrSchemaConflict = errors.New("schema conflict")
)
