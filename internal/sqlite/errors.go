package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fkit-io/fkit/internal/repository"
)

// storageErr translates driver errors into repository sentinels. Constraint
// rejections are recognized by message, the way the modernc driver reports
// them; anything else that isn't a row miss counts as the store being
// unavailable.
func storageErr(err error, nameConstraint, encodedConstraint string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return repository.ErrNotFound
	case nameConstraint != "" && isUniqueViolation(err, nameConstraint):
		return repository.ErrDuplicateName
	case encodedConstraint != "" && isUniqueViolation(err, encodedConstraint):
		return repository.ErrDuplicateEncodedName
	case isForeignKeyViolation(err):
		return repository.ErrForeignKeyViolation
	default:
		return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
}

func isUniqueViolation(err error, constraint string) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, constraint)
}

func isForeignKeyViolation(err error) bool {
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
