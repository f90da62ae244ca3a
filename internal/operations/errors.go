package operations

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned by update/delete paths when the target row
	// does not exist. Read paths return a nil record instead.
	ErrNotFound = errors.New("record not found")

	// ErrConflict signals a duplicate value for a unique field.
	ErrConflict = errors.New("duplicate value for unique field")

	// ErrStaleRecord signals an optimistic-lock failure: the row changed
	// between read and write.
	ErrStaleRecord = errors.New("record was modified by someone else")
)

// ValidationError carries a user-facing message for a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// isUniqueViolation catches the race window left after the explicit
// uniqueness pre-checks (postgres SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}
