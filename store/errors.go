// store/errors.go
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrConflict is returned when a uniqueness constraint is violated, or when
// a foreign key blocks a delete. Handlers map it to 409.
var ErrConflict = errors.New("record conflicts with an existing record")

// ErrNotFound is returned when no row matches the given identifier or field.
// Handlers map it to 404 (or 410 after a HasExisted check).
var ErrNotFound = errors.New("record not found")

// StorageError wraps any persistence failure that is neither a conflict nor
// a missing row. Its cause is logged server-side and never sent to clients.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// translate folds a raw gorm error into one of the store's error kinds.
// Relies on gorm.Config{TranslateError: true} so both the postgres and
// sqlite drivers report duplicate keys and FK violations uniformly.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return &StorageError{Op: op, Err: err}
	}
}
