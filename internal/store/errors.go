package store

import (
	"errors"
	"fmt"
)

// Error kinds returned by every repository operation. Callers match them
// with errors.Is; the presentation layer maps them to transport codes.
var (
	// ErrNotFound means no record exists with the requested identifier.
	ErrNotFound = errors.New("record not found")
	// ErrReferenced means a delete was rejected because dependent records
	// still point at the target.
	ErrReferenced = errors.New("record is still referenced")
	// ErrInvalid means the payload was rejected by a store constraint,
	// for example a foreign key that points at a missing record.
	ErrInvalid = errors.New("invalid record")
	// ErrConflict means a uniqueness constraint was violated.
	ErrConflict = errors.New("constraint violation")
)

// ReferenceError reports a rejected delete. Dependent is the table that
// still holds references; it is empty when the database itself refused
// the delete.
type ReferenceError struct {
	Entity    string
	ID        int64
	Dependent string
	Column    string
	Count     int
	Err       error
}

func (e *ReferenceError) Error() string {
	if e.Dependent == "" {
		return fmt.Sprintf("%s %d is still referenced", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s %d is still referenced by %d %s row(s) via %s", e.Entity, e.ID, e.Count, e.Dependent, e.Column)
}

// Is makes errors.Is(err, ErrReferenced) hold for every ReferenceError.
func (e *ReferenceError) Is(target error) bool { return target == ErrReferenced }

func (e *ReferenceError) Unwrap() error { return e.Err }

func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}
