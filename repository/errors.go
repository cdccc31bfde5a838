package repository

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// Sentinel errors surfaced by the repositories. Store-level integrity errors
// are translated to one of these; callers branch with errors.Is.
var (
	// ErrNotFound is returned by lookups against a nonexistent key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateIdentity is returned when a username or email is already taken.
	ErrDuplicateIdentity = errors.New("username or email already exists")
	// ErrAlreadyEnrolled is returned when a (student, course) enrollment already exists.
	ErrAlreadyEnrolled = errors.New("student already enrolled in course")
	// ErrInvalidRole is returned when a role is not one of admin, student, instructor.
	ErrInvalidRole = errors.New("unrecognized role")
	// ErrStorageConflict is returned for any other integrity violation from the store.
	ErrStorageConflict = errors.New("storage integrity conflict")
)

// translateConstraint maps a sqlite constraint violation to a domain error.
// UNIQUE violations become uniqueErr; any other constraint failure becomes
// ErrStorageConflict. Non-constraint errors pass through unchanged.
func translateConstraint(err error, uniqueErr error) error {
	var se sqlite3.Error
	if !errors.As(err, &se) || se.Code != sqlite3.ErrConstraint {
		return err
	}
	switch se.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return uniqueErr
	default:
		return ErrStorageConflict
	}
}
