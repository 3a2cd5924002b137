package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrBookNotFound is returned when a referenced book does not exist.
	ErrBookNotFound = errors.New("book not found")

	// ErrCopyNotFound is returned when a referenced copy does not exist.
	ErrCopyNotFound = errors.New("copy not found")

	// ErrCopyNotAvailable is returned when borrowing a copy that is not available.
	ErrCopyNotAvailable = errors.New("copy is not available")

	// ErrNoActiveBorrowing is returned when returning a copy with no open borrowing.
	ErrNoActiveBorrowing = errors.New("no active borrowing found")

	// ErrBorrowerNotFound is returned when the borrowing user does not exist.
	ErrBorrowerNotFound = errors.New("borrower not found")

	// ErrDuplicateISBN is returned when creating a book with an ISBN already registered.
	ErrDuplicateISBN = errors.New("book with this ISBN already exists")
)

func NewCopyNotFoundError(copyID uuid.UUID) error {
	return fmt.Errorf("%w: copy %s", ErrCopyNotFound, copyID)
}

func NewCopyNotAvailableError(copyID uuid.UUID, status CopyStatus) error {
	return fmt.Errorf("%w: copy %s has status %q", ErrCopyNotAvailable, copyID, status)
}

func NewNoActiveBorrowingError(copyID uuid.UUID) error {
	return fmt.Errorf("%w for copy %s", ErrNoActiveBorrowing, copyID)
}

func NewDuplicateISBNError(isbn string) error {
	return fmt.Errorf("%w: %s", ErrDuplicateISBN, isbn)
}

// IsNotFoundError reports whether err identifies a missing book, copy or borrower.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrBookNotFound) ||
		errors.Is(err, ErrCopyNotFound) ||
		errors.Is(err, ErrBorrowerNotFound)
}

// IsConflictError reports whether err is a state conflict the client can correct.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrCopyNotAvailable) ||
		errors.Is(err, ErrNoActiveBorrowing) ||
		errors.Is(err, ErrDuplicateISBN)
}
