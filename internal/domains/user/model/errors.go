package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when creating a user with an existing username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrEmailTaken is returned when creating a user with an existing email.
	ErrEmailTaken = errors.New("email already exists")

	// ErrUserHasActiveBorrowings blocks deactivation while loans are outstanding.
	ErrUserHasActiveBorrowings = errors.New("user has active borrowings")
)

func NewUserNotFoundError(userID uuid.UUID) error {
	return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
}

func NewUsernameTakenError(username string) error {
	return fmt.Errorf("%w: %s", ErrUsernameTaken, username)
}

func NewEmailTakenError(email string) error {
	return fmt.Errorf("%w: %s", ErrEmailTaken, email)
}

// NewActiveBorrowingsError names the outstanding-loan count blocking deactivation.
func NewActiveBorrowingsError(count int) error {
	return fmt.Errorf("%w: %d book(s) must be returned before deactivation", ErrUserHasActiveBorrowings, count)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsConflictError(err error) bool {
	return errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrUserHasActiveBorrowings)
}
