package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User is a library borrower. Users are soft-deactivated, never deleted,
// so borrowing history stays intact.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Phone     *string   `json:"phone" db:"phone"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (u User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// BorrowingRecord is one entry in a user's borrowing history, past or active.
type BorrowingRecord struct {
	BookTitle  string     `json:"book_title" db:"book_title"`
	BorrowedAt time.Time  `json:"borrowed_at" db:"borrowed_at"`
	DueDate    time.Time  `json:"due_date" db:"due_date"`
	ReturnedAt *time.Time `json:"returned_at" db:"returned_at"`
	IsActive   bool       `json:"is_active" db:"is_active"`
	IsOverdue  bool       `json:"is_overdue" db:"is_overdue"`
}
