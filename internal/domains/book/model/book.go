package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LoanPeriodDays is the fixed loan period applied at borrow time.
const LoanPeriodDays = 30

// CopyStatus represents the lending state of a single physical copy.
// Status is the only mutable field on a copy and the one concurrent
// borrow/return attempts race on.
type CopyStatus string

const (
	CopyStatusAvailable CopyStatus = "available"
	CopyStatusBorrowed  CopyStatus = "borrowed"
)

func (s CopyStatus) IsValid() bool {
	switch s {
	case CopyStatusAvailable, CopyStatusBorrowed:
		return true
	}
	return false
}

func (s CopyStatus) String() string {
	return string(s)
}

// Book is the base catalog entity. Immutable after creation except
// through copy additions.
type Book struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	ISBN          *string   `json:"isbn" db:"isbn"`
	YearPublished *int      `json:"year_published" db:"year_published"`
}

// CopyInfo describes one available copy of a book.
type CopyInfo struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	BookID    uuid.UUID  `json:"book_id" db:"book_id"`
	Status    CopyStatus `json:"status" db:"status"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// BorrowedCopyInfo describes a currently-borrowed copy together with its
// borrower and due-date state.
type BorrowedCopyInfo struct {
	CopyID            uuid.UUID `json:"copy_id" db:"copy_id"`
	BookTitle         string    `json:"book_title" db:"book_title"`
	BorrowerID        uuid.UUID `json:"borrower_id" db:"borrower_id"`
	BorrowerFirstName string    `json:"borrower_first_name" db:"borrower_first_name"`
	BorrowerLastName  string    `json:"borrower_last_name" db:"borrower_last_name"`
	BorrowerEmail     string    `json:"borrower_email" db:"borrower_email"`
	BorrowedAt        time.Time `json:"borrowed_at" db:"borrowed_at"`
	DueDate           time.Time `json:"due_date" db:"due_date"`
	IsOverdue         bool      `json:"is_overdue" db:"is_overdue"`
}

func (b BorrowedCopyInfo) BorrowerFullName() string {
	return fmt.Sprintf("%s %s", b.BorrowerFirstName, b.BorrowerLastName)
}

// DaysUntilDue returns days left until the due date, negative when overdue.
func (b BorrowedCopyInfo) DaysUntilDue(now time.Time) int {
	return int(b.DueDate.Sub(now).Hours() / 24)
}

// BookWithCopies is the composite read model: one book with its copies
// partitioned into available and currently-borrowed. Counts are always
// derived from the partitions, never stored.
type BookWithCopies struct {
	Book
	AvailableCopies []CopyInfo
	BorrowedCopies  []BorrowedCopyInfo
}

func (b BookWithCopies) TotalCopies() int {
	return len(b.AvailableCopies) + len(b.BorrowedCopies)
}

func (b BookWithCopies) AvailableCopiesCount() int {
	return len(b.AvailableCopies)
}

func (b BookWithCopies) BorrowedCopiesCount() int {
	return len(b.BorrowedCopies)
}

func (b BookWithCopies) IsAvailable() bool {
	return b.AvailableCopiesCount() > 0
}

// AvailabilityStatus renders the human-readable availability summary.
func (b BookWithCopies) AvailabilityStatus() string {
	available := b.AvailableCopiesCount()
	total := b.TotalCopies()

	switch {
	case available == 0:
		return "Not available"
	case available == total:
		return "Fully available"
	default:
		return fmt.Sprintf("%d of %d available", available, total)
	}
}

// BorrowingResult is returned by a successful borrow operation.
type BorrowingResult struct {
	BorrowingID uuid.UUID `json:"borrowing_id"`
	CopyID      uuid.UUID `json:"copy_id"`
	BorrowedAt  time.Time `json:"borrowed_at"`
	DueDate     time.Time `json:"due_date"`
}

// ReturnResult is returned by a successful return operation.
type ReturnResult struct {
	BorrowingID uuid.UUID `json:"borrowing_id"`
	CopyID      uuid.UUID `json:"copy_id"`
	ReturnedAt  time.Time `json:"returned_at"`
}
