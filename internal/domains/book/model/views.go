package model

import (
	"github.com/google/uuid"
)

// BookView is the tagged variant the service returns: either a summary
// (counts only) or the detailed per-copy breakdown. The variant is resolved
// once, where the read model is assembled, so handlers never branch on shape.
type BookView interface {
	bookView()
}

// BookSummary carries derived counts only, no per-copy detail.
type BookSummary struct {
	ID                   uuid.UUID `json:"id"`
	Title                string    `json:"title"`
	ISBN                 *string   `json:"isbn"`
	YearPublished        *int      `json:"year_published"`
	TotalCopies          int       `json:"total_copies"`
	AvailableCopiesCount int       `json:"available_copies_count"`
	BorrowedCopiesCount  int       `json:"borrowed_copies_count"`
	IsAvailable          bool      `json:"is_available"`
	AvailabilityStatus   string    `json:"availability_status"`
}

func (BookSummary) bookView() {}

// BookDetails extends the summary with the per-copy partitions.
type BookDetails struct {
	BookSummary
	AvailableCopies []CopyInfo         `json:"available_copies"`
	BorrowedCopies  []BorrowedCopyInfo `json:"borrowed_copies"`
}

func (BookDetails) bookView() {}

// NewBookSummary derives the summary view from the composite read model.
func NewBookSummary(b BookWithCopies) BookSummary {
	return BookSummary{
		ID:                   b.ID,
		Title:                b.Title,
		ISBN:                 b.ISBN,
		YearPublished:        b.YearPublished,
		TotalCopies:          b.TotalCopies(),
		AvailableCopiesCount: b.AvailableCopiesCount(),
		BorrowedCopiesCount:  b.BorrowedCopiesCount(),
		IsAvailable:          b.IsAvailable(),
		AvailabilityStatus:   b.AvailabilityStatus(),
	}
}

// NewBookDetails derives the detailed view from the composite read model.
func NewBookDetails(b BookWithCopies) BookDetails {
	available := b.AvailableCopies
	if available == nil {
		available = []CopyInfo{}
	}
	borrowed := b.BorrowedCopies
	if borrowed == nil {
		borrowed = []BorrowedCopyInfo{}
	}

	return BookDetails{
		BookSummary:     NewBookSummary(b),
		AvailableCopies: available,
		BorrowedCopies:  borrowed,
	}
}
