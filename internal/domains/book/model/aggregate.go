package model

import (
	"github.com/google/uuid"
)

// MergeBookData combines three independently fetched collections into one
// composite read model per book, in a single in-memory pass keyed by book id.
// Copies are partitioned by status; borrower detail for the borrowed partition
// comes from the active-borrowings join, which arrives ordered soonest-due
// first, and that ordering is preserved.
func MergeBookData(
	books []Book,
	copiesByBook map[uuid.UUID][]CopyInfo,
	borrowingsByBook map[uuid.UUID][]BorrowedCopyInfo,
) []BookWithCopies {
	merged := make([]BookWithCopies, 0, len(books))

	for _, b := range books {
		var available []CopyInfo
		for _, c := range copiesByBook[b.ID] {
			if c.Status == CopyStatusAvailable {
				available = append(available, c)
			}
		}

		merged = append(merged, BookWithCopies{
			Book:            b,
			AvailableCopies: available,
			BorrowedCopies:  borrowingsByBook[b.ID],
		})
	}

	return merged
}
