package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
)

type Repository interface {
	// Read models
	GetAllBooksWithCopies(ctx context.Context) ([]model.BookWithCopies, error)
	GetBookByID(ctx context.Context, bookID uuid.UUID) (*model.BookWithCopies, error)

	// Mutations, each inside its own transaction
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookWithCopies, error)
	BorrowCopy(ctx context.Context, copyID, userID uuid.UUID) (*model.BorrowingResult, error)
	ReturnCopy(ctx context.Context, copyID uuid.UUID) (*model.ReturnResult, error)
}
