package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
)

type ServiceInterface interface {
	ListBooks(ctx context.Context, detail bool) ([]model.BookView, error)
	GetBookDetails(ctx context.Context, bookID uuid.UUID) (*model.BookDetails, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookDetails, error)
	BorrowCopy(ctx context.Context, copyID, userID uuid.UUID) (*model.BorrowingResult, error)
	ReturnCopy(ctx context.Context, copyID uuid.UUID) (*model.ReturnResult, error)
}
