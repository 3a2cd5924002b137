package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
)

// BookService orchestrates the book domain. It owns no business rules of its
// own beyond resolving the view variant; correctness lives in the repository
// transactions.
type BookService struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) ServiceInterface {
	return &BookService{repo: repo}
}

// ListBooks returns either summary or detailed views, resolved once here.
func (s *BookService) ListBooks(ctx context.Context, detail bool) ([]model.BookView, error) {
	books, err := s.repo.GetAllBooksWithCopies(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list books")
		return nil, err
	}

	views := make([]model.BookView, 0, len(books))
	for _, b := range books {
		if detail {
			views = append(views, model.NewBookDetails(b))
		} else {
			views = append(views, model.NewBookSummary(b))
		}
	}

	return views, nil
}

func (s *BookService) GetBookDetails(ctx context.Context, bookID uuid.UUID) (*model.BookDetails, error) {
	book, err := s.repo.GetBookByID(ctx, bookID)
	if err != nil {
		if !model.IsNotFoundError(err) {
			log.Error().Err(err).Str("book_id", bookID.String()).Msg("failed to get book")
		}
		return nil, err
	}

	details := model.NewBookDetails(*book)
	return &details, nil
}

func (s *BookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookDetails, error) {
	book, err := s.repo.CreateBook(ctx, req)
	if err != nil {
		if !model.IsConflictError(err) {
			log.Error().Err(err).Str("title", req.Title).Msg("failed to create book")
		}
		return nil, err
	}

	log.Info().
		Str("book_id", book.ID.String()).
		Str("title", book.Title).
		Int("copies", book.TotalCopies()).
		Msg("book created")

	details := model.NewBookDetails(*book)
	return &details, nil
}

func (s *BookService) BorrowCopy(ctx context.Context, copyID, userID uuid.UUID) (*model.BorrowingResult, error) {
	result, err := s.repo.BorrowCopy(ctx, copyID, userID)
	if err != nil {
		if !model.IsNotFoundError(err) && !model.IsConflictError(err) {
			log.Error().Err(err).Str("copy_id", copyID.String()).Msg("borrow failed")
		}
		return nil, err
	}

	log.Info().
		Str("copy_id", copyID.String()).
		Str("user_id", userID.String()).
		Str("borrowing_id", result.BorrowingID.String()).
		Msg("copy borrowed")

	return result, nil
}

func (s *BookService) ReturnCopy(ctx context.Context, copyID uuid.UUID) (*model.ReturnResult, error) {
	result, err := s.repo.ReturnCopy(ctx, copyID)
	if err != nil {
		if !model.IsNotFoundError(err) && !model.IsConflictError(err) {
			log.Error().Err(err).Str("copy_id", copyID.String()).Msg("return failed")
		}
		return nil, err
	}

	log.Info().
		Str("copy_id", copyID.String()).
		Str("borrowing_id", result.BorrowingID.String()).
		Msg("copy returned")

	return result, nil
}
