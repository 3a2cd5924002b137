package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"library-backend/internal/domains/book/model"
	infra "library-backend/internal/infrastructure/database"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	db infra.DB
}

// NewRepository creates a new PostgreSQL repository for the book domain.
func NewRepository(db infra.DB) Repository {
	return &postgresRepository{db: db}
}

// queryer lets the fetch helpers run against either the pool or an open
// transaction.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *postgresRepository) fetchBooks(ctx context.Context, q queryer, bookID *uuid.UUID) ([]model.Book, error) {
	query := `SELECT id, title, isbn, year_published FROM books`
	args := []any{}

	if bookID != nil {
		query += ` WHERE id = $1 ORDER BY id`
		args = append(args, *bookID)
	} else {
		query += ` ORDER BY title`
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.ISBN, &b.YearPublished); err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read book rows: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) fetchCopies(ctx context.Context, q queryer, bookID *uuid.UUID) (map[uuid.UUID][]model.CopyInfo, error) {
	query := `SELECT id, book_id, status, created_at FROM copies`
	args := []any{}

	if bookID != nil {
		query += ` WHERE book_id = $1`
		args = append(args, *bookID)
	}
	query += ` ORDER BY book_id, created_at, id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query copies: %w", err)
	}
	defer rows.Close()

	copyMap := make(map[uuid.UUID][]model.CopyInfo)
	for rows.Next() {
		var c model.CopyInfo
		if err := rows.Scan(&c.ID, &c.BookID, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan copy row: %w", err)
		}
		copyMap[c.BookID] = append(copyMap[c.BookID], c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read copy rows: %w", err)
	}

	return copyMap, nil
}

// fetchActiveBorrowings joins borrowings through copies, users and books,
// restricted to open loans, ordered soonest-due first within each book.
func (r *postgresRepository) fetchActiveBorrowings(ctx context.Context, q queryer, bookID *uuid.UUID) (map[uuid.UUID][]model.BorrowedCopyInfo, error) {
	query := `
		SELECT c.book_id, b.title, br.copy_id, br.user_id, br.borrowed_at, br.due_date,
		       u.first_name, u.last_name, u.email,
		       CASE WHEN br.due_date < CURRENT_DATE THEN true ELSE false END AS is_overdue
		FROM borrowings br
		JOIN copies c ON br.copy_id = c.id
		JOIN users u ON br.user_id = u.id
		JOIN books b ON c.book_id = b.id
		WHERE br.returned_at IS NULL`
	args := []any{}

	if bookID != nil {
		query += ` AND c.book_id = $1`
		args = append(args, *bookID)
	}
	query += ` ORDER BY c.book_id, br.due_date`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query active borrowings: %w", err)
	}
	defer rows.Close()

	borrowedMap := make(map[uuid.UUID][]model.BorrowedCopyInfo)
	for rows.Next() {
		var ownerBookID uuid.UUID
		var bc model.BorrowedCopyInfo
		if err := rows.Scan(
			&ownerBookID,
			&bc.BookTitle,
			&bc.CopyID,
			&bc.BorrowerID,
			&bc.BorrowedAt,
			&bc.DueDate,
			&bc.BorrowerFirstName,
			&bc.BorrowerLastName,
			&bc.BorrowerEmail,
			&bc.IsOverdue,
		); err != nil {
			return nil, fmt.Errorf("failed to scan borrowing row: %w", err)
		}
		borrowedMap[ownerBookID] = append(borrowedMap[ownerBookID], bc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read borrowing rows: %w", err)
	}

	return borrowedMap, nil
}

// GetAllBooksWithCopies batch-fetches books, copies and active borrowings in
// three queries and merges them in memory, avoiding per-book round trips.
func (r *postgresRepository) GetAllBooksWithCopies(ctx context.Context) ([]model.BookWithCopies, error) {
	books, err := r.fetchBooks(ctx, r.db, nil)
	if err != nil {
		return nil, err
	}

	copies, err := r.fetchCopies(ctx, r.db, nil)
	if err != nil {
		return nil, err
	}

	borrowings, err := r.fetchActiveBorrowings(ctx, r.db, nil)
	if err != nil {
		return nil, err
	}

	return model.MergeBookData(books, copies, borrowings), nil
}

// GetBookByID runs the same three queries scoped to one book.
func (r *postgresRepository) GetBookByID(ctx context.Context, bookID uuid.UUID) (*model.BookWithCopies, error) {
	books, err := r.fetchBooks(ctx, r.db, &bookID)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrBookNotFound, bookID)
	}

	copies, err := r.fetchCopies(ctx, r.db, &bookID)
	if err != nil {
		return nil, err
	}

	borrowings, err := r.fetchActiveBorrowings(ctx, r.db, &bookID)
	if err != nil {
		return nil, err
	}

	merged := model.MergeBookData(books, copies, borrowings)
	return &merged[0], nil
}

// CreateBook inserts the book row and its initial copies in one transaction.
// A unique-ISBN violation surfaces as a domain conflict error.
func (r *postgresRepository) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookWithCopies, error) {
	bookID, err := database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (uuid.UUID, error) {
		var id uuid.UUID
		err := tx.QueryRow(ctx,
			`INSERT INTO books (title, isbn, year_published) VALUES ($1, $2, $3) RETURNING id`,
			req.Title, req.ISBN, req.YearPublished,
		).Scan(&id)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "isbn") {
				isbn := ""
				if req.ISBN != nil {
					isbn = *req.ISBN
				}
				return uuid.Nil, model.NewDuplicateISBNError(isbn)
			}
			return uuid.Nil, fmt.Errorf("failed to insert book: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO copies (book_id) SELECT $1 FROM generate_series(1, $2)`,
			id, req.CopiesCount,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert copies: %w", err)
		}

		return id, nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetBookByID(ctx, bookID)
}

// BorrowCopy locks the single copy row, verifies availability, flips the
// status and records the ledger entry. The row lock serializes concurrent
// borrow attempts on the same copy; a competing transaction re-reads the
// committed "borrowed" status and fails cleanly.
func (r *postgresRepository) BorrowCopy(ctx context.Context, copyID, userID uuid.UUID) (*model.BorrowingResult, error) {
	return database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.BorrowingResult, error) {
		var lockedID uuid.UUID
		var status model.CopyStatus
		err := tx.QueryRow(ctx,
			`SELECT id, status FROM copies WHERE id = $1 FOR UPDATE`,
			copyID,
		).Scan(&lockedID, &status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.NewCopyNotFoundError(copyID)
			}
			return nil, fmt.Errorf("failed to lock copy: %w", err)
		}

		if status != model.CopyStatusAvailable {
			return nil, model.NewCopyNotAvailableError(copyID, status)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE copies SET status = $2 WHERE id = $1`,
			copyID, model.CopyStatusBorrowed,
		); err != nil {
			return nil, fmt.Errorf("failed to update copy status: %w", err)
		}

		dueDate := time.Now().AddDate(0, 0, model.LoanPeriodDays)

		result := &model.BorrowingResult{CopyID: copyID, DueDate: dueDate}
		err = tx.QueryRow(ctx,
			`INSERT INTO borrowings (copy_id, user_id, due_date) VALUES ($1, $2, $3)
			 RETURNING id, borrowed_at`,
			copyID, userID, dueDate,
		).Scan(&result.BorrowingID, &result.BorrowedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" && strings.Contains(pgErr.ConstraintName, "user") {
				return nil, fmt.Errorf("borrower %s: %w", userID, model.ErrBorrowerNotFound)
			}
			return nil, fmt.Errorf("failed to insert borrowing: %w", err)
		}

		return result, nil
	})
}

// ReturnCopy closes the unique open borrowing for the copy and flips the copy
// back to available, both inside one transaction.
func (r *postgresRepository) ReturnCopy(ctx context.Context, copyID uuid.UUID) (*model.ReturnResult, error) {
	return database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.ReturnResult, error) {
		var borrowingID uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT id FROM borrowings WHERE copy_id = $1 AND returned_at IS NULL FOR UPDATE`,
			copyID,
		).Scan(&borrowingID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.NewNoActiveBorrowingError(copyID)
			}
			return nil, fmt.Errorf("failed to lock borrowing: %w", err)
		}

		returnedAt := time.Now()

		if _, err := tx.Exec(ctx,
			`UPDATE borrowings SET returned_at = $2 WHERE id = $1`,
			borrowingID, returnedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to close borrowing: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE copies SET status = $2 WHERE id = $1`,
			copyID, model.CopyStatusAvailable,
		); err != nil {
			return nil, fmt.Errorf("failed to update copy status: %w", err)
		}

		return &model.ReturnResult{
			BorrowingID: borrowingID,
			CopyID:      copyID,
			ReturnedAt:  returnedAt,
		}, nil
	})
}
