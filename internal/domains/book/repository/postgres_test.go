package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book/model"
)

func newMockRepo(t *testing.T) (Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewRepository(mock), mock
}

func TestBorrowCopySuccess(t *testing.T) {
	repo, mock := newMockRepo(t)
	copyID := uuid.New()
	userID := uuid.New()
	borrowingID := uuid.New()
	borrowedAt := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, status FROM copies WHERE id = $1 FOR UPDATE`)).
		WithArgs(copyID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "status"}).
			AddRow(copyID, model.CopyStatusAvailable))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE copies SET status = $2 WHERE id = $1`)).
		WithArgs(copyID, model.CopyStatusBorrowed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO borrowings (copy_id, user_id, due_date)`)).
		WithArgs(copyID, userID, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "borrowed_at"}).
			AddRow(borrowingID, borrowedAt))
	mock.ExpectCommit()

	result, err := repo.BorrowCopy(context.Background(), copyID, userID)
	require.NoError(t, err)
	assert.Equal(t, borrowingID, result.BorrowingID)
	assert.Equal(t, copyID, result.CopyID)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, model.LoanPeriodDays), result.DueDate, time.Minute)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBorrowCopyNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	copyID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, status FROM copies WHERE id = $1 FOR UPDATE`)).
		WithArgs(copyID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "status"}))
	mock.ExpectRollback()

	result, err := repo.BorrowCopy(context.Background(), copyID, uuid.New())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, model.ErrCopyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBorrowCopyAlreadyBorrowed(t *testing.T) {
	repo, mock := newMockRepo(t)
	copyID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, status FROM copies WHERE id = $1 FOR UPDATE`)).
		WithArgs(copyID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "status"}).
			AddRow(copyID, model.CopyStatusBorrowed))
	mock.ExpectRollback()

	result, err := repo.BorrowCopy(context.Background(), copyID, uuid.New())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, model.ErrCopyNotAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBorrowCopyUnknownBorrower(t *testing.T) {
	repo, mock := newMockRepo(t)
	copyID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, status FROM copies WHERE id = $1 FOR UPDATE`)).
		WithArgs(copyID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "status"}).
			AddRow(copyID, model.CopyStatusAvailable))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE copies SET status = $2 WHERE id = $1`)).
		WithArgs(copyID, model.CopyStatusBorrowed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO borrowings (copy_id, user_id, due_date)`)).
		WithArgs(copyID, userID, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "borrowings_user_id_fkey"})
	mock.ExpectRollback()

	result, err := repo.BorrowCopy(context.Background(), copyID, userID)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, model.ErrBorrowerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReturnCopySuccess(t *testing.T) {
	repo, mock := newMockRepo(t)
	copyID := uuid.New()
	borrowingID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM borrowings WHERE copy_id = $1 AND returned_at IS NULL FOR UPDATE`)).
		WithArgs(copyID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(borrowingID))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE borrowings SET returned_at = $2 WHERE id = $1`)).
		WithArgs(borrowingID, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE copies SET status = $2 WHERE id = $1`)).
		WithArgs(copyID, model.CopyStatusAvailable).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	result, err := repo.ReturnCopy(context.Background(), copyID)
	require.NoError(t, err)
	assert.Equal(t, borrowingID, result.BorrowingID)
	assert.Equal(t, copyID, result.CopyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReturnCopyNoActiveBorrowing(t *testing.T) {
	repo, mock := newMockRepo(t)
	copyID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM borrowings WHERE copy_id = $1 AND returned_at IS NULL FOR UPDATE`)).
		WithArgs(copyID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	result, err := repo.ReturnCopy(context.Background(), copyID)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, model.ErrNoActiveBorrowing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookDuplicateISBN(t *testing.T) {
	repo, mock := newMockRepo(t)
	isbn := "9780306406157"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO books (title, isbn, year_published)`)).
		WithArgs("Dup", &isbn, (*int)(nil)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "books_isbn_key"})
	mock.ExpectRollback()

	result, err := repo.CreateBook(context.Background(), model.CreateBookRequest{
		Title: "Dup", ISBN: &isbn, CopiesCount: 2,
	})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, model.ErrDuplicateISBN)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookSuccess(t *testing.T) {
	repo, mock := newMockRepo(t)
	bookID := uuid.New()
	copyID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO books (title, isbn, year_published)`)).
		WithArgs("Fresh", (*string)(nil), (*int)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(bookID))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO copies (book_id) SELECT $1 FROM generate_series(1, $2)`)).
		WithArgs(bookID, 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	// re-read after commit
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, isbn, year_published FROM books WHERE id = $1`)).
		WithArgs(bookID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "isbn", "year_published"}).
			AddRow(bookID, "Fresh", nil, nil))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, book_id, status, created_at FROM copies WHERE book_id = $1`)).
		WithArgs(bookID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "book_id", "status", "created_at"}).
			AddRow(copyID, bookID, model.CopyStatusAvailable, now))
	mock.ExpectQuery(`FROM borrowings br`).
		WithArgs(bookID).
		WillReturnRows(pgxmock.NewRows([]string{
			"book_id", "title", "copy_id", "user_id", "borrowed_at", "due_date",
			"first_name", "last_name", "email", "is_overdue",
		}))

	result, err := repo.CreateBook(context.Background(), model.CreateBookRequest{
		Title: "Fresh", CopiesCount: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, bookID, result.ID)
	assert.Equal(t, 1, result.TotalCopies())
	assert.Equal(t, "Fully available", result.AvailabilityStatus())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	bookID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, isbn, year_published FROM books WHERE id = $1`)).
		WithArgs(bookID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "isbn", "year_published"}))

	result, err := repo.GetBookByID(context.Background(), bookID)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllBooksWithCopies(t *testing.T) {
	repo, mock := newMockRepo(t)
	bookID := uuid.New()
	copyID := uuid.New()
	otherCopyID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, isbn, year_published FROM books ORDER BY title`)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "isbn", "year_published"}).
			AddRow(bookID, "Mixed", nil, nil))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, book_id, status, created_at FROM copies ORDER BY book_id, created_at, id`)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "book_id", "status", "created_at"}).
			AddRow(copyID, bookID, model.CopyStatusAvailable, now).
			AddRow(otherCopyID, bookID, model.CopyStatusBorrowed, now))
	mock.ExpectQuery(`FROM borrowings br`).
		WillReturnRows(pgxmock.NewRows([]string{
			"book_id", "title", "copy_id", "user_id", "borrowed_at", "due_date",
			"first_name", "last_name", "email", "is_overdue",
		}).AddRow(bookID, "Mixed", otherCopyID, userID, now, now.AddDate(0, 0, -1),
			"Josef", "K", "josef@example.com", true))

	books, err := repo.GetAllBooksWithCopies(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "1 of 2 available", books[0].AvailabilityStatus())
	require.Len(t, books[0].BorrowedCopies, 1)
	assert.True(t, books[0].BorrowedCopies[0].IsOverdue)
	assert.NoError(t, mock.ExpectationsWereMet())
}
