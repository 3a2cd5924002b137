package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"library-backend/internal/domains/user/model"
	infra "library-backend/internal/infrastructure/database"
	"library-backend/pkg/database"
)

const userColumns = `id, username, email, first_name, last_name, phone, active, created_at`

type postgresRepository struct {
	db infra.DB
}

// NewRepository creates a new PostgreSQL repository for the user domain.
func NewRepository(db infra.DB) Repository {
	return &postgresRepository{db: db}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.Active, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepository) ListUsers(ctx context.Context, activeOnly bool) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	if activeOnly {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.Active, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}

	return users, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewUserNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

// CreateUser inserts the user, translating unique violations into distinct
// domain errors identifying the colliding field.
func (r *postgresRepository) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, first_name, last_name, phone)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		req.Username, req.Email, req.FirstName, req.LastName, req.Phone,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch {
			case strings.Contains(pgErr.ConstraintName, "username"):
				return nil, model.NewUsernameTakenError(req.Username)
			case strings.Contains(pgErr.ConstraintName, "email"):
				return nil, model.NewEmailTakenError(req.Email)
			}
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return u, nil
}

// UpdateUser builds the SET clause from only the supplied fields. An empty
// request is a no-op fetch; an unknown id maps to ErrUserNotFound.
func (r *postgresRepository) UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	if req.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	setClauses := []string{}
	args := []any{id}
	idx := 2

	addField := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.Username != nil {
		addField("username", *req.Username)
	}
	if req.Email != nil {
		addField("email", *req.Email)
	}
	if req.FirstName != nil {
		addField("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		addField("last_name", *req.LastName)
	}
	if req.Phone != nil {
		addField("phone", *req.Phone)
	}

	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(setClauses, ", "), userColumns,
	)

	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewUserNotFoundError(id)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch {
			case strings.Contains(pgErr.ConstraintName, "username"):
				return nil, model.NewUsernameTakenError(*req.Username)
			case strings.Contains(pgErr.ConstraintName, "email"):
				return nil, model.NewEmailTakenError(*req.Email)
			}
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}

func (r *postgresRepository) CountActiveBorrowings(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM borrowings WHERE user_id = $1 AND returned_at IS NULL`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active borrowings: %w", err)
	}
	return count, nil
}

// GetBorrowingHistory lists a user's loans, most recent first, with active
// and overdue flags computed in SQL.
func (r *postgresRepository) GetBorrowingHistory(ctx context.Context, userID uuid.UUID, includeActive bool) ([]model.BorrowingRecord, error) {
	query := `
		SELECT b.title, br.borrowed_at, br.due_date, br.returned_at,
		       CASE WHEN br.returned_at IS NULL THEN true ELSE false END AS is_active,
		       CASE WHEN br.due_date < CURRENT_DATE AND br.returned_at IS NULL THEN true ELSE false END AS is_overdue
		FROM borrowings br
		JOIN copies c ON br.copy_id = c.id
		JOIN books b ON c.book_id = b.id
		WHERE br.user_id = $1`

	if !includeActive {
		query += ` AND br.returned_at IS NOT NULL`
	}
	query += ` ORDER BY br.borrowed_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query borrowing history: %w", err)
	}
	defer rows.Close()

	var history []model.BorrowingRecord
	for rows.Next() {
		var rec model.BorrowingRecord
		if err := rows.Scan(&rec.BookTitle, &rec.BorrowedAt, &rec.DueDate, &rec.ReturnedAt, &rec.IsActive, &rec.IsOverdue); err != nil {
			return nil, fmt.Errorf("failed to scan borrowing record: %w", err)
		}
		history = append(history, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read borrowing records: %w", err)
	}

	return history, nil
}

// DeactivateUser soft-deactivates a user, but only when no loans are
// outstanding. The count check and the flag flip run in one transaction so a
// concurrent borrow cannot slip between them.
func (r *postgresRepository) DeactivateUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.User, error) {
		var count int
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM borrowings WHERE user_id = $1 AND returned_at IS NULL`,
			userID,
		).Scan(&count)
		if err != nil {
			return nil, fmt.Errorf("failed to count active borrowings: %w", err)
		}

		if count > 0 {
			return nil, model.NewActiveBorrowingsError(count)
		}

		u, err := scanUser(tx.QueryRow(ctx,
			`UPDATE users SET active = false WHERE id = $1 RETURNING `+userColumns,
			userID,
		))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.NewUserNotFoundError(userID)
			}
			return nil, fmt.Errorf("failed to deactivate user: %w", err)
		}

		return u, nil
	})
}
