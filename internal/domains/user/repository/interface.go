package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/user/model"
)

type Repository interface {
	ListUsers(ctx context.Context, activeOnly bool) ([]model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error)

	CountActiveBorrowings(ctx context.Context, userID uuid.UUID) (int, error)
	GetBorrowingHistory(ctx context.Context, userID uuid.UUID, includeActive bool) ([]model.BorrowingRecord, error)
	DeactivateUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
}
