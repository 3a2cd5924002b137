package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/user/model"
)

type ServiceInterface interface {
	ListUsers(ctx context.Context, activeOnly bool) ([]model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetBorrowingHistory(ctx context.Context, id uuid.UUID, includeActive bool) ([]model.BorrowingRecord, error)
}
