package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/repository"
)

type UserService struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) ServiceInterface {
	return &UserService{repo: repo}
}

func (s *UserService) ListUsers(ctx context.Context, activeOnly bool) ([]model.User, error) {
	users, err := s.repo.ListUsers(ctx, activeOnly)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !model.IsNotFoundError(err) {
			log.Error().Err(err).Str("user_id", id.String()).Msg("failed to get user")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	user, err := s.repo.CreateUser(ctx, req)
	if err != nil {
		if !model.IsConflictError(err) {
			log.Error().Err(err).Str("username", req.Username).Msg("failed to create user")
		}
		return nil, err
	}

	log.Info().
		Str("user_id", user.ID.String()).
		Str("username", user.Username).
		Msg("user created")

	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.UpdateUser(ctx, id, req)
	if err != nil {
		if !model.IsNotFoundError(err) && !model.IsConflictError(err) {
			log.Error().Err(err).Str("user_id", id.String()).Msg("failed to update user")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeactivateUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.DeactivateUser(ctx, id)
	if err != nil {
		if !model.IsNotFoundError(err) && !model.IsConflictError(err) {
			log.Error().Err(err).Str("user_id", id.String()).Msg("failed to deactivate user")
		}
		return nil, err
	}

	log.Info().Str("user_id", id.String()).Msg("user deactivated")
	return user, nil
}

func (s *UserService) GetBorrowingHistory(ctx context.Context, id uuid.UUID, includeActive bool) ([]model.BorrowingRecord, error) {
	// Surface a proper not-found for unknown users instead of an empty list.
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	history, err := s.repo.GetBorrowingHistory(ctx, id, includeActive)
	if err != nil {
		log.Error().Err(err).Str("user_id", id.String()).Msg("failed to get borrowing history")
		return nil, err
	}
	return history, nil
}
