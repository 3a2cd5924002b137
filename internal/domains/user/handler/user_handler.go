package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListUsers handles GET /api/v1/users?active_only=true
func (h *Handler) ListUsers(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "true") == "true"

	users, err := h.service.ListUsers(c.Request.Context(), activeOnly)
	if err != nil {
		response.InternalServerError(c, "Failed to retrieve users")
		return
	}

	response.Success(c, http.StatusOK, "Users retrieved successfully", users)
}

// GetUser handles GET /api/v1/users/:id
func (h *Handler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID format")
		return
	}

	user, err := h.service.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalServerError(c, "Failed to retrieve user")
		return
	}

	response.Success(c, http.StatusOK, "User retrieved successfully", user)
}

// CreateUser handles POST /api/v1/users
func (h *Handler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		if model.IsConflictError(err) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalServerError(c, "Failed to create user")
		return
	}

	response.Success(c, http.StatusCreated, "User created successfully", user)
}

// UpdateUser handles PATCH /api/v1/users/:id with partial fields.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID format")
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.NotFound(c, err.Error())
		case model.IsConflictError(err):
			response.Conflict(c, err.Error())
		default:
			response.InternalServerError(c, "Failed to update user")
		}
		return
	}

	response.Success(c, http.StatusOK, "User updated successfully", user)
}

// DeactivateUser handles POST /api/v1/users/:id/deactivate
func (h *Handler) DeactivateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID format")
		return
	}

	user, err := h.service.DeactivateUser(c.Request.Context(), id)
	if err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.NotFound(c, err.Error())
		case model.IsConflictError(err):
			response.Conflict(c, err.Error())
		default:
			response.InternalServerError(c, "Failed to deactivate user")
		}
		return
	}

	response.Success(c, http.StatusOK, "User deactivated successfully", user)
}

// GetBorrowingHistory handles GET /api/v1/users/:id/borrowings?include_active=true
func (h *Handler) GetBorrowingHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID format")
		return
	}

	includeActive := c.DefaultQuery("include_active", "true") == "true"

	history, err := h.service.GetBorrowingHistory(c.Request.Context(), id, includeActive)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalServerError(c, "Failed to retrieve borrowing history")
		return
	}

	if history == nil {
		history = []model.BorrowingRecord{}
	}

	response.Success(c, http.StatusOK, "Borrowing history retrieved successfully", history)
}
