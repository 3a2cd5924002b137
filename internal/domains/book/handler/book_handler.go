package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListBooks handles GET /api/v1/books?detail=true
func (h *Handler) ListBooks(c *gin.Context) {
	detail := c.Query("detail") == "true"

	books, err := h.service.ListBooks(c.Request.Context(), detail)
	if err != nil {
		response.InternalServerError(c, "Failed to retrieve books")
		return
	}

	response.Success(c, http.StatusOK, "Books retrieved successfully", books)
}

// GetBook handles GET /api/v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID format")
		return
	}

	book, err := h.service.GetBookDetails(c.Request.Context(), bookID)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalServerError(c, "Failed to retrieve book details")
		return
	}

	response.Success(c, http.StatusOK, "Book retrieved successfully", book)
}

// CreateBook handles POST /api/v1/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		if model.IsConflictError(err) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalServerError(c, "Failed to create book")
		return
	}

	response.Success(c, http.StatusCreated, "Book created successfully", book)
}

// BorrowCopy handles POST /api/v1/books/copies/:id/borrow. The borrowing
// user is identified by the X-User-Id header.
func (h *Handler) BorrowCopy(c *gin.Context) {
	copyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid copy ID format")
		return
	}

	userID, err := uuid.Parse(c.GetHeader("X-User-Id"))
	if err != nil {
		response.BadRequest(c, "Missing or invalid X-User-Id header")
		return
	}

	result, err := h.service.BorrowCopy(c.Request.Context(), copyID, userID)
	if err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.NotFound(c, err.Error())
		case model.IsConflictError(err):
			response.Conflict(c, err.Error())
		default:
			response.InternalServerError(c, "Failed to process borrowing request")
		}
		return
	}

	response.Success(c, http.StatusOK, "Copy borrowed successfully", result)
}

// ReturnCopy handles POST /api/v1/books/copies/:id/return
func (h *Handler) ReturnCopy(c *gin.Context) {
	copyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid copy ID format")
		return
	}

	result, err := h.service.ReturnCopy(c.Request.Context(), copyID)
	if err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.NotFound(c, err.Error())
		case model.IsConflictError(err):
			response.Conflict(c, err.Error())
		default:
			response.InternalServerError(c, "Failed to process return request")
		}
		return
	}

	response.Success(c, http.StatusOK, "Book returned successfully", result)
}
