package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/response"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{
		service: svc,
	}
}

// Create handles POST /v1/books
func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.New("Invalid request body", http.StatusBadRequest))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Book created successfully", created)
}

// List handles GET /v1/books?filter=&sortBy=&sort=asc|desc&limit=N
func (h *BookHandler) List(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	q := model.ListBooksQuery{
		Filter: c.Query("filter"),
		SortBy: c.Query("sortBy"),
		Sort:   c.DefaultQuery("sort", "asc"),
		Limit:  limit,
	}

	books, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Books retrieved successfully", books)
}

// GetByID handles GET /v1/books/:bookId
func (h *BookHandler) GetByID(c *gin.Context) {
	id, ok := h.parseBookID(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.forwardBookError(c, err)
		return
	}

	// Plural on a single fetch, kept for wire compatibility with
	// existing clients.
	response.Success(c, http.StatusOK, "Books retrieved successfully", b)
}

// Update handles PUT and PATCH /v1/books/:bookId
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := h.parseBookID(c)
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.New("Invalid request body", http.StatusBadRequest))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.forwardBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Book updated successfully", updated)
}

// Delete handles DELETE /v1/books/:bookId
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := h.parseBookID(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.forwardBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Book deleted successfully", deleted)
}

func (h *BookHandler) parseBookID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		_ = c.Error(apperror.New("Invalid book id format", http.StatusBadRequest))
		return uuid.Nil, false
	}
	return id, true
}

// forwardBookError maps the repository sentinel to a typed error for
// the normalization middleware; everything else passes through as is.
func (h *BookHandler) forwardBookError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrBookNotFound) {
		_ = c.Error(apperror.New("Book not found", http.StatusNotFound))
		return
	}
	_ = c.Error(err)
}
