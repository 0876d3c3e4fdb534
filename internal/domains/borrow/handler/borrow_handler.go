package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/borrow/model"
	"library-backend/internal/domains/borrow/service"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/response"
)

type BorrowHandler struct {
	service service.ServiceInterface
}

func NewBorrowHandler(svc service.ServiceInterface) *BorrowHandler {
	return &BorrowHandler{
		service: svc,
	}
}

// Create handles POST /v1/borrows
func (h *BorrowHandler) Create(c *gin.Context) {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		_ = c.Error(apperror.New("Missing request body", http.StatusBadRequest))
		return
	}

	var req model.CreateBorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.New("Please provide all required fields", http.StatusBadRequest))
		return
	}

	borrow, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.forwardBorrowError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Book borrowed successfully", borrow)
}

// Summary handles GET /v1/borrows/summary
func (h *BorrowHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Borrowed books summary retrieved successfully", summary)
}

// forwardBorrowError maps the repository sentinels to typed errors for
// the normalization middleware.
func (h *BorrowHandler) forwardBorrowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrBookNotAvailable):
		_ = c.Error(apperror.New("Book not available", http.StatusNotFound))
	case errors.Is(err, model.ErrInsufficientStock):
		_ = c.Error(apperror.New("Not enough books available", http.StatusBadRequest))
	default:
		_ = c.Error(err)
	}
}
