package service

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"library-backend/internal/domains/borrow/model"
	"library-backend/internal/domains/borrow/repository"
	"library-backend/internal/shared/apperror"
)

type borrowService struct {
	repo repository.RepositoryInterface
}

func NewBorrowService(repo repository.RepositoryInterface) ServiceInterface {
	return &borrowService{
		repo: repo,
	}
}

// Create validates the borrow request and delegates the stock check,
// decrement and loan insert to the repository transaction.
func (s *borrowService) Create(ctx context.Context, req *model.CreateBorrowRequest) (*model.Borrow, error) {
	if !req.HasRequiredFields() {
		return nil, apperror.New("Please provide all required fields", http.StatusBadRequest)
	}

	if req.Quantity < 0 {
		return nil, apperror.New("Quantity must be a positive integer", http.StatusBadRequest)
	}

	bookID, err := uuid.Parse(req.Book)
	if err != nil {
		// An unparseable id can never reference a book.
		return nil, apperror.New("Book not available", http.StatusNotFound)
	}

	return s.repo.CreateBorrow(ctx, &model.Borrow{
		BookID:   bookID,
		Quantity: req.Quantity,
		DueDate:  req.DueDate,
	})
}

func (s *borrowService) Summary(ctx context.Context) ([]model.BorrowedBookSummary, error) {
	return s.repo.Summary(ctx)
}
