package repository

import (
	"context"

	"library-backend/internal/domains/borrow/model"
)

type RepositoryInterface interface {
	// CreateBorrow decrements the book's stock and records the loan in
	// one transaction. Returns ErrBookNotAvailable when the book does
	// not exist and ErrInsufficientStock when fewer than b.Quantity
	// copies remain.
	CreateBorrow(ctx context.Context, b *model.Borrow) (*model.Borrow, error)

	// Summary groups all borrows by book, summing quantities.
	Summary(ctx context.Context) ([]model.BorrowedBookSummary, error)
}
