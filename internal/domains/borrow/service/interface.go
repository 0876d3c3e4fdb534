package service

import (
	"context"

	"library-backend/internal/domains/borrow/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateBorrowRequest) (*model.Borrow, error)
	Summary(ctx context.Context) ([]model.BorrowedBookSummary, error)
}
