package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/borrow/model"
	"library-backend/internal/domains/borrow/service"
	"library-backend/internal/shared/apperror"
)

type mockBorrowRepo struct {
	createFn  func(ctx context.Context, b *model.Borrow) (*model.Borrow, error)
	summaryFn func(ctx context.Context) ([]model.BorrowedBookSummary, error)
}

func (m *mockBorrowRepo) CreateBorrow(ctx context.Context, b *model.Borrow) (*model.Borrow, error) {
	return m.createFn(ctx, b)
}

func (m *mockBorrowRepo) Summary(ctx context.Context) ([]model.BorrowedBookSummary, error) {
	return m.summaryFn(ctx)
}

func validRequest() *model.CreateBorrowRequest {
	return &model.CreateBorrowRequest{
		Book:     uuid.NewString(),
		Quantity: 2,
		DueDate:  time.Now().Add(14 * 24 * time.Hour),
	}
}

func TestCreateBorrowMissingFields(t *testing.T) {
	repoCalled := false
	repo := &mockBorrowRepo{
		createFn: func(ctx context.Context, b *model.Borrow) (*model.Borrow, error) {
			repoCalled = true
			return b, nil
		},
	}
	svc := service.NewBorrowService(repo)

	tests := []struct {
		name   string
		mutate func(*model.CreateBorrowRequest)
	}{
		{"missing book", func(r *model.CreateBorrowRequest) { r.Book = "" }},
		{"missing dueDate", func(r *model.CreateBorrowRequest) { r.DueDate = time.Time{} }},
		// quantity 0 counts as missing, same as the falsy check it mirrors
		{"zero quantity", func(r *model.CreateBorrowRequest) { r.Quantity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)

			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.Status())
			assert.Equal(t, "Please provide all required fields", appErr.Message)
			assert.False(t, repoCalled)
		})
	}
}

func TestCreateBorrowNegativeQuantity(t *testing.T) {
	svc := service.NewBorrowService(&mockBorrowRepo{})

	req := validRequest()
	req.Quantity = -3

	_, err := svc.Create(context.Background(), req)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status())
}

func TestCreateBorrowUnparseableBookID(t *testing.T) {
	svc := service.NewBorrowService(&mockBorrowRepo{})

	req := validRequest()
	req.Book = "definitely-not-a-uuid"

	_, err := svc.Create(context.Background(), req)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status())
	assert.Equal(t, "Book not available", appErr.Message)
}

func TestCreateBorrowDelegatesToRepo(t *testing.T) {
	var captured *model.Borrow
	repo := &mockBorrowRepo{
		createFn: func(ctx context.Context, b *model.Borrow) (*model.Borrow, error) {
			captured = b
			created := *b
			created.ID = uuid.New()
			created.CreatedAt = time.Now()
			return &created, nil
		},
	}
	svc := service.NewBorrowService(repo)

	req := validRequest()
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, req.Book, captured.BookID.String())
	assert.Equal(t, req.Quantity, captured.Quantity)
	assert.Equal(t, req.DueDate, captured.DueDate)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestCreateBorrowPropagatesStockErrors(t *testing.T) {
	repo := &mockBorrowRepo{
		createFn: func(ctx context.Context, b *model.Borrow) (*model.Borrow, error) {
			return nil, model.ErrInsufficientStock
		},
	}
	svc := service.NewBorrowService(repo)

	_, err := svc.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, model.ErrInsufficientStock)
}

func TestSummaryPassesThrough(t *testing.T) {
	rows := []model.BorrowedBookSummary{
		{Book: model.SummaryBook{Title: "Dune", ISBN: "978-0441172719"}, TotalQuantity: 5},
	}
	repo := &mockBorrowRepo{
		summaryFn: func(ctx context.Context) ([]model.BorrowedBookSummary, error) {
			return rows, nil
		},
	}
	svc := service.NewBorrowService(repo)

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}
