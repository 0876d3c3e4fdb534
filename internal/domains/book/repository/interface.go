package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	List(ctx context.Context, q model.ListBooksQuery) ([]model.Book, error)
	Update(ctx context.Context, b *model.Book) (*model.Book, error)
	// Delete removes the book and returns its last-known data.
	Delete(ctx context.Context, id uuid.UUID) (*model.Book, error)
}
