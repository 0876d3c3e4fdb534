package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/internal/shared/apperror"
)

const defaultListLimit = 10

type bookService struct {
	repo repository.RepositoryInterface
}

func NewBookService(repo repository.RepositoryInterface) ServiceInterface {
	return &bookService{
		repo: repo,
	}
}

// Create validates the payload and inserts the book. Availability is
// derived from copies, ignoring whatever the client sent.
func (s *bookService) Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromOzzo(err)
	}

	newBook := &model.Book{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		ISBN:        req.ISBN,
		Description: req.Description,
		Copies:      req.Copies,
	}
	newBook.RecomputeAvailability()

	return s.repo.Create(ctx, newBook)
}

// List sanitizes the query parameters before hitting the repository:
// default limit 10, default sort createdAt descending. Only the genre
// filter is honored.
func (s *bookService) List(ctx context.Context, q model.ListBooksQuery) ([]model.Book, error) {
	if q.Limit <= 0 {
		q.Limit = defaultListLimit
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}

	return s.repo.List(ctx, q)
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	if id == uuid.Nil {
		return nil, model.ErrBookNotFound
	}

	return s.repo.GetByID(ctx, id)
}

// Update applies the partial fields to the stored book, re-validates
// the merged result with the create-time rules, recomputes availability
// and persists.
func (s *bookService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.Book, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	req.ApplyTo(&updated)

	merged := model.CreateBookRequest{
		Title:       updated.Title,
		Author:      updated.Author,
		Genre:       updated.Genre,
		ISBN:        updated.ISBN,
		Description: updated.Description,
		Copies:      updated.Copies,
	}
	if err := merged.Validate(); err != nil {
		return nil, apperror.FromOzzo(err)
	}

	updated.RecomputeAvailability()

	return s.repo.Update(ctx, &updated)
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	if id == uuid.Nil {
		return nil, model.ErrBookNotFound
	}

	return s.repo.Delete(ctx, id)
}
