package model_test

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book/model"
)

func validCreateRequest() model.CreateBookRequest {
	return model.CreateBookRequest{
		Title:  "The Pragmatic Programmer",
		Author: "Andrew Hunt",
		Genre:  model.GenreNonFiction,
		ISBN:   "978-0201616224",
		Copies: 3,
	}
}

func TestCreateBookRequestValid(t *testing.T) {
	assert.NoError(t, validCreateRequest().Validate())
}

func TestCreateBookRequestZeroCopiesAllowed(t *testing.T) {
	req := validCreateRequest()
	req.Copies = 0
	assert.NoError(t, req.Validate())
}

func TestCreateBookRequestRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.CreateBookRequest)
		field  string
	}{
		{"missing title", func(r *model.CreateBookRequest) { r.Title = "" }, "title"},
		{"missing author", func(r *model.CreateBookRequest) { r.Author = "" }, "author"},
		{"missing isbn", func(r *model.CreateBookRequest) { r.ISBN = "" }, "isbn"},
		{"unknown genre", func(r *model.CreateBookRequest) { r.Genre = "ROMANCE" }, "genre"},
		{"missing genre", func(r *model.CreateBookRequest) { r.Genre = "" }, "genre"},
		{"negative copies", func(r *model.CreateBookRequest) { r.Copies = -1 }, "copies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			err := req.Validate()
			require.Error(t, err)

			errs, ok := err.(validation.Errors)
			require.True(t, ok)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestAvailabilityDerivation(t *testing.T) {
	assert.False(t, model.AvailableFor(0))
	assert.False(t, model.AvailableFor(-1))
	assert.True(t, model.AvailableFor(1))
	assert.True(t, model.AvailableFor(100))

	b := model.Book{Copies: 0, Available: true}
	b.RecomputeAvailability()
	assert.False(t, b.Available)

	b.Copies = 5
	b.RecomputeAvailability()
	assert.True(t, b.Available)
}

func TestUpdateRequestIgnoresClientAvailability(t *testing.T) {
	available := true
	req := model.UpdateBookRequest{Available: &available}

	b := model.Book{Copies: 0, Available: false}
	req.ApplyTo(&b)

	assert.False(t, b.Available)
}

func TestListQuerySortColumnWhitelist(t *testing.T) {
	assert.Equal(t, "created_at", model.ListBooksQuery{SortBy: "createdAt"}.SortColumn())
	assert.Equal(t, "title", model.ListBooksQuery{SortBy: "title"}.SortColumn())
	assert.Equal(t, "copies", model.ListBooksQuery{SortBy: "copies"}.SortColumn())
	// Unknown fields never reach the query.
	assert.Equal(t, "created_at", model.ListBooksQuery{SortBy: "id; DROP TABLE books"}.SortColumn())
	assert.Equal(t, "created_at", model.ListBooksQuery{}.SortColumn())
}

func TestListQuerySortOrder(t *testing.T) {
	assert.Equal(t, "ASC", model.ListBooksQuery{Sort: "asc"}.SortOrder())
	assert.Equal(t, "DESC", model.ListBooksQuery{Sort: "desc"}.SortOrder())
	assert.Equal(t, "DESC", model.ListBooksQuery{Sort: "whatever"}.SortOrder())
	assert.Equal(t, "DESC", model.ListBooksQuery{}.SortOrder())
}
