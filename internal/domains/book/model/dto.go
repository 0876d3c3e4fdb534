package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateBookRequest is the payload for creating a book. Available is
// accepted for compatibility but ignored: availability is always
// derived from Copies.
type CreateBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       Genre  `json:"genre"`
	ISBN        string `json:"isbn"`
	Description string `json:"description"`
	Copies      int    `json:"copies"`
	Available   bool   `json:"available"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Genre, validation.Required, validation.In(Genres()...)),
		validation.Field(&r.ISBN, validation.Required, validation.Length(1, 20)),
		validation.Field(&r.Description, validation.Length(0, 10000)),
		validation.Field(&r.Copies, validation.Min(0)),
	)
}

// UpdateBookRequest carries partial fields; nil means "leave as is".
// The merged result still passes the create-time rules.
type UpdateBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Genre       *Genre  `json:"genre"`
	ISBN        *string `json:"isbn"`
	Description *string `json:"description"`
	Copies      *int    `json:"copies"`
	Available   *bool   `json:"available"`
}

// ApplyTo merges the non-nil fields onto b. Available is deliberately
// not applied; it is recomputed from Copies.
func (r UpdateBookRequest) ApplyTo(b *Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Author != nil {
		b.Author = *r.Author
	}
	if r.Genre != nil {
		b.Genre = *r.Genre
	}
	if r.ISBN != nil {
		b.ISBN = *r.ISBN
	}
	if r.Description != nil {
		b.Description = *r.Description
	}
	if r.Copies != nil {
		b.Copies = *r.Copies
	}
}

// ListBooksQuery holds the list query parameters after parsing.
// Filter maps to genre equality; any other filter input is ignored.
type ListBooksQuery struct {
	Filter string
	SortBy string
	Sort   string
	Limit  int
}

// sortColumns whitelists the client-facing sort field names against
// real columns; anything else falls back to created_at.
var sortColumns = map[string]string{
	"title":     "title",
	"author":    "author",
	"genre":     "genre",
	"isbn":      "isbn",
	"copies":    "copies",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// SortColumn resolves SortBy to a safe column name.
func (q ListBooksQuery) SortColumn() string {
	if col, ok := sortColumns[q.SortBy]; ok {
		return col
	}
	return "created_at"
}

// SortOrder returns ASC only for an explicit "asc"; everything else
// sorts descending.
func (q ListBooksQuery) SortOrder() string {
	if q.Sort == "asc" {
		return "ASC"
	}
	return "DESC"
}
