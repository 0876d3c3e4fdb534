package model

import (
	"time"

	"github.com/google/uuid"
)

// Borrow is an immutable loan entry referencing a book. There are no
// update or delete operations; borrows are only created and read in
// aggregate.
type Borrow struct {
	ID       uuid.UUID `json:"id" db:"id"`
	BookID   uuid.UUID `json:"book" db:"book_id"`
	Quantity int       `json:"quantity" db:"quantity"`
	DueDate  time.Time `json:"dueDate" db:"due_date"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CreateBorrowRequest is the borrow payload. All three fields are
// required; zero values count as missing, so quantity 0 is rejected
// the same way as an absent quantity.
type CreateBorrowRequest struct {
	Book     string    `json:"book"`
	Quantity int       `json:"quantity"`
	DueDate  time.Time `json:"dueDate"`
}

// HasRequiredFields reports whether every required field carries a
// non-zero value.
func (r CreateBorrowRequest) HasRequiredFields() bool {
	return r.Book != "" && r.Quantity != 0 && !r.DueDate.IsZero()
}

// SummaryBook is the book projection inside a summary row.
type SummaryBook struct {
	Title string `json:"title"`
	ISBN  string `json:"isbn"`
}

// BorrowedBookSummary is one row of the per-book borrow report: total
// borrowed quantity grouped by book.
type BorrowedBookSummary struct {
	Book          SummaryBook `json:"book"`
	TotalQuantity int64       `json:"totalQuantity"`
}
