package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/borrow/model"
	"library-backend/pkg/cache"
	"library-backend/pkg/database"
)

// borrowTx is the slice of pgx.Tx the borrow flow needs.
type borrowTx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// CreateBorrow runs the stock decrement and the loan insert in a single
// transaction. The decrement is conditional on enough copies remaining,
// so two concurrent borrows can never drive copies negative, and the
// availability flag is re-derived in the same statement.
func (r *postgresRepository) CreateBorrow(ctx context.Context, b *model.Borrow) (*model.Borrow, error) {
	created, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Borrow, error) {
		return createBorrowInTx(ctx, tx, b)
	})
	if err != nil {
		return nil, err
	}

	// The book's copies changed; cached copies are stale.
	_ = r.cache.Delete(ctx, "book:"+b.BookID.String())
	_ = r.cache.DeletePattern(ctx, "books:list:*")

	return created, nil
}

const decrementCopiesQuery = `
    UPDATE books
    SET
        copies = copies - $1,
        is_available = (copies - $1) > 0,
        updated_at = NOW()
    WHERE id = $2 AND copies >= $1
`

const insertBorrowQuery = `
    INSERT INTO borrows (book_id, quantity, due_date)
    VALUES ($1, $2, $3)
    RETURNING id, book_id, quantity, due_date, created_at
`

const bookExistsQuery = `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`

func createBorrowInTx(ctx context.Context, tx borrowTx, b *model.Borrow) (*model.Borrow, error) {
	cmdTag, err := tx.Exec(ctx, decrementCopiesQuery, b.Quantity, b.BookID)
	if err != nil {
		return nil, fmt.Errorf("failed to decrement copies: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the book is gone or the stock is short; one
		// existence probe tells us which.
		var exists bool
		if err := tx.QueryRow(ctx, bookExistsQuery, b.BookID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to check book existence: %w", err)
		}
		if !exists {
			return nil, model.ErrBookNotAvailable
		}
		return nil, model.ErrInsufficientStock
	}

	var created model.Borrow
	err = tx.QueryRow(ctx, insertBorrowQuery, b.BookID, b.Quantity, b.DueDate).Scan(
		&created.ID,
		&created.BookID,
		&created.Quantity,
		&created.DueDate,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create borrow: %w", err)
	}

	return &created, nil
}

// Summary aggregates all borrows grouped by book, joined to the book
// for its title and isbn. Group order is whatever the store returns.
func (r *postgresRepository) Summary(ctx context.Context) ([]model.BorrowedBookSummary, error) {
	query := `
        SELECT b.title, b.isbn, SUM(br.quantity)::bigint AS total_quantity
        FROM borrows br
        JOIN books b ON b.id = br.book_id
        GROUP BY b.id, b.title, b.isbn
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query borrow summary: %w", err)
	}
	defer rows.Close()

	summaries := []model.BorrowedBookSummary{}
	for rows.Next() {
		var s model.BorrowedBookSummary
		if err := rows.Scan(&s.Book.Title, &s.Book.ISBN, &s.TotalQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan borrow summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating borrow summary: %w", err)
	}

	return summaries, nil
}
