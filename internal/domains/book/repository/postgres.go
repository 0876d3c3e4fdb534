package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/shared/apperror"
	"library-backend/pkg/cache"
)

// postgresRepository implements the book repository over pgxpool with a
// Redis read-through cache for single-book lookups.
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

const (
	bookCacheKeyPrefix = "book:"
	bookListKeyPrefix  = "books:list:"
	cacheTTL           = 15 * time.Minute
)

const bookColumns = "id, title, author, genre, isbn, description, copies, is_available, created_at, updated_at"

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Genre,
		&b.ISBN,
		&b.Description,
		&b.Copies,
		&b.Available,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// mapPgError translates store-level failures at the boundary where the
// store signals them: unique violations become DuplicateKeyError so the
// normalization middleware can synthesize the per-field body.
func mapPgError(err error, isbn string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "isbn") || strings.Contains(pgErr.Message, "isbn") {
			return apperror.NewDuplicateKey("isbn", isbn)
		}
	}
	return err
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (title, author, genre, isbn, description, copies, is_available)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + bookColumns

	created, err := scanBook(r.pool.QueryRow(
		ctx,
		query,
		b.Title,
		b.Author,
		b.Genre,
		b.ISBN,
		b.Description,
		b.Copies,
		b.Available,
	))
	if err != nil {
		if mapped := mapPgError(err, b.ISBN); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	r.invalidateListCache(ctx)

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var cachedBook model.Book
	if found, err := r.cache.Get(ctx, cacheKey, &cachedBook); err == nil && found {
		return &cachedBook, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	b, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, b, cacheTTL)

	return b, nil
}

func (r *postgresRepository) List(ctx context.Context, q model.ListBooksQuery) ([]model.Book, error) {
	cacheKey := fmt.Sprintf("%s%s:%s:%s:%d", bookListKeyPrefix, q.Filter, q.SortColumn(), q.SortOrder(), q.Limit)

	var cachedBooks []model.Book
	if found, err := r.cache.Get(ctx, cacheKey, &cachedBooks); err == nil && found {
		return cachedBooks, nil
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + bookColumns + ` FROM books WHERE 1=1`)

	args := []interface{}{}
	argPos := 1

	if q.Filter != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND genre = $%d", argPos))
		args = append(args, q.Filter)
		argPos++
	}

	// SortColumn is whitelisted in the model; safe to interpolate.
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s", q.SortColumn(), q.SortOrder()))

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argPos))
	args = append(args, q.Limit)

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, books, cacheTTL)

	return books, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        UPDATE books
        SET
            title = $1,
            author = $2,
            genre = $3,
            isbn = $4,
            description = $5,
            copies = $6,
            is_available = $7,
            updated_at = NOW()
        WHERE id = $8
        RETURNING ` + bookColumns

	updated, err := scanBook(r.pool.QueryRow(
		ctx,
		query,
		b.Title,
		b.Author,
		b.Genre,
		b.ISBN,
		b.Description,
		b.Copies,
		b.Available,
		b.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		if mapped := mapPgError(err, b.ISBN); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	r.invalidateBookCache(ctx, b.ID)
	r.invalidateListCache(ctx)

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `DELETE FROM books WHERE id = $1 RETURNING ` + bookColumns

	deleted, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}

	r.invalidateBookCache(ctx, id)
	r.invalidateListCache(ctx)

	return deleted, nil
}

func (r *postgresRepository) invalidateBookCache(ctx context.Context, id uuid.UUID) {
	_ = r.cache.Delete(ctx, bookCacheKeyPrefix+id.String())
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	_ = r.cache.DeletePattern(ctx, bookListKeyPrefix+"*")
}
