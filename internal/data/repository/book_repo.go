package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"book-review/internal/data/entity"
	"book-review/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SearchFilters carries the user-supplied substring filters. Only non-empty
// fields participate in the query.
type SearchFilters struct {
	ISBN   string
	Title  string
	Author string
}

// Empty reports whether no filter field is set.
func (f SearchFilters) Empty() bool {
	return f.ISBN == "" && f.Title == "" && f.Author == ""
}

// searchColumn pairs an allow-listed column name with its filter value.
// Column names never come from user input.
type searchColumn struct {
	name  string
	value string
}

func (f SearchFilters) columns() []searchColumn {
	return []searchColumn{
		{"isbn", f.ISBN},
		{"title", f.Title},
		{"author", f.Author},
	}
}

// buildSearchQuery assembles the conjunctive ILIKE query. The dynamic part
// is only which allow-listed columns are compared; every value is bound
// positionally, wrapped in wildcards on both ends.
func buildSearchQuery(f SearchFilters) (string, []any) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, isbn, title, author, year
		FROM books
		WHERE 1=1
	`)

	args := []any{}
	argCount := 1

	for _, col := range f.columns() {
		if col.value == "" {
			continue
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE $%d", col.name, argCount))
		args = append(args, "%"+col.value+"%")
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY title, author")

	return queryBuilder.String(), args
}

type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	FindByISBN(ctx context.Context, isbn string) (*entity.Book, error)
	Search(ctx context.Context, filters SearchFilters) ([]*entity.Book, error)
}

type bookRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookRepository(db database.PgxIface, log *zap.Logger) BookRepository {
	return &bookRepository{
		db:  db,
		log: log.With(zap.String("repository", "book")),
	}
}

// Create inserts a catalog row; used by the bulk import tool. A duplicate
// ISBN surfaces as ErrUniqueViolation.
func (r *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	query := `
		INSERT INTO books (id, isbn, title, author, year)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		book.ID,
		book.ISBN,
		book.Title,
		book.Author,
		book.Year,
	)

	if err != nil {
		if mapped := constraintError(err); errors.Is(mapped, ErrUniqueViolation) {
			return mapped
		}
		r.log.Error("Failed to create book",
			zap.Error(err),
			zap.String("isbn", book.ISBN),
		)
		return fmt.Errorf("create book %s: %w", book.ISBN, err)
	}

	return nil
}

func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*entity.Book, error) {
	query := `
		SELECT id, isbn, title, author, year
		FROM books
		WHERE isbn = $1
	`

	var book entity.Book
	err := r.db.QueryRow(ctx, query, isbn).Scan(
		&book.ID,
		&book.ISBN,
		&book.Title,
		&book.Author,
		&book.Year,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find book by ISBN",
			zap.Error(err),
			zap.String("isbn", isbn),
		)
		return nil, fmt.Errorf("find book by ISBN %s: %w", isbn, err)
	}

	return &book, nil
}

// Search executes the dynamic substring query. Callers are expected to have
// rejected an empty filter set already; an empty set here would match the
// whole catalog.
func (r *bookRepository) Search(ctx context.Context, filters SearchFilters) ([]*entity.Book, error) {
	query, args := buildSearchQuery(filters)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to search books",
			zap.Error(err),
			zap.String("isbn_filter", filters.ISBN),
			zap.String("title_filter", filters.Title),
			zap.String("author_filter", filters.Author),
		)
		return nil, fmt.Errorf("search books: %w", err)
	}
	defer rows.Close()

	var books []*entity.Book
	for rows.Next() {
		var book entity.Book
		err := rows.Scan(
			&book.ID,
			&book.ISBN,
			&book.Title,
			&book.Author,
			&book.Year,
		)
		if err != nil {
			r.log.Error("Failed to scan book row", zap.Error(err))
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate book rows: %w", err)
	}

	return books, nil
}
