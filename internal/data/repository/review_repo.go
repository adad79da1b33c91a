package repository

import (
	"context"
	"errors"
	"fmt"

	"book-review/internal/data/entity"
	"book-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*entity.Review, error)
	FindByBookID(ctx context.Context, bookID uuid.UUID) ([]*entity.ReviewWithUser, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

// Create inserts a review row. The reviews composite primary key is the
// authoritative duplicate guard: a concurrent double-submission that slipped
// past the service-level check lands here as ErrUniqueViolation. A review
// referencing a missing user or book is rejected by the foreign keys.
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (user_id, book_id, rating, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		review.UserID,
		review.BookID,
		review.Rating,
		review.Description,
		review.CreatedAt,
	)

	if err != nil {
		mapped := constraintError(err)
		if errors.Is(mapped, ErrUniqueViolation) || errors.Is(mapped, ErrForeignKeyViolation) {
			return mapped
		}
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("book_id", review.BookID.String()),
		)
		return fmt.Errorf("create review for book %s by user %s: %w",
			review.BookID.String(), review.UserID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT user_id, book_id, rating, description, created_at
		FROM reviews
		WHERE user_id = $1 AND book_id = $2
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, userID, bookID).Scan(
		&review.UserID,
		&review.BookID,
		&review.Rating,
		&review.Description,
		&review.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and book",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("book_id", bookID.String()),
		)
		return nil, fmt.Errorf("find review by user %s and book %s: %w",
			userID.String(), bookID.String(), err)
	}

	return &review, nil
}

// FindByBookID returns every review for the book joined with the reviewer's
// username. Display order is newest first; nothing contractual depends on it.
func (r *reviewRepository) FindByBookID(ctx context.Context, bookID uuid.UUID) ([]*entity.ReviewWithUser, error) {
	query := `
		SELECT r.user_id, r.book_id, r.rating, r.description, r.created_at, u.username
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.book_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		r.log.Error("Failed to find reviews by book ID",
			zap.Error(err),
			zap.String("book_id", bookID.String()),
		)
		return nil, fmt.Errorf("find reviews by book ID %s: %w", bookID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.ReviewWithUser
	for rows.Next() {
		var review entity.ReviewWithUser
		err := rows.Scan(
			&review.UserID,
			&review.BookID,
			&review.Rating,
			&review.Description,
			&review.CreatedAt,
			&review.Username,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}
