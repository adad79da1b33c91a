package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/internal/dto/request"
	"book-review/internal/dto/response"
	"book-review/internal/gateway"
	"book-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID uuid.UUID, isbn string, req *request.CreateReviewRequest) error
	GetBookReviews(ctx context.Context, isbn string) (*response.BookReviewsResponse, error)
}

type reviewService struct {
	repo    *repository.Repository
	ratings gateway.RatingGateway
	log     *zap.Logger
}

func NewReviewService(repo *repository.Repository, ratings gateway.RatingGateway, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:    repo,
		ratings: ratings,
		log:     log.With(zap.String("service", "review")),
	}
}

// CreateReview runs the submission flow: look the book up, check for a
// duplicate, insert. The check-then-insert pair is not atomic; a concurrent
// duplicate that slips past the check is caught by the composite key and
// mapped to the same conflict.
func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, isbn string, req *request.CreateReviewRequest) error {
	// Validate: rating and description are both required.
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return &ValidationError{Fields: errs}
	}

	// LookupBook: an unknown ISBN terminates the flow with nothing written.
	book, err := s.repo.Book.FindByISBN(ctx, isbn)
	if err != nil {
		s.log.Error("Failed to look up book", zap.Error(err), zap.String("isbn", isbn))
		return fmt.Errorf("look up book: %w", err)
	}
	if book == nil {
		return ErrBookNotFound
	}

	// CheckDuplicate
	existingReview, err := s.repo.Review.FindByUserAndBook(ctx, userID, book.ID)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err))
		return fmt.Errorf("check existing review: %w", err)
	}
	if existingReview != nil {
		return ErrReviewExists
	}

	// Insert
	review := &entity.Review{
		UserID:      userID,
		BookID:      book.ID,
		Rating:      req.Rating,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			// Concurrent duplicate submission lost the race to the store.
			return ErrReviewExists
		}
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return ErrBookNotFound
		}
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("isbn", isbn),
		)
		return fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("user_id", userID.String()),
		zap.String("isbn", isbn),
		zap.Int("rating", req.Rating),
	)

	return nil
}

// GetBookReviews builds the review page: the book, every local review joined
// with the reviewer's username, and the external rating snapshot. A gateway
// fault only degrades the snapshot; the page still carries the local
// reviews.
func (s *reviewService) GetBookReviews(ctx context.Context, isbn string) (*response.BookReviewsResponse, error) {
	book, err := s.repo.Book.FindByISBN(ctx, isbn)
	if err != nil {
		s.log.Error("Failed to look up book", zap.Error(err), zap.String("isbn", isbn))
		return nil, fmt.Errorf("look up book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}

	reviews, err := s.repo.Review.FindByBookID(ctx, book.ID)
	if err != nil {
		s.log.Error("Failed to get book reviews", zap.Error(err), zap.String("isbn", isbn))
		return nil, fmt.Errorf("get book reviews: %w", err)
	}

	snapshot := s.ratings.ReviewCounts(ctx, isbn)
	if !snapshot.Available {
		s.log.Warn("External rating unavailable, rendering degraded page",
			zap.String("isbn", isbn))
	}

	resp := response.BookReviewsToResponse(book, reviews, snapshot)

	s.log.Info("Book reviews retrieved",
		zap.String("isbn", isbn),
		zap.Int("review_count", len(reviews)),
		zap.Bool("rating_available", snapshot.Available),
	)

	return &resp, nil
}
