package usecase

import (
	"context"
	"fmt"
	"testing"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/internal/dto/request"
	"book-review/internal/gateway"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testISBN = "9780812524581"

func reviewFixture(t *testing.T) (*repository.Repository, *fakeBookRepo, *fakeReviewRepo, *fakeRatingGateway, ReviewService, uuid.UUID) {
	t.Helper()
	repo, users, _, books, reviews := newFakeRepository()

	userID := uuid.New()
	users.users[userID] = &entity.User{ID: userID, Username: "alice"}
	reviews.usernames[userID] = "alice"

	books.books = append(books.books, &entity.Book{
		ID:     uuid.New(),
		ISBN:   testISBN,
		Title:  "Ender's Game",
		Author: "Orson Scott Card",
		Year:   1985,
	})

	ratings := &fakeRatingGateway{
		snapshot: gateway.RatingSnapshot{AverageRating: 4.25, RatingsCount: 120, Available: true},
	}

	service := NewReviewService(repo, ratings, zap.NewNop())
	return repo, books, reviews, ratings, service, userID
}

func TestCreateReviewOnce(t *testing.T) {
	_, _, reviews, _, service, userID := reviewFixture(t)

	err := service.CreateReview(context.Background(), userID, testISBN, &request.CreateReviewRequest{
		Rating:      5,
		Description: "a classic",
	})
	require.NoError(t, err)
	assert.Len(t, reviews.reviews, 1)
}

func TestCreateReviewDuplicate(t *testing.T) {
	_, _, reviews, _, service, userID := reviewFixture(t)
	ctx := context.Background()

	req := &request.CreateReviewRequest{Rating: 5, Description: "a classic"}
	require.NoError(t, service.CreateReview(ctx, userID, testISBN, req))

	err := service.CreateReview(ctx, userID, testISBN, req)
	assert.ErrorIs(t, err, ErrReviewExists)
	// The store still holds exactly one row for the pair.
	assert.Len(t, reviews.reviews, 1)
}

func TestCreateReviewConcurrentDuplicateMapsConstraint(t *testing.T) {
	_, _, reviews, _, service, userID := reviewFixture(t)

	// Both submissions passed the duplicate check; the store's composite
	// key rejects the second insert and the workflow maps it to the same
	// conflict instead of crashing.
	reviews.createErr = repository.ErrUniqueViolation

	err := service.CreateReview(context.Background(), userID, testISBN, &request.CreateReviewRequest{
		Rating:      4,
		Description: "raced",
	})
	assert.ErrorIs(t, err, ErrReviewExists)
}

func TestCreateReviewUnknownISBN(t *testing.T) {
	_, _, reviews, _, service, userID := reviewFixture(t)

	err := service.CreateReview(context.Background(), userID, "0000000000000", &request.CreateReviewRequest{
		Rating:      3,
		Description: "where is it",
	})
	assert.ErrorIs(t, err, ErrBookNotFound)
	assert.Empty(t, reviews.reviews, "no row may be inserted for an unknown book")
}

func TestCreateReviewValidation(t *testing.T) {
	_, _, _, _, service, userID := reviewFixture(t)
	ctx := context.Background()

	// Missing rating
	err := service.CreateReview(ctx, userID, testISBN, &request.CreateReviewRequest{Description: "no rating"})
	_, ok := AsValidationError(err)
	assert.True(t, ok, "expected a validation error, got %v", err)

	// Missing description
	err = service.CreateReview(ctx, userID, testISBN, &request.CreateReviewRequest{Rating: 4})
	_, ok = AsValidationError(err)
	assert.True(t, ok, "expected a validation error, got %v", err)

	// Rating out of range
	err = service.CreateReview(ctx, userID, testISBN, &request.CreateReviewRequest{Rating: 6, Description: "too high"})
	_, ok = AsValidationError(err)
	assert.True(t, ok, "expected a validation error, got %v", err)
}

func TestGetBookReviewsWithRating(t *testing.T) {
	_, _, _, ratings, service, userID := reviewFixture(t)
	ctx := context.Background()

	require.NoError(t, service.CreateReview(ctx, userID, testISBN, &request.CreateReviewRequest{
		Rating:      5,
		Description: "a classic",
	}))

	page, err := service.GetBookReviews(ctx, testISBN)
	require.NoError(t, err)

	assert.Equal(t, testISBN, page.Book.ISBN)
	require.Len(t, page.Reviews, 1)
	assert.Equal(t, "alice", page.Reviews[0].Username)
	assert.True(t, page.RatingAvailable)
	require.NotNil(t, page.AverageRating)
	require.NotNil(t, page.RatingsCount)
	assert.InDelta(t, 4.25, *page.AverageRating, 0.001)
	assert.Equal(t, int64(120), *page.RatingsCount)
	assert.Equal(t, 1, ratings.calls)
}

func TestGetBookReviewsDegradesWhenGatewayUnavailable(t *testing.T) {
	_, _, _, ratings, service, userID := reviewFixture(t)
	ctx := context.Background()

	require.NoError(t, service.CreateReview(ctx, userID, testISBN, &request.CreateReviewRequest{
		Rating:      5,
		Description: "a classic",
	}))

	// Gateway 404, timeout and malformed payload all collapse into the
	// unavailable snapshot upstream of the service.
	ratings.snapshot = gateway.RatingSnapshot{}

	page, err := service.GetBookReviews(ctx, testISBN)
	require.NoError(t, err, "a gateway fault must not fail the page")

	assert.False(t, page.RatingAvailable)
	assert.Nil(t, page.AverageRating)
	assert.Nil(t, page.RatingsCount)
	// Local reviews are unaffected.
	require.Len(t, page.Reviews, 1)
	assert.Equal(t, "alice", page.Reviews[0].Username)
}

func TestGetBookReviewsUnknownISBN(t *testing.T) {
	_, _, _, _, service, _ := reviewFixture(t)

	_, err := service.GetBookReviews(context.Background(), "0000000000000")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestReviewRoundTrip(t *testing.T) {
	repo, _, reviews, _, service, _ := reviewFixture(t)
	ctx := context.Background()

	users := repo.User.(*fakeUserRepo)

	const n = 5
	for i := 0; i < n; i++ {
		userID := uuid.New()
		username := fmt.Sprintf("reader%d", i)
		users.users[userID] = &entity.User{ID: userID, Username: username}
		reviews.usernames[userID] = username

		require.NoError(t, service.CreateReview(ctx, userID, testISBN, &request.CreateReviewRequest{
			Rating:      (i % 5) + 1,
			Description: fmt.Sprintf("review %d", i),
		}))
	}

	page, err := service.GetBookReviews(ctx, testISBN)
	require.NoError(t, err)
	require.Len(t, page.Reviews, n)

	seen := make(map[string]bool)
	for _, review := range page.Reviews {
		seen[review.Username] = true
	}
	for i := 0; i < n; i++ {
		assert.True(t, seen[fmt.Sprintf("reader%d", i)], "missing review by reader%d", i)
	}
}
