package response

import (
	"time"

	"book-review/internal/data/entity"
	"book-review/internal/gateway"
)

type ReviewResponse struct {
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Rating      int       `json:"rating"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookReviewsResponse is the review page: the book, its local reviews, and
// the external rating snapshot. RatingAvailable false with nil rating fields
// is the degraded display, distinct from a zero rating.
type BookReviewsResponse struct {
	Book            BookResponse     `json:"book"`
	Reviews         []ReviewResponse `json:"reviews"`
	AverageRating   *float64         `json:"average_rating"`
	RatingsCount    *int64           `json:"ratings_count"`
	RatingAvailable bool             `json:"rating_available"`
}

// Helper converters
func ReviewToResponse(review *entity.ReviewWithUser) ReviewResponse {
	return ReviewResponse{
		UserID:      review.UserID.String(),
		Username:    review.Username,
		Rating:      review.Rating,
		Description: review.Description,
		CreatedAt:   review.CreatedAt,
	}
}

func BookReviewsToResponse(book *entity.Book, reviews []*entity.ReviewWithUser, snapshot gateway.RatingSnapshot) BookReviewsResponse {
	resp := BookReviewsResponse{
		Book:    BookToResponse(book),
		Reviews: make([]ReviewResponse, 0, len(reviews)),
	}

	for _, review := range reviews {
		resp.Reviews = append(resp.Reviews, ReviewToResponse(review))
	}

	if snapshot.Available {
		avg := snapshot.AverageRating
		count := snapshot.RatingsCount
		resp.AverageRating = &avg
		resp.RatingsCount = &count
		resp.RatingAvailable = true
	}

	return resp
}
