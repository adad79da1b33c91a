package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is keyed by (user_id, book_id); there is no surrogate id. The
// composite primary key is what enforces one review per user per book.
type Review struct {
	UserID      uuid.UUID `db:"user_id"`
	BookID      uuid.UUID `db:"book_id"`
	Rating      int       `db:"rating"` // 1-5
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// ReviewWithUser is a review row joined with the reviewer's username for
// display.
type ReviewWithUser struct {
	Review
	Username string `db:"username"`
}
