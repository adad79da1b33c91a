package wire

import (
	"book-review/internal/adaptor"
	"book-review/internal/data/repository"
	"book-review/pkg/middleware"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	searchHandler *adaptor.SearchHandler,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require session) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(repo.Session, repo.User, log))

		// GET /api/search - catalog substring search
		r.Get("/api/search", searchHandler.Search)

		// GET /api/books/{isbn}/reviews - book page with local reviews + external rating
		r.Get("/api/books/{isbn}/reviews", reviewHandler.GetBookReviews)

		// POST /api/books/{isbn}/reviews - submit the one review per (user, book)
		r.Post("/api/books/{isbn}/reviews", reviewHandler.CreateReview)
	})
}
