package wire

import (
	"net/http"

	"book-review/internal/adaptor"
	"book-review/internal/data/repository"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	// The session guard redirects here; without a template layer the page
	// is a JSON prompt toward the credential endpoints.
	r.Get("/login", func(w http.ResponseWriter, req *http.Request) {
		utils.ResponseSuccess(w, "Authentication required. POST credentials to /api/login or register via /api/register.", nil)
	})

	// Logout is deliberately unguarded: revoking an absent session is a
	// no-op and the caller lands on /login either way.
	r.Get("/logout", authHandler.Logout)
	r.Post("/api/logout", authHandler.Logout)
}
