package wire

import (
	"net/http"
	"time"

	"book-review/internal/adaptor"
	"book-review/internal/data/repository"
	"book-review/internal/gateway"
	"book-review/internal/usecase"
	"book-review/pkg/middleware"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	// The external rating lookup gets a hard timeout; an unreachable
	// upstream degrades the review page, it never hangs a request.
	ratings := gateway.NewGoodreadsClient(
		config.Goodreads.BaseURL,
		config.Goodreads.Key,
		time.Duration(config.Goodreads.TimeoutSeconds)*time.Second,
		logger,
	)

	service := usecase.NewService(repo, ratings, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireCatalog(r, handler.Search, handler.Review, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Resource not found")
	})

	return r
}
