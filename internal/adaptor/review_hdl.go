package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"book-review/internal/dto/request"
	"book-review/internal/usecase"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/books/{isbn}/reviews (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseRedirect(w, r, "/login")
		return
	}

	isbn := chi.URLParam(r, "isbn")
	if isbn == "" {
		utils.ResponseBadRequest(w, "ISBN is required", nil)
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.CreateReview(r.Context(), userID, isbn, &req); err != nil {
		h.handleServiceError(w, err, "create review")
		return
	}

	// Success acknowledges with a redirect back to the book page rather
	// than a rendered body.
	utils.ResponseRedirect(w, r, "/api/books/"+isbn+"/reviews")
}

// GetBookReviews handles GET /api/books/{isbn}/reviews (protected)
func (h *ReviewHandler) GetBookReviews(w http.ResponseWriter, r *http.Request) {
	isbn := chi.URLParam(r, "isbn")
	if isbn == "" {
		utils.ResponseBadRequest(w, "ISBN is required", nil)
		return
	}

	reviews, err := h.service.GetBookReviews(r.Context(), isbn)
	if err != nil {
		h.handleServiceError(w, err, "get book reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// handleServiceError maps domain errors to status codes
func (h *ReviewHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrBookNotFound):
		h.log.Warn(operation+" failed - unknown book", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrReviewExists):
		h.log.Warn(operation+" failed - duplicate review", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	default:
		if vErr, ok := usecase.AsValidationError(err); ok {
			h.log.Warn(operation+" validation failed", zap.Error(err))
			utils.ResponseBadRequest(w, "Validation failed", vErr.Fields)
			return
		}
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
