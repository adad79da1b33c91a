package adaptor

import (
	"net/http"

	"book-review/internal/dto/request"
	"book-review/internal/usecase"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

type SearchHandler struct {
	service usecase.SearchService
	log     *zap.Logger
}

func NewSearchHandler(service usecase.SearchService, log *zap.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		log:     log.With(zap.String("handler", "search")),
	}
}

// Search handles GET /api/search (protected)
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.SearchRequest{
		ISBN:   query.Get("isbn"),
		Title:  query.Get("title"),
		Author: query.Get("author"),
	}

	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		h.log.Error("Failed to search", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
