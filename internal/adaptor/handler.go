package adaptor

import (
	"book-review/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	Search *SearchHandler
	Review *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		Search: NewSearchHandler(service.Search, log),
		Review: NewReviewHandler(service.Review, log),
	}
}
