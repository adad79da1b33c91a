package usecase

import (
	"book-review/internal/data/repository"
	"book-review/internal/gateway"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	Search SearchService
	Review ReviewService
}

func NewService(repo *repository.Repository, ratings gateway.RatingGateway, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, config, log),
		Search: NewSearchService(repo, log),
		Review: NewReviewService(repo, ratings, log),
	}
}
