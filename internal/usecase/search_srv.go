package usecase

import (
	"context"
	"fmt"
	"strings"

	"book-review/internal/data/repository"
	"book-review/internal/dto/request"
	"book-review/internal/dto/response"

	"go.uber.org/zap"
)

type SearchService interface {
	Search(ctx context.Context, req *request.SearchRequest) (*response.SearchResponse, error)
}

type searchService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSearchService(repo *repository.Repository, log *zap.Logger) SearchService {
	return &searchService{
		repo: repo,
		log:  log.With(zap.String("service", "search")),
	}
}

// normalizeFilter strips surrounding whitespace and any wildcard markers the
// caller typed; the repository adds its own wildcards.
func normalizeFilter(value string) string {
	return strings.Trim(strings.TrimSpace(value), "%")
}

// Search never rejects its input: there is no validation-failure path, a
// filter that matches nothing just yields zero matches.
func (s *searchService) Search(ctx context.Context, req *request.SearchRequest) (*response.SearchResponse, error) {
	filters := repository.SearchFilters{
		ISBN:   normalizeFilter(req.ISBN),
		Title:  normalizeFilter(req.Title),
		Author: normalizeFilter(req.Author),
	}

	resp := &response.SearchResponse{
		Filters: response.SearchFilters{
			ISBN:   filters.ISBN,
			Title:  filters.Title,
			Author: filters.Author,
		},
	}

	// An empty filter set means zero matches, not a full catalog scan; the
	// store is not queried at all.
	if filters.Empty() {
		return resp, nil
	}

	books, err := s.repo.Book.Search(ctx, filters)
	if err != nil {
		s.log.Error("Failed to search catalog", zap.Error(err))
		return nil, fmt.Errorf("search catalog: %w", err)
	}

	resp.Matches = len(books)
	if len(books) == 0 {
		return resp, nil
	}

	// Display columns: the participating filter fields, then year.
	var columns []string
	if filters.ISBN != "" {
		columns = append(columns, "isbn")
	}
	if filters.Title != "" {
		columns = append(columns, "title")
	}
	if filters.Author != "" {
		columns = append(columns, "author")
	}
	columns = append(columns, "year")
	resp.Columns = columns

	resp.Books = make([]response.BookResponse, 0, len(books))
	for _, book := range books {
		resp.Books = append(resp.Books, response.BookToResponse(book))
	}

	s.log.Info("Catalog searched",
		zap.Int("matches", resp.Matches),
		zap.Strings("columns", columns),
	)

	return resp, nil
}
