package response

import (
	"book-review/internal/data/entity"
)

type BookResponse struct {
	ID     string `json:"id"`
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}

// SearchFilters echoes the normalized filter values back for redisplay.
type SearchFilters struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

type SearchResponse struct {
	Matches int           `json:"matches"`
	Filters SearchFilters `json:"filters"`
	// Columns and Books are only populated when there are matches.
	Columns []string       `json:"columns,omitempty"`
	Books   []BookResponse `json:"books,omitempty"`
}

// Helper converter
func BookToResponse(book *entity.Book) BookResponse {
	return BookResponse{
		ID:     book.ID.String(),
		ISBN:   book.ISBN,
		Title:  book.Title,
		Author: book.Author,
		Year:   book.Year,
	}
}
