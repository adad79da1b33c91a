package entity

import (
	"github.com/google/uuid"
)

// Book is read-only to the application; rows come in through the bulk
// import tool.
type Book struct {
	ID     uuid.UUID `db:"id"`
	ISBN   string    `db:"isbn"`
	Title  string    `db:"title"`
	Author string    `db:"author"`
	Year   int       `db:"year"`
}
