package repository

import (
	"errors"

	"book-review/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Store-level constraint signals, kept distinct from generic errors so the
// services can re-map them to domain conflicts.
var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
)

// Postgres SQLSTATE codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// constraintError translates pgx constraint faults; anything else passes
// through unchanged.
func constraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return ErrUniqueViolation
	case codeForeignKeyViolation:
		return ErrForeignKeyViolation
	}
	return err
}

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Book    BookRepository
	Review  ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Book:    NewBookRepository(db, log),
		Review:  NewReviewRepository(db, log),
	}
}
