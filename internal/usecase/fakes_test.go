package usecase

import (
	"context"
	"strings"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/internal/gateway"

	"github.com/google/uuid"
)

// In-memory stand-ins for the pgx repositories. They mimic the store
// contract the services rely on, including the nil-on-no-rows convention
// and unique-constraint signaling.

type fakeUserRepo struct {
	users       map[uuid.UUID]*entity.User
	createCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.createCalls++
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return repository.ErrUniqueViolation
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	sessions   map[string]*entity.Session
	revoked    map[string]bool
	cleanCalls int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: make(map[string]*entity.Session),
		revoked:  make(map[string]bool),
	}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	clone := *session
	f.sessions[session.Token.String()] = &clone
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	session, ok := f.sessions[token]
	if !ok || f.revoked[token] {
		return nil, nil
	}
	clone := *session
	return &clone, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func (f *fakeSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	for token, session := range f.sessions {
		if session.UserID == userID {
			f.revoked[token] = true
		}
	}
	return nil
}

func (f *fakeSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	f.cleanCalls++
	return nil
}

func (f *fakeSessionRepo) activeCount(userID uuid.UUID) int {
	count := 0
	for token, session := range f.sessions {
		if session.UserID == userID && !f.revoked[token] {
			count++
		}
	}
	return count
}

type fakeBookRepo struct {
	books       []*entity.Book
	searchCalls int
}

func (f *fakeBookRepo) Create(ctx context.Context, book *entity.Book) error {
	for _, existing := range f.books {
		if existing.ISBN == book.ISBN {
			return repository.ErrUniqueViolation
		}
	}
	clone := *book
	f.books = append(f.books, &clone)
	return nil
}

func (f *fakeBookRepo) FindByISBN(ctx context.Context, isbn string) (*entity.Book, error) {
	for _, book := range f.books {
		if book.ISBN == isbn {
			clone := *book
			return &clone, nil
		}
	}
	return nil, nil
}

// Search applies the same case-insensitive conjunctive substring semantics
// the ILIKE query produces.
func (f *fakeBookRepo) Search(ctx context.Context, filters repository.SearchFilters) ([]*entity.Book, error) {
	f.searchCalls++

	matches := func(value, filter string) bool {
		if filter == "" {
			return true
		}
		return strings.Contains(strings.ToLower(value), strings.ToLower(filter))
	}

	var result []*entity.Book
	for _, book := range f.books {
		if matches(book.ISBN, filters.ISBN) &&
			matches(book.Title, filters.Title) &&
			matches(book.Author, filters.Author) {
			clone := *book
			result = append(result, &clone)
		}
	}
	return result, nil
}

type fakeReviewRepo struct {
	reviews   []*entity.Review
	usernames map[uuid.UUID]string
	createErr error
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{usernames: make(map[uuid.UUID]string)}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.reviews {
		if existing.UserID == review.UserID && existing.BookID == review.BookID {
			return repository.ErrUniqueViolation
		}
	}
	clone := *review
	f.reviews = append(f.reviews, &clone)
	return nil
}

func (f *fakeReviewRepo) FindByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*entity.Review, error) {
	for _, review := range f.reviews {
		if review.UserID == userID && review.BookID == bookID {
			clone := *review
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByBookID(ctx context.Context, bookID uuid.UUID) ([]*entity.ReviewWithUser, error) {
	var result []*entity.ReviewWithUser
	for _, review := range f.reviews {
		if review.BookID == bookID {
			result = append(result, &entity.ReviewWithUser{
				Review:   *review,
				Username: f.usernames[review.UserID],
			})
		}
	}
	return result, nil
}

type fakeRatingGateway struct {
	snapshot gateway.RatingSnapshot
	calls    int
}

func (f *fakeRatingGateway) ReviewCounts(ctx context.Context, isbn string) gateway.RatingSnapshot {
	f.calls++
	return f.snapshot
}

func newFakeRepository() (*repository.Repository, *fakeUserRepo, *fakeSessionRepo, *fakeBookRepo, *fakeReviewRepo) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	books := &fakeBookRepo{}
	reviews := newFakeReviewRepo()

	repo := &repository.Repository{
		User:    users,
		Session: sessions,
		Book:    books,
		Review:  reviews,
	}
	return repo, users, sessions, books, reviews
}
