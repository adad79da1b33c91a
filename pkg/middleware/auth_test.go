package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"book-review/internal/data/entity"
	"book-review/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSessionRepo struct {
	session *entity.Session
}

func (s *stubSessionRepo) Create(ctx context.Context, session *entity.Session) error { return nil }

func (s *stubSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if s.session != nil && s.session.Token.String() == token {
		return s.session, nil
	}
	return nil, nil
}

func (s *stubSessionRepo) Revoke(ctx context.Context, token string) error { return nil }

func (s *stubSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (s *stubSessionRepo) CleanExpiredSessions(ctx context.Context) error { return nil }

type stubUserRepo struct {
	user *entity.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, nil
}

func gatedHandler(t *testing.T, sessions *stubSessionRepo, users *stubUserRepo) (http.Handler, *string) {
	t.Helper()

	var seenUsername string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := utils.GetUsernameFromContext(r.Context())
		require.True(t, ok, "username must be set on the request context")
		seenUsername = username
		w.WriteHeader(http.StatusOK)
	})

	return RequireSession(sessions, users, zap.NewNop())(inner), &seenUsername
}

func TestRequireSessionRedirectsWithoutToken(t *testing.T) {
	handler, _ := gatedHandler(t, &stubSessionRepo{}, &stubUserRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireSessionRedirectsOnUnknownToken(t *testing.T) {
	handler, _ := gatedHandler(t, &stubSessionRepo{}, &stubUserRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: uuid.NewString()})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireSessionPassesWithValidCookie(t *testing.T) {
	userID := uuid.New()
	token := uuid.New()

	sessions := &stubSessionRepo{session: &entity.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	users := &stubUserRepo{user: &entity.User{ID: userID, Username: "alice"}}

	handler, seenUsername := gatedHandler(t, sessions, users)

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token.String()})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", *seenUsername)
}

func TestRequireSessionAcceptsBearerToken(t *testing.T) {
	userID := uuid.New()
	token := uuid.New()

	sessions := &stubSessionRepo{session: &entity.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	users := &stubUserRepo{user: &entity.User{ID: userID, Username: "alice"}}

	handler, _ := gatedHandler(t, sessions, users)

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	req.Header.Set("Authorization", "Bearer "+token.String())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
