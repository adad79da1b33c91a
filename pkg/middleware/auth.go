package middleware

import (
	"net/http"
	"strings"

	"book-review/internal/data/repository"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

const SessionCookieName = "session_token"

// sessionToken extracts the token from the session cookie or, failing that,
// from a Bearer authorization header.
func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// RequireSession gates protected routes. A missing or invalid session is a
// navigation concern, not a hard failure: the caller is redirected to /login.
func RequireSession(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				utils.ResponseRedirect(w, r, "/login")
				return
			}

			// Find valid session
			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil {
				logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
				utils.ResponseRedirect(w, r, "/login")
				return
			}

			// Resolve the identity the session is bound to
			user, err := userRepo.FindByID(r.Context(), session.UserID)
			if err != nil {
				logger.Error("Failed to resolve session user",
					zap.Error(err),
					zap.String("user_id", session.UserID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				logger.Warn("Session bound to missing user",
					zap.String("user_id", session.UserID.String()))
				utils.ResponseRedirect(w, r, "/login")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, user.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
