package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openbracket/tournament-api/auth"
	"github.com/openbracket/tournament-api/models"
	"github.com/openbracket/tournament-api/repositories"
)

type contextKey string

const userContextKey contextKey = "user"

var ErrNoUserInContext = errors.New("no authenticated user in request context")

// SessionResolver turns a bearer token into the authenticated user.
// Every request re-resolves against the user repository; there is no
// session cache.
type SessionResolver struct {
	codec    *auth.TokenCodec
	userRepo repositories.UserRepository
}

func NewSessionResolver(codec *auth.TokenCodec, userRepo repositories.UserRepository) *SessionResolver {
	return &SessionResolver{
		codec:    codec,
		userRepo: userRepo,
	}
}

// Authenticate rejects the request with 401 unless it carries a valid
// bearer token naming an existing user. On success the user is stored
// in the request context.
func (sr *SessionResolver) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			unauthenticated(w, "missing or malformed authorization header")
			return
		}

		subject, err := sr.codec.Decode(tokenString)
		if err != nil {
			unauthenticated(w, "invalid or expired token")
			return
		}

		user, err := sr.userRepo.GetByEmail(r.Context(), subject)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				unauthenticated(w, "invalid or expired token")
				return
			}
			slog.Error("failed to resolve session user", slog.Any("error", err))
			serverError(w, "the server encountered a problem and could not process your request")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext returns the user placed there by Authenticate.
func GetUserFromContext(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	if !ok || user == nil {
		return nil, ErrNoUserInContext
	}
	return user, nil
}

// ContextWithUser is exported for handler tests that bypass the
// middleware chain.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func unauthenticated(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, message)
}

func serverError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
