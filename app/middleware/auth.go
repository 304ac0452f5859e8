package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"agricare/app/models"
	"agricare/app/repositories"
	"agricare/app/services"
)

type contextKey string

const (
	authStateKey contextKey = "auth_state"
	requestIDKey contextKey = "request_id"
)

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom returns the request ID attached by RequestID, or "-".
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return "-"
}

// AuthStateFrom returns the authentication state attached by
// Authenticate. Requests that never passed through it read as
// signed out.
func AuthStateFrom(ctx context.Context) models.AuthState {
	if state, ok := ctx.Value(authStateKey).(models.AuthState); ok {
		return state
	}
	return models.SignedOut()
}

// Authenticate resolves the bearer token, loads the account it names
// and attaches an explicit AuthState to the request context. Requests
// without a token pass through signed out; routes decide themselves
// whether that is acceptable.
func Authenticate(auth *services.AuthService, users repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authStateKey, models.SignedOut())))
				return
			}

			tokenStr := strings.TrimSpace(header[7:])
			userID, err := auth.ParseToken(tokenStr)
			if err != nil {
				writeAuthError(w, "invalid token")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				writeAuthError(w, "unknown account")
				return
			}

			ctx := context.WithValue(r.Context(), authStateKey, models.SignedIn(user))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests whose context has no signed-in user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := AuthStateFrom(r.Context())
		if state.Status != models.AuthSignedIn {
			writeAuthError(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects signed-in users whose role does not match.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := AuthStateFrom(r.Context())
			if state.Status != models.AuthSignedIn {
				writeAuthError(w, "authentication required")
				return
			}
			if state.User.Role != role {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
