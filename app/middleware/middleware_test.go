package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"agricare/app/models"
	"agricare/app/repositories"
	"agricare/app/services"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = RequestIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.NotEmpty(t, captured)
	assert.Equal(t, captured, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDFromDefault(t *testing.T) {
	assert.Equal(t, "-", RequestIDFrom(context.Background()))
}

func TestRecoverer(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestContentTypeJSON(t *testing.T) {
	handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("api path", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/community/posts", nil))
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})

	t.Run("web path", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/community", nil))
		assert.Empty(t, rec.Header().Get("Content-Type"))
	})
}

func authFixture(t *testing.T) (*services.AuthService, repositories.UserRepository, *models.User, string) {
	t.Helper()
	store, err := repositories.OpenBadger("")
	assert.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})

	authService := services.NewAuthService(store.Users(), []byte("test-secret"))
	user, err := authService.Register(context.Background(), services.RegisterInput{
		Name:     "Ravi Kumar",
		Phone:    "9876543210",
		Email:    "ravi@example.com",
		Password: "secret123",
		Location: "Nashik",
		Role:     models.RoleFarmer,
	})
	assert.NoError(t, err)

	token, err := authService.IssueToken(user)
	assert.NoError(t, err)
	return authService, store.Users(), user, token
}

func TestAuthenticate(t *testing.T) {
	authService, users, user, token := authFixture(t)

	var seen models.AuthState
	handler := Authenticate(authService, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = AuthStateFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("no token passes through signed out", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, models.AuthSignedOut, seen.Status)
	})

	t.Run("valid token attaches the user", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, models.AuthSignedIn, seen.Status)
		assert.Equal(t, user.ID, seen.User.ID)
	})

	t.Run("bad token is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("signed out", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("signed in", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		ctx := context.WithValue(req.Context(), authStateKey, models.SignedIn(&models.User{ID: 1}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(models.RoleFarmer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func(user *models.User) *http.Request {
		req := httptest.NewRequest("GET", "/", nil)
		if user == nil {
			return req
		}
		ctx := context.WithValue(req.Context(), authStateKey, models.SignedIn(user))
		return req.WithContext(ctx)
	}

	t.Run("matching role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request(&models.User{ID: 1, Role: models.RoleFarmer}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request(&models.User{ID: 2, Role: models.RoleBuyer}))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("signed out", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request(nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
