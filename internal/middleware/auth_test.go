package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campusboard/internal/models"
	"campusboard/internal/token"
)

// ctxWithViewer returns a context carrying the given user using the same
// context key the middleware uses. This allows tests to simulate the state
// after LoadViewer has run without needing a real token or database.
func ctxWithViewer(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ViewerKey, user)
}

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

// ---------- ViewerFromCtx ----------

func TestViewerFromCtx(t *testing.T) {
	t.Run("returns viewer when present", func(t *testing.T) {
		viewer := &models.User{ID: 7, Username: "alice", Admin: true}
		ctx := ctxWithViewer(context.Background(), viewer)

		got := ViewerFromCtx(ctx)
		if got == nil {
			t.Fatal("expected non-nil viewer, got nil")
		}
		if got.ID != viewer.ID {
			t.Errorf("ID: got %d, want %d", got.ID, viewer.ID)
		}
		if got.Username != viewer.Username {
			t.Errorf("Username: got %q, want %q", got.Username, viewer.Username)
		}
		if got.Admin != viewer.Admin {
			t.Errorf("Admin: got %v, want %v", got.Admin, viewer.Admin)
		}
	})

	t.Run("returns nil when not present", func(t *testing.T) {
		got := ViewerFromCtx(context.Background())
		if got != nil {
			t.Errorf("expected nil viewer, got %+v", got)
		}
	})
}

// ---------- RequireAuth ----------

func TestRequireAuth(t *testing.T) {
	t.Run("allows authenticated viewer", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAuth(inner)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", nil)
		req = req.WithContext(ctxWithViewer(req.Context(), &models.User{ID: 1, Username: "alice"}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !*called {
			t.Error("next handler should have been called")
		}
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})

	t.Run("rejects anonymous request with 401", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAuth(inner)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if *called {
			t.Error("next handler should not have been called")
		}
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "error") {
			t.Errorf("body: got %q, want a JSON error", rr.Body.String())
		}
	})
}

// ---------- RequireAdmin ----------

func TestRequireAdmin(t *testing.T) {
	t.Run("allows admin", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAdmin(inner)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", nil)
		req = req.WithContext(ctxWithViewer(req.Context(), &models.User{ID: 1, Username: "root", Admin: true}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !*called {
			t.Error("next handler should have been called")
		}
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})

	t.Run("rejects non-admin with 403", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAdmin(inner)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", nil)
		req = req.WithContext(ctxWithViewer(req.Context(), &models.User{ID: 2, Username: "bob"}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if *called {
			t.Error("next handler should not have been called")
		}
		if rr.Code != http.StatusForbidden {
			t.Errorf("status: got %d, want 403", rr.Code)
		}
	})

	t.Run("rejects anonymous with 403", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAdmin(inner)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if *called {
			t.Error("next handler should not have been called")
		}
		if rr.Code != http.StatusForbidden {
			t.Errorf("status: got %d, want 403", rr.Code)
		}
	})
}

// ---------- LoadViewer ----------

func TestLoadViewer(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour, time.Now)

	t.Run("missing header passes through as anonymous", func(t *testing.T) {
		var got *models.User
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = ViewerFromCtx(r.Context())
			w.WriteHeader(http.StatusOK)
		})
		handler := LoadViewer(tokens, nil)(inner)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if got != nil {
			t.Errorf("expected anonymous viewer, got %+v", got)
		}
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})

	t.Run("garbage token passes through as anonymous", func(t *testing.T) {
		var got *models.User
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = ViewerFromCtx(r.Context())
			w.WriteHeader(http.StatusOK)
		})
		handler := LoadViewer(tokens, nil)(inner)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if got != nil {
			t.Errorf("expected anonymous viewer, got %+v", got)
		}
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})
}

// ---------- bearerToken ----------

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{name: "missing header", header: "", want: "", wantOK: false},
		{name: "valid bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi", wantOK: true},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", want: "", wantOK: false},
		{name: "bearer with no token", header: "Bearer ", want: "", wantOK: false},
		{name: "bearer with spaces", header: "Bearer   token  ", want: "token", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			got, ok := bearerToken(req)
			if ok != tt.wantOK {
				t.Errorf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("token: got %q, want %q", got, tt.want)
			}
		})
	}
}
