package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"corpsite/internal/models"
	"corpsite/internal/rbac"
	"corpsite/internal/session"
)

// newTestSession creates a session.Data value suitable for testing.
func newTestSession(role models.Role, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		Username:    "testuser",
		Email:       "test@corpsite.local",
		DisplayName: "Test User",
		Role:        role,
		TwoFADone:   twoFADone,
	}
}

// ctxWithSession returns a context carrying the given session data using
// the same context key the middleware uses.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, SessionKey, data)
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

func TestSessionFromCtx(t *testing.T) {
	t.Run("returns session when present", func(t *testing.T) {
		sess := newTestSession(models.RoleAdmin, true)
		got := SessionFromCtx(ctxWithSession(context.Background(), sess))
		if got == nil {
			t.Fatal("expected non-nil session, got nil")
		}
		if got.Email != sess.Email {
			t.Errorf("Email: got %q, want %q", got.Email, sess.Email)
		}
		if got.Role != sess.Role {
			t.Errorf("Role: got %q, want %q", got.Role, sess.Role)
		}
	})

	t.Run("returns nil when not present", func(t *testing.T) {
		if got := SessionFromCtx(context.Background()); got != nil {
			t.Errorf("expected nil session, got %+v", got)
		}
	})

	t.Run("returns nil for wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), SessionKey, "not-a-session")
		if got := SessionFromCtx(ctx); got != nil {
			t.Errorf("expected nil for wrong type, got %+v", got)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("returns JSON 401 when no session", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAuth(inner)

		req := httptest.NewRequest(http.MethodGet, "/api/blog/posts", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if *called {
			t.Error("next handler should NOT have been called")
		}
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type: got %q, want application/json", ct)
		}
		if !strings.Contains(rr.Body.String(), `"success":false`) {
			t.Errorf("expected error envelope, got %q", rr.Body.String())
		}
	})

	t.Run("passes through when session exists", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAuth(inner)

		req := httptest.NewRequest(http.MethodGet, "/api/blog/posts", nil)
		req = req.WithContext(ctxWithSession(req.Context(), newTestSession(models.RoleEditor, true)))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !*called {
			t.Error("next handler should have been called")
		}
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})
}

func TestRequire2FA(t *testing.T) {
	tests := []struct {
		name           string
		session        *session.Data
		wantCode       int
		wantNextCalled bool
	}{
		{
			name:           "rejects when TwoFADone is false",
			session:        newTestSession(models.RoleAdmin, false),
			wantCode:       http.StatusForbidden,
			wantNextCalled: false,
		},
		{
			name:           "passes through when TwoFADone is true",
			session:        newTestSession(models.RoleAdmin, true),
			wantCode:       http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "passes through when session is nil (RequireAuth catches this first)",
			session:        nil,
			wantCode:       http.StatusOK,
			wantNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, called := okHandler()
			handler := Require2FA(inner)

			req := httptest.NewRequest(http.MethodGet, "/api/blog/posts", nil)
			if tt.session != nil {
				req = req.WithContext(ctxWithSession(req.Context(), tt.session))
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if *called != tt.wantNextCalled {
				t.Errorf("next handler called: got %v, want %v", *called, tt.wantNextCalled)
			}
			if rr.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantCode)
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name           string
		session        *session.Data
		resource       rbac.Resource
		action         rbac.Action
		wantCode       int
		wantNextCalled bool
	}{
		{
			name:     "401 when no session",
			session:  nil,
			resource: rbac.ResourceBlog, action: rbac.ActionRead,
			wantCode: http.StatusUnauthorized, wantNextCalled: false,
		},
		{
			name:     "editor can write blog",
			session:  newTestSession(models.RoleEditor, true),
			resource: rbac.ResourceBlog, action: rbac.ActionWrite,
			wantCode: http.StatusOK, wantNextCalled: true,
		},
		{
			name:     "editor cannot write careers",
			session:  newTestSession(models.RoleEditor, true),
			resource: rbac.ResourceCareers, action: rbac.ActionWrite,
			wantCode: http.StatusForbidden, wantNextCalled: false,
		},
		{
			name:     "hr can write careers",
			session:  newTestSession(models.RoleHR, true),
			resource: rbac.ResourceCareers, action: rbac.ActionWrite,
			wantCode: http.StatusOK, wantNextCalled: true,
		},
		{
			name:     "only admin deletes",
			session:  newTestSession(models.RoleContentManager, true),
			resource: rbac.ResourceBlog, action: rbac.ActionDelete,
			wantCode: http.StatusForbidden, wantNextCalled: false,
		},
		{
			name:     "legacy hr role name is honored",
			session:  newTestSession(models.Role("hr_manager"), true),
			resource: rbac.ResourceCareers, action: rbac.ActionWrite,
			wantCode: http.StatusOK, wantNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, called := okHandler()
			handler := RequirePermission(tt.resource, tt.action)(inner)

			req := httptest.NewRequest(http.MethodPost, "/api/test", nil)
			if tt.session != nil {
				req = req.WithContext(ctxWithSession(req.Context(), tt.session))
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if *called != tt.wantNextCalled {
				t.Errorf("next handler called: got %v, want %v", *called, tt.wantNextCalled)
			}
			if rr.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantCode)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name           string
		session        *session.Data
		wantCode       int
		wantNextCalled bool
	}{
		{"403 when session is nil", nil, http.StatusForbidden, false},
		{"403 when role is editor", newTestSession(models.RoleEditor, true), http.StatusForbidden, false},
		{"passes through when role is admin", newTestSession(models.RoleAdmin, true), http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, called := okHandler()
			handler := RequireAdmin(inner)

			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			if tt.session != nil {
				req = req.WithContext(ctxWithSession(req.Context(), tt.session))
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if *called != tt.wantNextCalled {
				t.Errorf("next handler called: got %v, want %v", *called, tt.wantNextCalled)
			}
			if rr.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantCode)
			}
		})
	}
}
