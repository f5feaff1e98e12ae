package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/tareas/internal/domain"
	"github.com/msomdec/tareas/internal/handler"
	"github.com/msomdec/tareas/internal/repository/jsonfile"
	"github.com/msomdec/tareas/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

type testServices struct {
	auth   *service.AuthService
	tasks  *service.TaskService
	tokens *service.TokenService
}

func newTestServices(t *testing.T, opts ...service.TokenOption) testServices {
	t.Helper()
	dir := t.TempDir()
	db, err := jsonfile.New(filepath.Join(dir, "users.json"), filepath.Join(dir, "tareas.json"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens := service.NewTokenService(testJWTSecret, time.Hour, opts...)
	return testServices{
		// Use cost 4 for fast tests.
		auth:   service.NewAuthService(db.Users(), service.NewBcryptHasher(4), tokens),
		tasks:  service.NewTaskService(db.Tasks()),
		tokens: tokens,
	}
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body["message"]
}

func mustNotRun(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	if _, err := svc.auth.Register(ctx, "valid@example.com", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := svc.auth.Login(ctx, "valid@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	var got domain.Identity
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := handler.IdentityFromContext(r.Context())
		if !ok {
			t.Fatal("expected identity in context")
		}
		got = id
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.RequireAuth(svc.auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got.ID != 1 || got.Email != "valid@example.com" {
		t.Fatalf("unexpected identity %+v", got)
	}
}

func TestRequireAuth_SchemeIsCaseInsensitive(t *testing.T) {
	svc := newTestServices(t)
	token, err := svc.tokens.Issue(domain.Identity{ID: 3, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer "+token)
	w := httptest.NewRecorder()

	handler.RequireAuth(svc.auth, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestRequireAuth_TokenRequired(t *testing.T) {
	svc := newTestServices(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"scheme only", "Bearer"},
		{"empty token", "Bearer   "},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.RequireAuth(svc.auth, mustNotRun(t)).ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			if msg := decodeMessage(t, w); msg != "Token required" {
				t.Fatalf("expected message 'Token required', got %q", msg)
			}
		})
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	svc := newTestServices(t)

	otherKey := service.NewTokenService("a-completely-different-signing-key!!", time.Hour)
	forged, err := otherKey.Issue(domain.Identity{ID: 1, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	past := time.Now().Add(-2 * time.Hour)
	stale := service.NewTokenService(testJWTSecret, time.Hour, service.WithClock(func() time.Time { return past }))
	expired, err := stale.Issue(domain.Identity{ID: 1, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "not-a-jwt"},
		{"wrong key", forged},
		{"expired", expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()

			handler.RequireAuth(svc.auth, mustNotRun(t)).ServeHTTP(w, req)

			if w.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", w.Code)
			}
			if msg := decodeMessage(t, w); msg != "Invalid token" {
				t.Fatalf("expected message 'Invalid token', got %q", msg)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := handler.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handler.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if seen == "" {
		t.Fatal("expected a generated request id")
	}
	if got := w.Header().Get("X-Request-Id"); got != seen {
		t.Fatalf("expected header %q, got %q", seen, got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if seen != "abc-123" {
		t.Fatalf("expected caller id to be reused, got %q", seen)
	}
}

func TestRecover(t *testing.T) {
	h := handler.Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestLogRequests_PreservesStatus(t *testing.T) {
	h := handler.LogRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := handler.SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff, got %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("expected DENY, got %q", got)
	}
}
