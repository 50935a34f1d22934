package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eNoodles/user-service/internal/auth/service"
	"github.com/eNoodles/user-service/internal/common/clock"
	commoncrypto "github.com/eNoodles/user-service/internal/common/crypto"
	"github.com/eNoodles/user-service/internal/common/logger"
	"github.com/eNoodles/user-service/internal/session"
	"github.com/eNoodles/user-service/internal/user/domain"
	userrepo "github.com/eNoodles/user-service/internal/user/repository"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	log, err := logger.New("", "test", "CRITICAL")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := session.NewMemoryStore(context.Background(), clk, log)
	t.Cleanup(func() { _ = store.Close() })
	dir := session.NewDirectory(store, commoncrypto.NewUUIDGenerator(), 10*time.Second, log)

	repo := userrepo.NewMemoryRepository()
	if err := repo.Create(context.Background(), domain.User{
		ID:       "id-1",
		Username: "alice",
		Password: "p1",
	}); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}

	return NewHandler(service.NewAuthService(repo, dir, log), log)
}

func postLogin(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLogin_Handler_Success(t *testing.T) {
	h := newTestHandler(t)

	rec := postLogin(t, h, `{"username":"alice","password":"p1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"session"`) {
		t.Errorf("expected a session field, got %s", rec.Body.String())
	}
}

func TestLogin_Handler_MissingFields(t *testing.T) {
	h := newTestHandler(t)

	rec := postLogin(t, h, `{"username":"alice"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "password") {
		t.Errorf("expected the missing field named, got %s", rec.Body.String())
	}
}

func TestLogin_Handler_InvalidJSON(t *testing.T) {
	h := newTestHandler(t)

	rec := postLogin(t, h, `{broken`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestLogin_Handler_UnknownUser(t *testing.T) {
	h := newTestHandler(t)

	rec := postLogin(t, h, `{"username":"ghost","password":"p1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "UNKNOWN_USER") {
		t.Errorf("expected UNKNOWN_USER code, got %s", rec.Body.String())
	}
}

func TestLogin_Handler_WrongPassword(t *testing.T) {
	h := newTestHandler(t)

	rec := postLogin(t, h, `{"username":"alice","password":"nope"}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "WRONG_PASSWORD") {
		t.Errorf("expected WRONG_PASSWORD code, got %s", rec.Body.String())
	}
}

func TestLogin_Handler_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/login", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
