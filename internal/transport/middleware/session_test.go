package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/lularocha/glossary-builder/pkg/ctxutil"
)

//go:generate moq -out session_validator_mock_test.go -pkg middleware . sessionValidator

func TestSession_ValidToken(t *testing.T) {
	sessionID := uuid.New()
	validator := &sessionValidatorMock{
		ValidateSessionTokenFunc: func(token string) (uuid.UUID, error) {
			if token == "valid-token" {
				return sessionID, nil
			}
			return uuid.Nil, errors.New("invalid token")
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := ctxutil.SessionIDFromCtx(r.Context())
		if !ok {
			t.Error("expected session id in context")
			return
		}
		if got != sessionID {
			t.Errorf("expected session %v, got %v", sessionID, got)
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	Session(validator)(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if len(validator.ValidateSessionTokenCalls()) != 1 {
		t.Errorf("expected 1 validator call, got %d", len(validator.ValidateSessionTokenCalls()))
	}
}

func TestSession_InvalidToken(t *testing.T) {
	validator := &sessionValidatorMock{
		ValidateSessionTokenFunc: func(token string) (uuid.UUID, error) {
			return uuid.Nil, errors.New("invalid token")
		},
	}

	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()

	Session(validator)(handler).ServeHTTP(rec, req)

	if called {
		t.Error("handler should not be called for invalid token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"unauthorized"`) {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestSession_NoToken_Anonymous(t *testing.T) {
	validator := &sessionValidatorMock{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.SessionIDFromCtx(r.Context()); ok {
			t.Error("expected no session id for anonymous request")
		}
		w.WriteHeader(http.StatusOK)
	})

	for _, header := range []string{"", "Basic dXNlcjpwYXNz", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		Session(validator)(handler).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("header %q: expected status %d, got %d", header, http.StatusOK, rec.Code)
		}
	}
	if len(validator.ValidateSessionTokenCalls()) != 0 {
		t.Error("validator should not be called without a token")
	}
}

func TestRequireSession(t *testing.T) {
	handler := RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d without session, got %d", http.StatusUnauthorized, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(ctxutil.WithSessionID(req.Context(), uuid.New()))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d with session, got %d", http.StatusNoContent, rec.Code)
	}
}
