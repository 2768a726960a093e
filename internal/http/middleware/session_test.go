package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cardoctor/cardoctor-api/internal/http/middleware"
	"github.com/cardoctor/cardoctor-api/internal/platform/auth"
)

const testSecret = "test-secret"

func guardedHandler(t *testing.T, invoked *bool, email *string) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*invoked = true
		if identity := middleware.SessionIdentity(r); identity != nil {
			*email = identity.Email()
		}
		w.WriteHeader(http.StatusOK)
	})
	return middleware.RequireSession(testSecret)(next)
}

func TestRequireSession_MissingCookie(t *testing.T) {
	var invoked bool
	var email string
	h := guardedHandler(t, &invoked, &email)

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if invoked {
		t.Error("downstream handler ran without a credential")
	}
}

func TestRequireSession_InvalidToken(t *testing.T) {
	var invoked bool
	var email string
	h := guardedHandler(t, &invoked, &email)

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "tampered"})
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if invoked {
		t.Error("downstream handler ran with an invalid credential")
	}
}

func TestRequireSession_ExpiredToken(t *testing.T) {
	token, err := auth.Issue(testSecret, map[string]any{"email": "a@x.com"}, -time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var invoked bool
	var email string
	h := guardedHandler(t, &invoked, &email)

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if invoked {
		t.Error("downstream handler ran with an expired credential")
	}
}

func TestRequireSession_ValidToken(t *testing.T) {
	token, err := auth.Issue(testSecret, map[string]any{"email": "a@x.com"}, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var invoked bool
	var email string
	h := guardedHandler(t, &invoked, &email)

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !invoked {
		t.Fatal("downstream handler did not run")
	}
	if email != "a@x.com" {
		t.Errorf("identity email = %q, want %q", email, "a@x.com")
	}
}
