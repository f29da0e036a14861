package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"medipredict/internal/store"
)

func newAuthFixture(t *testing.T, upstream http.HandlerFunc) (*AuthHandler, *store.SessionStore, func()) {
	t.Helper()
	srv := httptest.NewServer(upstream)
	sessions := store.NewSessionStore(store.NewMemoryKV(), time.Hour)
	client := NewAuthClient(srv.URL, 5*time.Second, zap.NewNop())
	return NewAuthHandler(client, sessions, zap.NewNop()), sessions, srv.Close
}

func TestLogin_CachesSessionAndPassesBodyThrough(t *testing.T) {
	upstreamBody := `{"access_token":"tok-abc","token_type":"bearer","user":{"email":"user@example.com"}}`
	h, sessions, done := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			t.Errorf("unexpected upstream path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"email":"user@example.com"`) {
			t.Errorf("credentials not forwarded: %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(upstreamBody))
	})
	defer done()

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"user@example.com","password":"secret"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	// upstream body passed through unchanged
	if w.Body.String() != upstreamBody {
		t.Fatalf("body not passed through: %s", w.Body.String())
	}
	// session cached under the returned token
	sess, err := sessions.Get(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("session not cached: %v", err)
	}
	if sess.Email != "user@example.com" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestLogin_MirrorsUpstreamFailure(t *testing.T) {
	h, _, done := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Incorrect email or password"}`))
	})
	defer done()

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"user@example.com","password":"wrong"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 mirrored, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Incorrect email or password") {
		t.Fatalf("detail not mirrored: %s", w.Body.String())
	}
}

func TestLogin_RequiresCredentials(t *testing.T) {
	h, _, done := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called")
	})
	defer done()

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"user@example.com"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLogin_UnreachableAuthServiceIs502(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	sessions := store.NewSessionStore(store.NewMemoryKV(), time.Hour)
	client := NewAuthClient(srv.URL, time.Second, zap.NewNop())
	h := NewAuthHandler(client, sessions, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"user@example.com","password":"secret"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestRegister_ForwardsAndReturnsConfirmation(t *testing.T) {
	h, _, done := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/register" {
			t.Errorf("unexpected upstream path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"full_name":"Jane Doe"`) {
			t.Errorf("full_name not forwarded: %s", body)
		}
		_, _ = w.Write([]byte(`{"message":"User created successfully"}`))
	})
	defer done()

	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"email":"jane@example.com","password":"secret","full_name":"Jane Doe"}`))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "User created successfully") {
		t.Fatalf("confirmation not passed through: %s", w.Body.String())
	}
}

func TestRegister_RequiresFullName(t *testing.T) {
	h, _, done := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called")
	})
	defer done()

	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"email":"jane@example.com","password":"secret","full_name":"  "}`))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
