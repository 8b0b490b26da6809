// ABOUTME: Tests for the Trackdemic API client core
// ABOUTME: Uses httptest to verify bearer attachment and one-shot token refresh

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/trackdemic/trackdemic-cli/internal/store"
)

func newTestClient(t *testing.T, serverURL string) (*Client, *store.Store) {
	t.Helper()
	st := store.New(t.TempDir())
	return New(serverURL, st), st
}

func TestBearerAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(VerifyResponse{Valid: true})
	}))
	defer server.Close()

	c, st := newTestClient(t, server.URL)
	st.Set(store.KeyAccessToken, "tok123")

	if _, err := c.VerifyToken(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("expected Bearer tok123, got %q", gotAuth)
	}
}

func TestAnonymousRequestHasNoBearer(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LoginResponse{Access: "A", Refresh: "R"})
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL)
	if _, err := c.Login(context.Background(), LoginInput{Username: "alice", Password: "secret"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestRefreshAndReplayOnce(t *testing.T) {
	var verifyCalls, refreshCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/verify/":
			verifyCalls.Add(1)
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"})
				return
			}
			json.NewEncoder(w).Encode(VerifyResponse{Valid: true})
		case "/api/auth/refresh/":
			refreshCalls.Add(1)
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["refresh"] != "R" {
				t.Errorf("expected refresh token R, got %q", body["refresh"])
			}
			if r.Header.Get("Authorization") != "" {
				t.Error("refresh call should not carry a bearer header")
			}
			json.NewEncoder(w).Encode(map[string]string{"access": "fresh"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c, st := newTestClient(t, server.URL)
	st.Set(store.KeyAccessToken, "stale")
	st.Set(store.KeyRefreshToken, "R")

	resp, err := c.VerifyToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Valid {
		t.Error("expected valid response after silent refresh")
	}
	if got := verifyCalls.Load(); got != 2 {
		t.Errorf("expected original request replayed exactly once (2 calls), got %d", got)
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("expected exactly one refresh call, got %d", got)
	}
	if tok, _ := st.Get(store.KeyAccessToken); tok != "fresh" {
		t.Errorf("expected refreshed access token stored, got %q", tok)
	}
}

func TestRetriedRequestNeverLoops(t *testing.T) {
	var verifyCalls, refreshCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/verify/":
			verifyCalls.Add(1)
			// Always reject, even after refresh
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "still invalid"})
		case "/api/auth/refresh/":
			refreshCalls.Add(1)
			json.NewEncoder(w).Encode(map[string]string{"access": "fresh"})
		}
	}))
	defer server.Close()

	c, st := newTestClient(t, server.URL)
	st.Set(store.KeyAccessToken, "stale")
	st.Set(store.KeyRefreshToken, "R")

	_, err := c.VerifyToken(context.Background())
	if err == nil {
		t.Fatal("expected error when replay is rejected")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 APIError, got %v", err)
	}
	if got := verifyCalls.Load(); got != 2 {
		t.Errorf("expected exactly 2 calls (original + one replay), got %d", got)
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("expected exactly one refresh attempt, got %d", got)
	}
}

func TestNoRefreshTokenPropagatesOriginal401(t *testing.T) {
	var verifyCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh/" {
			t.Error("refresh endpoint should not be called without a refresh token")
		}
		verifyCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "bad token"})
	}))
	defer server.Close()

	c, st := newTestClient(t, server.URL)
	st.Set(store.KeyAccessToken, "stale")

	_, err := c.VerifyToken(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Detail != "bad token" {
		t.Errorf("expected original 401 payload unchanged, got %+v", apiErr)
	}
	if got := verifyCalls.Load(); got != 1 {
		t.Errorf("expected no retry, got %d calls", got)
	}
}

func TestRefreshFailureClearsTokensAndExpiresSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/verify/":
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "expired"})
		case "/api/auth/refresh/":
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "refresh expired"})
		}
	}))
	defer server.Close()

	c, st := newTestClient(t, server.URL)
	st.Set(store.KeyAccessToken, "stale")
	st.Set(store.KeyRefreshToken, "dead")

	_, err := c.VerifyToken(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if _, ok := st.Get(store.KeyAccessToken); ok {
		t.Error("expected access token cleared after failed refresh")
	}
	if _, ok := st.Get(store.KeyRefreshToken); ok {
		t.Error("expected refresh token cleared after failed refresh")
	}
}

func TestConnectionError(t *testing.T) {
	c, _ := newTestClient(t, "http://localhost:1")
	if _, err := c.VerifyToken(context.Background()); err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(VerifyResponse{Valid: true})
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	if _, err := c.VerifyToken(ctx); err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}

func TestListCoursesPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/courses/" {
			t.Errorf("expected path /api/courses/, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("search"); got != "algebra" {
			t.Errorf("expected search=algebra, got %q", got)
		}
		json.NewEncoder(w).Encode(Page[Course]{
			Count:   1,
			Results: []Course{{ID: 7, Title: "Linear Algebra"}},
		})
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL)
	page, err := c.ListCourses(context.Background(), CourseFilter{Search: "algebra"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Count != 1 || len(page.Results) != 1 || page.Results[0].Title != "Linear Algebra" {
		t.Errorf("unexpected page: %+v", page)
	}
}
