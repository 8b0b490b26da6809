// ABOUTME: Tests for the admin commands
// ABOUTME: Covers user listing, role updates, and course moderation

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func adminServer(t *testing.T, requests *[]recordedRequest) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	record := func(next func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			*requests = append(*requests, recordedRequest{
				Method: r.Method, Path: r.URL.Path + "?" + r.URL.RawQuery, Body: body,
			})
			next(w, r)
		}
	}
	mux.HandleFunc("/api/users/admin/users/", record(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{
			{"id": 4, "username": "amina", "email": "amina@school.test", "user_type": "student", "is_active": true},
			{"id": 9, "username": "root", "email": "root@school.test", "user_type": "faculty", "is_active": true, "is_superuser": true},
		}})
	}))
	mux.HandleFunc("/api/users/admin/users/4/", record(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 4, "username": "amina", "user_type": "faculty"})
	}))
	mux.HandleFunc("/api/users/admin/users/4/delete/", record(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	mux.HandleFunc("/api/users/admin/courses/", record(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{
			{"id": 12, "title": "Discrete Math", "is_active": false, "instructor": map[string]any{"username": "prof"}},
		}})
	}))
	mux.HandleFunc("/api/users/admin/courses/12/status/", record(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRunAdminUsersPassesSearch(t *testing.T) {
	var requests []recordedRequest
	server := adminServer(t, &requests)
	setupCmdEnv(t, server.URL)
	adminUserSearch = "amina"

	var buf bytes.Buffer
	code := runAdminUsers(context.Background(), &buf)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(requests[0].Path, "search=amina") {
		t.Errorf("expected the search parameter, got %s", requests[0].Path)
	}
	out := buf.String()
	if !strings.Contains(out, "amina") {
		t.Errorf("expected the user row, got %q", out)
	}
	// The superuser flag overrides the stored role in the listing.
	if !strings.Contains(out, "admin") {
		t.Errorf("expected the superuser shown as admin, got %q", out)
	}
}

func TestRunAdminUpdateUserRole(t *testing.T) {
	var requests []recordedRequest
	server := adminServer(t, &requests)
	setupCmdEnv(t, server.URL)

	var buf bytes.Buffer
	code := runAdminUpdateUser(context.Background(), &buf, "4", map[string]any{"user_type": "faculty"})

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	req := requests[0]
	if req.Method != http.MethodPut {
		t.Errorf("expected PUT, got %s", req.Method)
	}
	if req.Body["user_type"] != "faculty" {
		t.Errorf("expected the role in the body, got %v", req.Body)
	}
}

func TestRunAdminUpdateUserRejectsEmptyUpdate(t *testing.T) {
	setupCmdEnv(t, "http://localhost:1")

	var buf bytes.Buffer
	code := runAdminUpdateUser(context.Background(), &buf, "4", map[string]any{})

	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestRunAdminDeleteUserNeedsConfirmation(t *testing.T) {
	var requests []recordedRequest
	server := adminServer(t, &requests)
	setupCmdEnv(t, server.URL)

	var buf bytes.Buffer
	code := runAdminDeleteUser(context.Background(), &buf, "4")

	if code != 2 {
		t.Fatalf("expected exit code 2 without --yes, got %d", code)
	}
	if len(requests) != 0 {
		t.Fatal("nothing may be deleted without confirmation")
	}

	adminYes = true
	buf.Reset()
	code = runAdminDeleteUser(context.Background(), &buf, "4")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if len(requests) != 1 || requests[0].Method != http.MethodDelete {
		t.Errorf("expected one DELETE, got %+v", requests)
	}
}

func TestRunAdminCoursesShowsStatus(t *testing.T) {
	var requests []recordedRequest
	server := adminServer(t, &requests)
	setupCmdEnv(t, server.URL)

	var buf bytes.Buffer
	code := runAdminCourses(context.Background(), &buf)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "Discrete Math") || !strings.Contains(out, "inactive") {
		t.Errorf("expected the inactive course row, got %q", out)
	}
}

func TestRunAdminCourseStatus(t *testing.T) {
	var requests []recordedRequest
	server := adminServer(t, &requests)
	setupCmdEnv(t, server.URL)

	var buf bytes.Buffer
	code := runAdminCourseStatus(context.Background(), &buf, "12", true)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	req := requests[0]
	if req.Method != http.MethodPut {
		t.Errorf("expected PUT, got %s", req.Method)
	}
	if req.Body["is_active"] != true {
		t.Errorf("expected the active flag in the body, got %v", req.Body)
	}
	if !strings.Contains(buf.String(), "now active") {
		t.Errorf("expected a status message, got %q", buf.String())
	}
}
