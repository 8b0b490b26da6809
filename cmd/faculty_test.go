// ABOUTME: Tests for the faculty commands
// ABOUTME: Covers authoring requests, deletion confirmation, and roster output

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

func facultyServer(t *testing.T, requests *[]recordedRequest) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	record := func(next func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			*requests = append(*requests, recordedRequest{
				Method: r.Method, Path: r.URL.Path, Body: body,
			})
			next(w, r)
		}
	}
	mux.HandleFunc("/api/courses/faculty/", record(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 12, "title": "Discrete Math"})
	}))
	mux.HandleFunc("/api/courses/faculty/12/", record(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 12, "title": "Discrete Math II"})
	}))
	mux.HandleFunc("/api/courses/faculty/12/students/", record(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 4, "username": "amina", "email": "amina@school.test", "progress_percentage": 62.0},
		})
	}))
	mux.HandleFunc("/api/courses/faculty/12/students/add/", record(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	mux.HandleFunc("/api/quizzes/faculty/", record(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 31, "title": "Week 1 Quiz"})
	}))
	mux.HandleFunc("/api/quizzes/faculty/31/attempts/", record(func(w http.ResponseWriter, r *http.Request) {
		score := 81.5
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "quiz_title": "Week 1 Quiz", "score": score, "passed": true, "completed_at": "2026-08-30T10:00:00Z"},
		})
	}))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

func TestRunFacultyCreateCourseRequiresTitle(t *testing.T) {
	setupCmdEnv(t, "http://localhost:1")

	var buf bytes.Buffer
	code := runFacultyCreateCourse(context.Background(), &buf, map[string]any{})

	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "--title") {
		t.Errorf("expected a usage error, got %q", buf.String())
	}
}

func TestRunFacultyCreateCoursePostsFields(t *testing.T) {
	var requests []recordedRequest
	server := facultyServer(t, &requests)
	setupCmdEnv(t, server.URL)

	var buf bytes.Buffer
	code := runFacultyCreateCourse(context.Background(), &buf, map[string]any{
		"title": "Discrete Math", "category": 2,
	})

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if len(requests) != 1 || requests[0].Method != http.MethodPost {
		t.Fatalf("expected one POST, got %+v", requests)
	}
	if requests[0].Body["title"] != "Discrete Math" {
		t.Errorf("expected the title in the request, got %v", requests[0].Body)
	}
	if !strings.Contains(buf.String(), "Created course 12") {
		t.Errorf("expected a creation message, got %q", buf.String())
	}
}

func TestRunFacultyUpdateCourseSendsOnlyChangedFields(t *testing.T) {
	var requests []recordedRequest
	server := facultyServer(t, &requests)
	setupCmdEnv(t, server.URL)

	var buf bytes.Buffer
	code := runFacultyUpdateCourse(context.Background(), &buf, "12", map[string]any{
		"title": "Discrete Math II",
	})

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	req := requests[0]
	if req.Method != http.MethodPatch {
		t.Errorf("expected PATCH, got %s", req.Method)
	}
	if len(req.Body) != 1 || req.Body["title"] != "Discrete Math II" {
		t.Errorf("expected only the title field, got %v", req.Body)
	}
}

func TestRunFacultyUpdateCourseRejectsEmptyUpdate(t *testing.T) {
	setupCmdEnv(t, "http://localhost:1")

	var buf bytes.Buffer
	code := runFacultyUpdateCourse(context.Background(), &buf, "12", map[string]any{})

	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "nothing to update") {
		t.Errorf("expected a usage error, got %q", buf.String())
	}
}

func TestRunFacultyDeleteCourseNeedsConfirmation(t *testing.T) {
	var requests []recordedRequest
	server := facultyServer(t, &requests)
	setupCmdEnv(t, server.URL)

	var buf bytes.Buffer
	code := runFacultyDeleteCourse(context.Background(), &buf, "12")

	if code != 2 {
		t.Fatalf("expected exit code 2 without --yes, got %d", code)
	}
	if len(requests) != 0 {
		t.Fatal("nothing may be deleted without confirmation")
	}

	facultyYes = true
	buf.Reset()
	code = runFacultyDeleteCourse(context.Background(), &buf, "12")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if len(requests) != 1 || requests[0].Method != http.MethodDelete {
		t.Errorf("expected one DELETE, got %+v", requests)
	}
}

func TestRunFacultyStudentsListsRoster(t *testing.T) {
	var requests []recordedRequest
	server := facultyServer(t, &requests)
	setupCmdEnv(t, server.URL)

	var buf bytes.Buffer
	code := runFacultyStudents(context.Background(), &buf, "12")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "amina") || !strings.Contains(out, "62%") {
		t.Errorf("expected the roster entry, got %q", out)
	}
}

func TestRunFacultyStudentsAddEnrollsFirst(t *testing.T) {
	var requests []recordedRequest
	server := facultyServer(t, &requests)
	setupCmdEnv(t, server.URL)
	facultyStudentAdd = 4

	var buf bytes.Buffer
	code := runFacultyStudents(context.Background(), &buf, "12")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if len(requests) != 2 {
		t.Fatalf("expected the add call then the listing, got %+v", requests)
	}
	if requests[0].Path != "/api/courses/faculty/12/students/add/" {
		t.Errorf("expected the add endpoint first, got %s", requests[0].Path)
	}
	if got := requests[0].Body["student_id"]; got != float64(4) {
		t.Errorf("expected student 4 in the body, got %v", got)
	}
}

func TestRunFacultyCreateQuizRequiresCourse(t *testing.T) {
	setupCmdEnv(t, "http://localhost:1")

	var buf bytes.Buffer
	code := runFacultyCreateQuiz(context.Background(), &buf, map[string]any{"title": "Week 1 Quiz"})

	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "--course") {
		t.Errorf("expected a usage error, got %q", buf.String())
	}
}

func TestRunFacultyCreateQuiz(t *testing.T) {
	var requests []recordedRequest
	server := facultyServer(t, &requests)
	setupCmdEnv(t, server.URL)

	var buf bytes.Buffer
	code := runFacultyCreateQuiz(context.Background(), &buf, map[string]any{
		"title": "Week 1 Quiz", "course": 12, "time_limit_minutes": 0,
	})

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if requests[0].Body["time_limit_minutes"] != float64(0) {
		t.Errorf("expected the untimed limit to pass through, got %v", requests[0].Body)
	}
	if !strings.Contains(buf.String(), "Created quiz 31") {
		t.Errorf("expected a creation message, got %q", buf.String())
	}
}

func TestRunFacultyAttempts(t *testing.T) {
	var requests []recordedRequest
	server := facultyServer(t, &requests)
	setupCmdEnv(t, server.URL)

	var buf bytes.Buffer
	code := runFacultyAttempts(context.Background(), &buf, "31")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "Week 1 Quiz") || !strings.Contains(out, "passed") {
		t.Errorf("expected the attempt row, got %q", out)
	}
}

func TestRunFacultyAttemptsRejectsBadID(t *testing.T) {
	setupCmdEnv(t, "http://localhost:1")

	var buf bytes.Buffer
	code := runFacultyAttempts(context.Background(), &buf, "nope")

	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "not a valid quiz id") {
		t.Errorf("expected an id error, got %q", buf.String())
	}
}
