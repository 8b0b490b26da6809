// ABOUTME: Tests for the root app model
// ABOUTME: Covers bootstrap routing, the route guard, and post-login resume

package tui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trackdemic/trackdemic-cli/internal/client"
	"github.com/trackdemic/trackdemic-cli/internal/debuglog"
	"github.com/trackdemic/trackdemic-cli/internal/session"
	"github.com/trackdemic/trackdemic-cli/internal/store"
)

func newTestApp(t *testing.T, handler http.Handler) (*App, *store.Store) {
	t.Helper()
	var baseURL string
	if handler != nil {
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		baseURL = server.URL
	} else {
		// Anything hitting the network is a test bug.
		baseURL = "http://localhost:1"
	}
	st := store.New(t.TempDir())
	api := client.New(baseURL, st)
	sess := session.New(api, st)
	return New(api, sess, st), st
}

func verifyHandler(user map[string]any) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/verify/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"valid": true, "user": user})
	})
	return mux
}

func TestBootstrapWithoutTokenShowsLogin(t *testing.T) {
	app, _ := newTestApp(t, nil)

	msg := app.bootstrap()()
	model, _ := app.Update(msg)
	app = model.(*App)

	if app.screen != ScreenLogin {
		t.Errorf("expected the login screen, got %v", app.screen)
	}
	if app.booting {
		t.Error("booting flag should clear after bootstrap")
	}
}

func TestBootstrapAuthenticatedOpensDashboard(t *testing.T) {
	app, st := newTestApp(t, verifyHandler(map[string]any{
		"id": 1, "username": "amina", "user_type": "student",
	}))
	st.Set(store.KeyAccessToken, "tok")

	msg := app.bootstrap()()
	model, _ := app.Update(msg)
	app = model.(*App)

	if app.screen != ScreenDashboard {
		t.Errorf("expected the dashboard, got %v", app.screen)
	}
	if app.dash == nil {
		t.Error("expected a dashboard model")
	}
}

func TestGuardRedirectsAnonymousAndResumes(t *testing.T) {
	app, _ := newTestApp(t, nil)

	msg := app.bootstrap()()
	model, _ := app.Update(msg)
	app = model.(*App)

	cmd := app.navigate(ScreenChat)
	if app.screen != ScreenLogin {
		t.Fatalf("anonymous navigation should land on login, got %v", app.screen)
	}
	if app.resume != ScreenChat {
		t.Errorf("expected the chat screen to be remembered, got %v", app.resume)
	}
	_ = cmd
}

func TestGuardDeniesWrongRole(t *testing.T) {
	app, st := newTestApp(t, verifyHandler(map[string]any{
		"id": 2, "username": "prof", "user_type": "faculty",
	}))
	st.Set(store.KeyAccessToken, "tok")

	msg := app.bootstrap()()
	model, _ := app.Update(msg)
	app = model.(*App)

	app.navigate(ScreenTakeQuiz)
	if app.screen == ScreenTakeQuiz {
		t.Error("faculty must not reach the quiz-taking screen")
	}
	if app.notice == "" {
		t.Error("expected an access notice")
	}
}

func TestLoginFailureKeepsLoginScreen(t *testing.T) {
	app, _ := newTestApp(t, nil)

	msg := app.bootstrap()()
	model, _ := app.Update(msg)
	app = model.(*App)

	model, _ = app.Update(authResultMsg{err: &client.APIError{StatusCode: 401, Detail: "No active account found"}})
	app = model.(*App)

	if app.screen != ScreenLogin {
		t.Errorf("expected to stay on login, got %v", app.screen)
	}
	if app.loginScreen == nil {
		t.Fatal("expected a login screen")
	}
}

func TestQuizStartDeniedForNonStudents(t *testing.T) {
	app, st := newTestApp(t, verifyHandler(map[string]any{
		"id": 2, "username": "prof", "user_type": "faculty",
	}))
	st.Set(store.KeyAccessToken, "tok")

	msg := app.bootstrap()()
	model, _ := app.Update(msg)
	app = model.(*App)

	model, _ = app.Update(quizStartedMsg{quiz: &client.Quiz{ID: 7, Title: "Algebra"}})
	app = model.(*App)

	if app.screen == ScreenTakeQuiz {
		t.Error("faculty must not enter the quiz-taking screen")
	}
	if app.takeScreen != nil {
		t.Error("no attempt model should be created")
	}
	if app.notice == "" {
		t.Error("expected an access notice")
	}
}

func TestSurfacedErrorsReachDebugLog(t *testing.T) {
	dir := t.TempDir()
	if err := debuglog.Init(dir); err != nil {
		t.Fatalf("init debug log: %v", err)
	}
	defer debuglog.Close()

	app, _ := newTestApp(t, nil)
	model, _ := app.Update(quizzesLoadedMsg{err: errors.New("backend unreachable")})
	_ = model

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	if err != nil {
		t.Fatalf("reading debug log: %v", err)
	}
	if !strings.Contains(string(data), "backend unreachable") {
		t.Errorf("expected the error in the debug log, got %q", data)
	}
}

func TestQuizResultAnyKeyReturnsToQuizzes(t *testing.T) {
	app, st := newTestApp(t, verifyHandler(map[string]any{
		"id": 1, "username": "amina", "user_type": "student",
	}))
	st.Set(store.KeyAccessToken, "tok")

	msg := app.bootstrap()()
	model, _ := app.Update(msg)
	app = model.(*App)

	score := 88.0
	model, _ = app.Update(quizSubmittedMsg{resp: &client.AttemptResponse{
		Attempt: client.QuizAttempt{QuizTitle: "Algebra", Score: &score, Passed: true},
	}})
	app = model.(*App)
	if app.screen != ScreenQuizResult {
		t.Fatalf("expected the result screen, got %v", app.screen)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	app = model.(*App)
	if app.screen == ScreenQuizResult {
		t.Error("any key should leave the result screen")
	}
	if app.quizResult != nil {
		t.Error("result should clear on leave")
	}
}
