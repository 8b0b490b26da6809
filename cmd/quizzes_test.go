// ABOUTME: Tests for the quizzes command
// ABOUTME: Verifies quiz and attempt listing output

package cmd

import (
	"strings"
	"testing"

	"github.com/trackdemic/trackdemic-cli/internal/client"
)

func TestFormatQuizzesHuman(t *testing.T) {
	best := 85.0
	page := &client.Page[client.Quiz]{
		Count: 1,
		Results: []client.Quiz{
			{
				Title:            "Algebra Basics",
				TotalQuestions:   10,
				TimeLimitMinutes: 30,
				BestScore:        &best,
				AttemptsCount:    1,
				MaxAttempts:      3,
			},
		},
	}

	output := formatQuizzesHuman(page)

	for _, want := range []string{"Algebra Basics", "10", "30m", "85%", "1/3"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestFormatQuizzesHumanNoBestScore(t *testing.T) {
	page := &client.Page[client.Quiz]{
		Count:   1,
		Results: []client.Quiz{{Title: "New Quiz"}},
	}

	output := formatQuizzesHuman(page)
	if !strings.Contains(output, "--") {
		t.Errorf("expected a placeholder for missing best score:\n%s", output)
	}
}

func TestFormatAttemptsHuman(t *testing.T) {
	score := 92.5
	done := "2026-08-30T10:00:00Z"
	attempts := []client.QuizAttempt{
		{QuizTitle: "Algebra Basics", Score: &score, Passed: true, CompletedAt: &done},
		{QuizTitle: "Geometry", Score: nil, Passed: false},
	}

	output := formatAttemptsHuman(attempts)

	for _, want := range []string{"Algebra Basics", "92.5%", "passed", "Geometry", "open"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestFormatAttemptsHumanEmpty(t *testing.T) {
	if got := formatAttemptsHuman(nil); !strings.Contains(got, "No attempts") {
		t.Errorf("expected the empty message, got %q", got)
	}
}
