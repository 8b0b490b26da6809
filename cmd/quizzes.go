// ABOUTME: Quizzes command for the trackdemic CLI
// ABOUTME: Lists quizzes and past attempts for the signed-in student

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/trackdemic/trackdemic-cli/internal/client"
)

var (
	quizzesCourse   int
	quizzesAttempts bool
)

var quizzesCmd = &cobra.Command{
	Use:   "quizzes",
	Short: "List quizzes or past attempts",
	Long:  `List quizzes available to the signed-in user, or with --attempts the user's past quiz attempts and scores.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runQuizzes(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	quizzesCmd.Flags().IntVar(&quizzesCourse, "course", 0, "Filter by course id")
	quizzesCmd.Flags().BoolVar(&quizzesAttempts, "attempts", false, "Show past attempts instead")
	rootCmd.AddCommand(quizzesCmd)
}

// runQuizzes fetches and prints quizzes or attempts, returning an exit code
func runQuizzes(ctx context.Context, w io.Writer) int {
	api, _, _ := buildSession(loadConfig())

	if quizzesAttempts {
		attempts, err := api.MyAttempts(ctx)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		if IsJSONOutput() {
			data, _ := json.MarshalIndent(attempts, "", "  ")
			fmt.Fprintln(w, string(data))
			return 0
		}
		fmt.Fprintln(w, formatAttemptsHuman(attempts))
		return 0
	}

	page, err := api.ListQuizzes(ctx, client.QuizFilter{Course: quizzesCourse})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(page, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatQuizzesHuman(page))
	return 0
}

// formatQuizzesHuman formats a quiz page for human readability
func formatQuizzesHuman(page *client.Page[client.Quiz]) string {
	if len(page.Results) == 0 {
		return "No quizzes found."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-36s %9s %6s %8s %10s\n", "TITLE", "QUESTIONS", "LIMIT", "BEST", "ATTEMPTS")
	for _, q := range page.Results {
		best := "--"
		if q.BestScore != nil {
			best = fmt.Sprintf("%.0f%%", *q.BestScore)
		}
		attempts := fmt.Sprintf("%d/%d", q.AttemptsCount, q.MaxAttempts)
		fmt.Fprintf(&sb, "%-36s %9d %5dm %8s %10s\n",
			q.Title, q.TotalQuestions, q.TimeLimitMinutes, best, attempts)
	}
	return sb.String()
}

// formatAttemptsHuman formats attempt history for human readability
func formatAttemptsHuman(attempts []client.QuizAttempt) string {
	if len(attempts) == 0 {
		return "No attempts yet."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-36s %8s %8s\n", "QUIZ", "SCORE", "RESULT")
	for _, a := range attempts {
		score := "--"
		if a.Score != nil {
			score = fmt.Sprintf("%.1f%%", *a.Score)
		}
		result := "failed"
		if a.Passed {
			result = "passed"
		}
		if a.CompletedAt == nil {
			result = "open"
		}
		fmt.Fprintf(&sb, "%-36s %8s %8s\n", a.QuizTitle, score, result)
	}
	return sb.String()
}
