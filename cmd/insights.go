// ABOUTME: Insights command for the trackdemic CLI
// ABOUTME: Performance predictions, study analytics, and class-level insights

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trackdemic/trackdemic-cli/internal/client"
)

var (
	insightsStudent   int
	insightsCourse    int
	insightsAnalytics bool
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show performance predictions and analytics",
	Long: `Show the performance prediction for the signed-in student, or with
--student for one of your students. --analytics adds study-behavior records,
and --course switches to class-level insights for a course you teach.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSubcommand(func(ctx context.Context, w io.Writer) int {
			return runInsights(ctx, w)
		})
	},
}

func init() {
	insightsCmd.Flags().IntVar(&insightsStudent, "student", 0, "Student id (faculty only)")
	insightsCmd.Flags().IntVar(&insightsCourse, "course", 0, "Course id for class-level insights")
	insightsCmd.Flags().BoolVar(&insightsAnalytics, "analytics", false, "Include study-behavior analytics")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(ctx context.Context, w io.Writer) int {
	api, _, _ := buildSession(loadConfig())

	if insightsCourse > 0 {
		raw, err := api.GetClassInsights(ctx, insightsCourse)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintln(w, indentJSON(raw))
		return 0
	}

	perf, err := api.GetPrediction(ctx, insightsStudent)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	var analytics []client.LearningAnalytics
	if insightsAnalytics {
		analytics, err = api.GetAnalytics(ctx, insightsStudent)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	if IsJSONOutput() {
		out := map[string]any{"prediction": perf}
		if insightsAnalytics {
			out["analytics"] = analytics
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprint(w, formatPredictionHuman(perf))
	if insightsAnalytics {
		fmt.Fprintln(w)
		fmt.Fprint(w, formatAnalyticsHuman(analytics))
	}
	return 0
}

// formatPredictionHuman formats a performance record for human readability
func formatPredictionHuman(perf *client.Performance) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall score: %.1f%%\n", perf.OverallScore)
	fmt.Fprintf(&sb, "Engagement:    %s\n", perf.EngagementLevel)
	fmt.Fprintf(&sb, "Risk level:    %s\n", perf.RiskLevel)
	if perf.PredictedPerformance != nil {
		line := fmt.Sprintf("Predicted:     %.1f%%", *perf.PredictedPerformance)
		if perf.PredictionConfidence != nil {
			line += fmt.Sprintf(" (%.0f%% confidence)", *perf.PredictionConfidence*100)
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// formatAnalyticsHuman formats study-behavior records for human readability
func formatAnalyticsHuman(rows []client.LearningAnalytics) string {
	if len(rows) == 0 {
		return "No analytics recorded yet.\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%10s %9s %10s %8s %7s\n", "STUDY MIN", "ATTEMPTS", "COMPLETED", "AVG", "LOGINS")
	for _, a := range rows {
		fmt.Fprintf(&sb, "%10d %9d %10d %7.1f%% %7d\n",
			a.StudyTimeMinutes, a.QuizAttemptsCount, a.CoursesCompleted,
			a.AverageScore, a.LoginFrequency)
	}
	return sb.String()
}
