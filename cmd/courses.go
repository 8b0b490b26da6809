// ABOUTME: Courses command for the trackdemic CLI
// ABOUTME: Lists the course catalog for scripts and quick checks

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
	coursesSearch   string
	coursesCategory string
	coursesPage     int
)

var coursesCmd = &cobra.Command{
	Use:   "courses [id]",
	Short: "List the course catalog or show one course",
	Long:  `List courses from the catalog, or show the details of a single course by id. Listing supports search and category filtering, and paginates like the web catalog.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		var exitCode int
		if len(args) == 1 {
			exitCode = runCourseDetail(ctx, os.Stdout, args[0])
		} else {
			exitCode = runCourses(ctx, os.Stdout)
		}
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	coursesCmd.Flags().StringVar(&coursesSearch, "search", "", "Search term")
	coursesCmd.Flags().StringVar(&coursesCategory, "category", "", "Category filter")
	coursesCmd.Flags().IntVar(&coursesPage, "page", 0, "Result page")
	rootCmd.AddCommand(coursesCmd)
}

// runCourses fetches and prints the catalog, returning an exit code
func runCourses(ctx context.Context, w io.Writer) int {
	api, _, _ := buildSession(loadConfig())

	page, err := api.ListCourses(ctx, client.CourseFilter{
		Search:   coursesSearch,
		Category: coursesCategory,
		Page:     coursesPage,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(page, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatCoursesHuman(page))
	return 0
}

// runCourseDetail fetches and prints one course, returning an exit code
func runCourseDetail(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg, "course")
	if !ok {
		return 2
	}
	api, _, _ := buildSession(loadConfig())

	course, err := api.GetCourse(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(course, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%s\n\n%s\n\n", course.Title, course.Description)
	fmt.Fprintf(w, "Instructor: %s %s\n", course.Instructor.FirstName, course.Instructor.LastName)
	fmt.Fprintf(w, "Category:   %s\n", course.Category.Name)
	fmt.Fprintf(w, "Level:      %s, %d hours\n", course.Difficulty, course.DurationHours)
	fmt.Fprintf(w, "Rating:     %.1f (%d enrolled)\n", course.AverageRating, course.EnrolledCount)
	if course.IsEnrolled {
		fmt.Fprintln(w, "You are enrolled in this course.")
	}
	return 0
}

// formatCoursesHuman formats a catalog page for human readability
func formatCoursesHuman(page *client.Page[client.Course]) string {
	if len(page.Results) == 0 {
		return "No courses found."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-40s %-16s %-12s %6s %9s\n", "TITLE", "CATEGORY", "LEVEL", "RATING", "ENROLLED")
	for _, c := range page.Results {
		title := c.Title
		if len(title) > 38 {
			title = title[:35] + "..."
		}
		fmt.Fprintf(&sb, "%-40s %-16s %-12s %6.1f %9d\n",
			title, c.Category.Name, c.Difficulty, c.AverageRating, c.EnrolledCount)
	}
	fmt.Fprintf(&sb, "\n%d of %d courses", len(page.Results), page.Count)
	return sb.String()
}
