// ABOUTME: Faculty commands for the trackdemic CLI
// ABOUTME: Course and quiz authoring plus roster management from scripts

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/trackdemic/trackdemic-cli/internal/client"
)

var (
	facultyCourseTitle       string
	facultyCourseDescription string
	facultyCourseCategory    int
	facultyCourseLevel       string
	facultyCourseDuration    int
	facultyCoursePrice       string

	facultyQuizCourse       int
	facultyQuizTitle        string
	facultyQuizDescription  string
	facultyQuizTimeLimit    int
	facultyQuizMaxAttempts  int
	facultyQuizPassingScore int

	facultyStudentAdd    int
	facultyStudentRemove int
	facultyYes           bool
)

var facultyCmd = &cobra.Command{
	Use:   "faculty",
	Short: "Manage your courses and quizzes",
	Long:  `Author and maintain the courses and quizzes you teach, and inspect student rosters and quiz attempts. Requires a faculty account.`,
}

var facultyCreateCourseCmd = &cobra.Command{
	Use:   "create-course",
	Short: "Create a course",
	Run: func(cmd *cobra.Command, args []string) {
		runSubcommand(func(ctx context.Context, w io.Writer) int {
			return runFacultyCreateCourse(ctx, w, courseFields(cmd))
		})
	},
}

var facultyUpdateCourseCmd = &cobra.Command{
	Use:   "update-course <id>",
	Short: "Update a course you teach",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSubcommand(func(ctx context.Context, w io.Writer) int {
			return runFacultyUpdateCourse(ctx, w, args[0], courseFields(cmd))
		})
	},
}

var facultyDeleteCourseCmd = &cobra.Command{
	Use:   "delete-course <id>",
	Short: "Delete a course you teach",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSubcommand(func(ctx context.Context, w io.Writer) int {
			return runFacultyDeleteCourse(ctx, w, args[0])
		})
	},
}

var facultyStudentsCmd = &cobra.Command{
	Use:   "students <course-id>",
	Short: "List or change a course roster",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSubcommand(func(ctx context.Context, w io.Writer) int {
			return runFacultyStudents(ctx, w, args[0])
		})
	},
}

var facultyPerformanceCmd = &cobra.Command{
	Use:   "performance <course-id> <student-id>",
	Short: "Show one student's performance in a course",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runSubcommand(func(ctx context.Context, w io.Writer) int {
			return runFacultyPerformance(ctx, w, args[0], args[1])
		})
	},
}

var facultyCreateQuizCmd = &cobra.Command{
	Use:   "create-quiz",
	Short: "Create a quiz on one of your courses",
	Run: func(cmd *cobra.Command, args []string) {
		runSubcommand(func(ctx context.Context, w io.Writer) int {
			return runFacultyCreateQuiz(ctx, w, quizFields(cmd))
		})
	},
}

var facultyUpdateQuizCmd = &cobra.Command{
	Use:   "update-quiz <id>",
	Short: "Update a quiz you own",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSubcommand(func(ctx context.Context, w io.Writer) int {
			return runFacultyUpdateQuiz(ctx, w, args[0], quizFields(cmd))
		})
	},
}

var facultyDeleteQuizCmd = &cobra.Command{
	Use:   "delete-quiz <id>",
	Short: "Delete a quiz you own",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSubcommand(func(ctx context.Context, w io.Writer) int {
			return runFacultyDeleteQuiz(ctx, w, args[0])
		})
	},
}

var facultyAttemptsCmd = &cobra.Command{
	Use:   "attempts <quiz-id>",
	Short: "List student attempts at a quiz",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSubcommand(func(ctx context.Context, w io.Writer) int {
			return runFacultyAttempts(ctx, w, args[0])
		})
	},
}

func init() {
	courseFieldFlags(facultyCreateCourseCmd)
	courseFieldFlags(facultyUpdateCourseCmd)
	quizFieldFlags(facultyCreateQuizCmd)
	quizFieldFlags(facultyUpdateQuizCmd)
	facultyDeleteCourseCmd.Flags().BoolVar(&facultyYes, "yes", false, "Confirm the deletion")
	facultyDeleteQuizCmd.Flags().BoolVar(&facultyYes, "yes", false, "Confirm the deletion")
	facultyStudentsCmd.Flags().IntVar(&facultyStudentAdd, "add", 0, "Enroll a student by id")
	facultyStudentsCmd.Flags().IntVar(&facultyStudentRemove, "remove", 0, "Remove a student by id")

	facultyCmd.AddCommand(
		facultyCreateCourseCmd, facultyUpdateCourseCmd, facultyDeleteCourseCmd,
		facultyStudentsCmd, facultyPerformanceCmd,
		facultyCreateQuizCmd, facultyUpdateQuizCmd, facultyDeleteQuizCmd,
		facultyAttemptsCmd,
	)
	rootCmd.AddCommand(facultyCmd)
}

// runSubcommand wraps a runner with the shared signal context and exit
// code handling.
func runSubcommand(run func(ctx context.Context, w io.Writer) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if exitCode := run(ctx, os.Stdout); exitCode != 0 {
		os.Exit(exitCode)
	}
}

func courseFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&facultyCourseTitle, "title", "", "Course title")
	cmd.Flags().StringVar(&facultyCourseDescription, "description", "", "Course description")
	cmd.Flags().IntVar(&facultyCourseCategory, "category", 0, "Category id")
	cmd.Flags().StringVar(&facultyCourseLevel, "level", "", "Difficulty: beginner, intermediate, or advanced")
	cmd.Flags().IntVar(&facultyCourseDuration, "duration", 0, "Duration in hours")
	cmd.Flags().StringVar(&facultyCoursePrice, "price", "", "Price, e.g. 49.99")
}

// courseFields collects only the flags the user actually set, so updates
// leave the other fields untouched.
func courseFields(cmd *cobra.Command) map[string]any {
	fields := map[string]any{}
	if cmd.Flags().Changed("title") {
		fields["title"] = facultyCourseTitle
	}
	if cmd.Flags().Changed("description") {
		fields["description"] = facultyCourseDescription
	}
	if cmd.Flags().Changed("category") {
		fields["category"] = facultyCourseCategory
	}
	if cmd.Flags().Changed("level") {
		fields["difficulty"] = facultyCourseLevel
	}
	if cmd.Flags().Changed("duration") {
		fields["duration_hours"] = facultyCourseDuration
	}
	if cmd.Flags().Changed("price") {
		fields["price"] = facultyCoursePrice
	}
	return fields
}

func quizFieldFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&facultyQuizCourse, "course", 0, "Course id the quiz belongs to")
	cmd.Flags().StringVar(&facultyQuizTitle, "title", "", "Quiz title")
	cmd.Flags().StringVar(&facultyQuizDescription, "description", "", "Quiz description")
	cmd.Flags().IntVar(&facultyQuizTimeLimit, "time-limit", 0, "Time limit in minutes, 0 for untimed")
	cmd.Flags().IntVar(&facultyQuizMaxAttempts, "max-attempts", 0, "Allowed attempts per student")
	cmd.Flags().IntVar(&facultyQuizPassingScore, "passing-score", 0, "Passing score percentage")
}

func quizFields(cmd *cobra.Command) map[string]any {
	fields := map[string]any{}
	if cmd.Flags().Changed("course") {
		fields["course"] = facultyQuizCourse
	}
	if cmd.Flags().Changed("title") {
		fields["title"] = facultyQuizTitle
	}
	if cmd.Flags().Changed("description") {
		fields["description"] = facultyQuizDescription
	}
	if cmd.Flags().Changed("time-limit") {
		fields["time_limit_minutes"] = facultyQuizTimeLimit
	}
	if cmd.Flags().Changed("max-attempts") {
		fields["max_attempts"] = facultyQuizMaxAttempts
	}
	if cmd.Flags().Changed("passing-score") {
		fields["passing_score"] = facultyQuizPassingScore
	}
	return fields
}

// parseID turns a positional argument into a record id, reporting bad input
// on the writer.
func parseID(w io.Writer, arg, what string) (int, bool) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		fmt.Fprintf(w, "Error: %q is not a valid %s id\n", arg, what)
		return 0, false
	}
	return id, true
}

func runFacultyCreateCourse(ctx context.Context, w io.Writer, fields map[string]any) int {
	if fields["title"] == nil {
		fmt.Fprintln(w, "Error: --title is required")
		return 2
	}
	api, _, _ := buildSession(loadConfig())

	course, err := api.CreateCourse(ctx, fields)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(course, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "Created course %d: %s\n", course.ID, course.Title)
	return 0
}

func runFacultyUpdateCourse(ctx context.Context, w io.Writer, arg string, fields map[string]any) int {
	id, ok := parseID(w, arg, "course")
	if !ok {
		return 2
	}
	if len(fields) == 0 {
		fmt.Fprintln(w, "Error: nothing to update, set at least one field flag")
		return 2
	}
	api, _, _ := buildSession(loadConfig())

	course, err := api.UpdateCourse(ctx, id, fields)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(course, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "Updated course %d: %s\n", course.ID, course.Title)
	return 0
}

func runFacultyDeleteCourse(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg, "course")
	if !ok {
		return 2
	}
	if !facultyYes {
		fmt.Fprintln(w, "Error: deleting a course drops its enrollments, pass --yes to confirm")
		return 2
	}
	api, _, _ := buildSession(loadConfig())

	if err := api.DeleteCourse(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintf(w, "Deleted course %d.\n", id)
	return 0
}

func runFacultyStudents(ctx context.Context, w io.Writer, arg string) int {
	courseID, ok := parseID(w, arg, "course")
	if !ok {
		return 2
	}
	api, _, _ := buildSession(loadConfig())

	if facultyStudentAdd > 0 {
		if err := api.AddStudentToCourse(ctx, courseID, facultyStudentAdd); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintf(w, "Enrolled student %d.\n", facultyStudentAdd)
	}
	if facultyStudentRemove > 0 {
		if err := api.RemoveStudentFromCourse(ctx, courseID, facultyStudentRemove); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintf(w, "Removed student %d.\n", facultyStudentRemove)
	}

	students, err := api.ListCourseStudents(ctx, courseID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(students, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintln(w, formatStudentsHuman(students))
	return 0
}

func runFacultyPerformance(ctx context.Context, w io.Writer, courseArg, studentArg string) int {
	courseID, ok := parseID(w, courseArg, "course")
	if !ok {
		return 2
	}
	studentID, ok := parseID(w, studentArg, "student")
	if !ok {
		return 2
	}
	api, _, _ := buildSession(loadConfig())

	perf, err := api.GetStudentPerformance(ctx, courseID, studentID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, indentJSON(perf))
	return 0
}

func runFacultyCreateQuiz(ctx context.Context, w io.Writer, fields map[string]any) int {
	if fields["title"] == nil || fields["course"] == nil {
		fmt.Fprintln(w, "Error: --title and --course are required")
		return 2
	}
	api, _, _ := buildSession(loadConfig())

	quiz, err := api.CreateQuiz(ctx, fields)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(quiz, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "Created quiz %d: %s\n", quiz.ID, quiz.Title)
	return 0
}

func runFacultyUpdateQuiz(ctx context.Context, w io.Writer, arg string, fields map[string]any) int {
	id, ok := parseID(w, arg, "quiz")
	if !ok {
		return 2
	}
	if len(fields) == 0 {
		fmt.Fprintln(w, "Error: nothing to update, set at least one field flag")
		return 2
	}
	api, _, _ := buildSession(loadConfig())

	quiz, err := api.UpdateQuiz(ctx, id, fields)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(quiz, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "Updated quiz %d: %s\n", quiz.ID, quiz.Title)
	return 0
}

func runFacultyDeleteQuiz(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg, "quiz")
	if !ok {
		return 2
	}
	if !facultyYes {
		fmt.Fprintln(w, "Error: deleting a quiz drops its attempts, pass --yes to confirm")
		return 2
	}
	api, _, _ := buildSession(loadConfig())

	if err := api.DeleteQuiz(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintf(w, "Deleted quiz %d.\n", id)
	return 0
}

func runFacultyAttempts(ctx context.Context, w io.Writer, arg string) int {
	quizID, ok := parseID(w, arg, "quiz")
	if !ok {
		return 2
	}
	api, _, _ := buildSession(loadConfig())

	attempts, err := api.ListQuizAttempts(ctx, quizID)
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

// formatStudentsHuman formats a course roster for human readability
func formatStudentsHuman(students []client.CourseStudent) string {
	if len(students) == 0 {
		return "No students enrolled."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%4s %-20s %-28s %9s %8s\n", "ID", "USERNAME", "EMAIL", "PROGRESS", "AVG")
	for _, s := range students {
		avg := "--"
		if s.AverageScore != nil {
			avg = fmt.Sprintf("%.1f%%", *s.AverageScore)
		}
		fmt.Fprintf(&sb, "%4d %-20s %-28s %8.0f%% %8s\n",
			s.ID, s.Username, s.Email, s.Progress, avg)
	}
	return sb.String()
}

// indentJSON pretty-prints a raw payload whose shape we don't model.
func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
