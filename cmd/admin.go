// ABOUTME: Admin commands for the trackdemic CLI
// ABOUTME: User management and catalog moderation for administrator accounts

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
	adminUserSearch string
	adminUserRole   string
	adminUserActive bool
	adminCourseOn   bool
	adminYes        bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Platform administration",
	Long:  `Manage platform users and moderate the course catalog. Requires an administrator account.`,
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List platform users",
	Run: func(cmd *cobra.Command, args []string) {
		runSubcommand(func(ctx context.Context, w io.Writer) int {
			return runAdminUsers(ctx, w)
		})
	},
}

var adminUpdateUserCmd = &cobra.Command{
	Use:   "update-user <id>",
	Short: "Change a user's role or active flag",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSubcommand(func(ctx context.Context, w io.Writer) int {
			fields := map[string]any{}
			if cmd.Flags().Changed("role") {
				fields["user_type"] = adminUserRole
			}
			if cmd.Flags().Changed("active") {
				fields["is_active"] = adminUserActive
			}
			return runAdminUpdateUser(ctx, w, args[0], fields)
		})
	},
}

var adminDeleteUserCmd = &cobra.Command{
	Use:   "delete-user <id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSubcommand(func(ctx context.Context, w io.Writer) int {
			return runAdminDeleteUser(ctx, w, args[0])
		})
	},
}

var adminCoursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List every course, active or not",
	Run: func(cmd *cobra.Command, args []string) {
		runSubcommand(func(ctx context.Context, w io.Writer) int {
			return runAdminCourses(ctx, w)
		})
	},
}

var adminCourseStatusCmd = &cobra.Command{
	Use:   "course-status <id>",
	Short: "Activate or deactivate a course",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSubcommand(func(ctx context.Context, w io.Writer) int {
			if !cmd.Flags().Changed("active") {
				fmt.Fprintln(w, "Error: pass --active=true or --active=false")
				return 2
			}
			return runAdminCourseStatus(ctx, w, args[0], adminCourseOn)
		})
	},
}

func init() {
	adminUsersCmd.Flags().StringVar(&adminUserSearch, "search", "", "Filter by username or email")
	adminUpdateUserCmd.Flags().StringVar(&adminUserRole, "role", "", "New role: student, faculty, or admin")
	adminUpdateUserCmd.Flags().BoolVar(&adminUserActive, "active", true, "Whether the account may sign in")
	adminDeleteUserCmd.Flags().BoolVar(&adminYes, "yes", false, "Confirm the deletion")
	adminCourseStatusCmd.Flags().BoolVar(&adminCourseOn, "active", true, "Whether the course is visible in the catalog")

	adminCmd.AddCommand(
		adminUsersCmd, adminUpdateUserCmd, adminDeleteUserCmd,
		adminCoursesCmd, adminCourseStatusCmd,
	)
	rootCmd.AddCommand(adminCmd)
}

func runAdminUsers(ctx context.Context, w io.Writer) int {
	api, _, _ := buildSession(loadConfig())

	users, err := api.ListUsers(ctx, adminUserSearch)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(users, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintln(w, formatUsersHuman(users))
	return 0
}

func runAdminUpdateUser(ctx context.Context, w io.Writer, arg string, fields map[string]any) int {
	id, ok := parseID(w, arg, "user")
	if !ok {
		return 2
	}
	if len(fields) == 0 {
		fmt.Fprintln(w, "Error: nothing to update, pass --role or --active")
		return 2
	}
	api, _, _ := buildSession(loadConfig())

	user, err := api.UpdateUser(ctx, id, fields)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "Updated user %d: %s (%s)\n", user.ID, user.Username, user.UserType)
	return 0
}

func runAdminDeleteUser(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg, "user")
	if !ok {
		return 2
	}
	if !adminYes {
		fmt.Fprintln(w, "Error: deleting a user is permanent, pass --yes to confirm")
		return 2
	}
	api, _, _ := buildSession(loadConfig())

	if err := api.DeleteUser(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintf(w, "Deleted user %d.\n", id)
	return 0
}

func runAdminCourses(ctx context.Context, w io.Writer) int {
	api, _, _ := buildSession(loadConfig())

	courses, err := api.ListAllCourses(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(courses, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintln(w, formatAdminCoursesHuman(courses))
	return 0
}

func runAdminCourseStatus(ctx context.Context, w io.Writer, arg string, active bool) int {
	id, ok := parseID(w, arg, "course")
	if !ok {
		return 2
	}
	api, _, _ := buildSession(loadConfig())

	if err := api.UpdateCourseStatus(ctx, id, active); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	status := "active"
	if !active {
		status = "inactive"
	}
	fmt.Fprintf(w, "Course %d is now %s.\n", id, status)
	return 0
}

// formatUsersHuman formats the user listing for human readability
func formatUsersHuman(users []client.AdminUser) string {
	if len(users) == 0 {
		return "No users found."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%4s %-20s %-28s %-8s %-8s\n", "ID", "USERNAME", "EMAIL", "ROLE", "STATUS")
	for _, u := range users {
		status := "active"
		if !u.IsActive {
			status = "inactive"
		}
		role := u.UserType
		if u.IsSuperuser {
			role = client.RoleAdmin
		}
		fmt.Fprintf(&sb, "%4d %-20s %-28s %-8s %-8s\n", u.ID, u.Username, u.Email, role, status)
	}
	return sb.String()
}

// formatAdminCoursesHuman formats the moderation listing for human readability
func formatAdminCoursesHuman(courses []client.Course) string {
	if len(courses) == 0 {
		return "No courses found."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%4s %-36s %-20s %-8s %9s\n", "ID", "TITLE", "INSTRUCTOR", "STATUS", "ENROLLED")
	for _, c := range courses {
		title := c.Title
		if len(title) > 34 {
			title = title[:31] + "..."
		}
		status := "active"
		if !c.IsActive {
			status = "inactive"
		}
		fmt.Fprintf(&sb, "%4d %-36s %-20s %-8s %9d\n",
			c.ID, title, c.Instructor.Username, status, c.EnrolledCount)
	}
	return sb.String()
}
