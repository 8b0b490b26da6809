// ABOUTME: Dashboard component rendering a role-scoped overview
// ABOUTME: Students see progress and risk, faculty their courses, admins platform stats

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/trackdemic/trackdemic-cli/internal/client"
	"github.com/trackdemic/trackdemic-cli/internal/tui/icons"
	"github.com/trackdemic/trackdemic-cli/internal/tui/styles"
	"github.com/trackdemic/trackdemic-cli/internal/tui/widgets"
)

// StudentData is everything the student overview shows.
type StudentData struct {
	Enrollments []client.Enrollment
	Performance *client.Performance
	Attempts    []client.QuizAttempt
}

// FacultyData is everything the faculty overview shows.
type FacultyData struct {
	Courses []client.Course
	Quizzes []client.Quiz
}

// AdminData is everything the admin overview shows.
type AdminData struct {
	Stats *client.DashboardStats
}

// Dashboard renders the overview for one role.
type Dashboard struct {
	role    string
	student *StudentData
	faculty *FacultyData
	admin   *AdminData
	width   int
	height  int
}

// New creates an empty dashboard for a role.
func New(role string, width, height int) *Dashboard {
	return &Dashboard{role: role, width: width, height: height}
}

// SetStudent installs student overview data.
func (d *Dashboard) SetStudent(data *StudentData) { d.student = data }

// SetFaculty installs faculty overview data.
func (d *Dashboard) SetFaculty(data *FacultyData) { d.faculty = data }

// SetAdmin installs admin overview data.
func (d *Dashboard) SetAdmin(data *AdminData) { d.admin = data }

// SetSize updates the dashboard dimensions.
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard.
func (d *Dashboard) View() string {
	var content string
	switch d.role {
	case client.RoleFaculty:
		content = d.viewFaculty()
	case client.RoleAdmin:
		content = d.viewAdmin()
	default:
		content = d.viewStudent()
	}
	return lipgloss.NewStyle().
		Width(d.width).
		Height(d.height).
		Render(content)
}

func (d *Dashboard) viewStudent() string {
	if d.student == nil {
		return styles.Panel.Width(d.width).Render("Loading your overview...")
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("My Learning"))
	sb.WriteString("\n\n")

	cardWidth := d.cardWidth(3)
	sb.WriteString(widgets.StatRow(
		widgets.StatCard(icons.Course, "Courses", fmt.Sprintf("%d", len(d.student.Enrollments)), cardWidth),
		widgets.StatCard(icons.Quiz, "Attempts", fmt.Sprintf("%d", len(d.student.Attempts)), cardWidth),
		widgets.StatCard(icons.Chart, "Score", d.overallScore(), cardWidth),
	))
	sb.WriteString("\n\n")

	if perf := d.student.Performance; perf != nil {
		sb.WriteString("Risk: " + widgets.RiskBadge(perf.RiskLevel))
		if perf.PredictedPerformance != nil {
			sb.WriteString(fmt.Sprintf("  Predicted: %.0f%%", *perf.PredictedPerformance))
		}
		sb.WriteString("\n\n")
	}

	if len(d.student.Enrollments) == 0 {
		sb.WriteString(styles.Subtitle.Render("You are not enrolled in any courses yet."))
		return sb.String()
	}

	sb.WriteString("Course Progress\n")
	for _, e := range d.student.Enrollments {
		sb.WriteString(fmt.Sprintf("  %s\n", e.Course.Title))
		sb.WriteString("  " + styles.ProgressBar(e.ProgressPercentage, 20))
		sb.WriteString(fmt.Sprintf(" %.0f%%\n", e.ProgressPercentage))
	}
	return sb.String()
}

func (d *Dashboard) overallScore() string {
	if d.student.Performance == nil {
		return "--"
	}
	return fmt.Sprintf("%.0f%%", d.student.Performance.OverallScore)
}

func (d *Dashboard) viewFaculty() string {
	if d.faculty == nil {
		return styles.Panel.Width(d.width).Render("Loading your overview...")
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Teaching Overview"))
	sb.WriteString("\n\n")

	enrolled := 0
	for _, c := range d.faculty.Courses {
		enrolled += c.EnrolledCount
	}

	cardWidth := d.cardWidth(3)
	sb.WriteString(widgets.StatRow(
		widgets.StatCard(icons.Course, "My Courses", fmt.Sprintf("%d", len(d.faculty.Courses)), cardWidth),
		widgets.StatCard(icons.Quiz, "My Quizzes", fmt.Sprintf("%d", len(d.faculty.Quizzes)), cardWidth),
		widgets.StatCard(icons.Student, "Students", fmt.Sprintf("%d", enrolled), cardWidth),
	))
	sb.WriteString("\n\n")

	if len(d.faculty.Courses) == 0 {
		sb.WriteString(styles.Subtitle.Render("You have no courses yet."))
		return sb.String()
	}

	sb.WriteString("Courses\n")
	for _, c := range d.faculty.Courses {
		status := styles.StatusOK.Render("active")
		if !c.IsActive {
			status = styles.StatusWarning.Render("inactive")
		}
		sb.WriteString(fmt.Sprintf("  %s (%d enrolled) %s\n", c.Title, c.EnrolledCount, status))
	}
	return sb.String()
}

func (d *Dashboard) viewAdmin() string {
	if d.admin == nil || d.admin.Stats == nil {
		return styles.Panel.Width(d.width).Render("Loading platform statistics...")
	}
	stats := d.admin.Stats

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Platform Overview"))
	sb.WriteString("\n\n")

	cardWidth := d.cardWidth(3)
	sb.WriteString(widgets.StatRow(
		widgets.StatCard(icons.Users, "Users", fmt.Sprintf("%d", stats.Users.Total), cardWidth),
		widgets.StatCard(icons.Course, "Courses", fmt.Sprintf("%d", stats.Courses.Total), cardWidth),
		widgets.StatCard(icons.Quiz, "Quizzes", fmt.Sprintf("%d", stats.QuizCount), cardWidth),
	))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Students: %d   Faculty: %d   Admins: %d\n", stats.Users.Students, stats.Users.Faculty, stats.Users.Admins))
	sb.WriteString(fmt.Sprintf("Active this month: %d\n", stats.Users.ActiveMonth))
	sb.WriteString(fmt.Sprintf("Enrollments: %d\n", stats.Enrollments))
	sb.WriteString(fmt.Sprintf("Courses: %d active, %d inactive\n", stats.Courses.Active, stats.Courses.Inactive))
	return sb.String()
}

func (d *Dashboard) cardWidth(n int) int {
	w := (d.width - 2*n) / n
	if w < 12 {
		w = 12
	}
	return w
}
