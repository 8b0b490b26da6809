// ABOUTME: Course catalog screen with a browsable table and search filter
// ABOUTME: Emits enroll/unenroll requests for the app to run against the API

package courses

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trackdemic/trackdemic-cli/internal/client"
	"github.com/trackdemic/trackdemic-cli/internal/tui/icons"
	"github.com/trackdemic/trackdemic-cli/internal/tui/styles"
)

// SearchMsg asks the app to reload the catalog with a new filter.
type SearchMsg struct {
	Filter client.CourseFilter
}

// EnrollRequestMsg asks the app to enroll in a course.
type EnrollRequestMsg struct {
	CourseID int
}

// UnenrollRequestMsg asks the app to drop a course.
type UnenrollRequestMsg struct {
	CourseID int
}

// CancelledMsg is sent when the user leaves the catalog.
type CancelledMsg struct{}

// Catalog is the course browsing screen.
type Catalog struct {
	table      table.Model
	search     textinput.Model
	searching  bool
	courses    []client.Course
	categories []client.Category
	catIdx     int // 0 means all categories
	filter     client.CourseFilter
	total      int
	hasNext    bool
	hasPrev    bool
	status     string
	width      int
}

// New creates the catalog over a fetched page of courses.
func New(page *client.Page[client.Course], filter client.CourseFilter) *Catalog {
	si := textinput.New()
	si.Placeholder = "Search courses..."
	si.CharLimit = 100

	columns := []table.Column{
		{Title: "Title", Width: 32},
		{Title: "Category", Width: 14},
		{Title: "Level", Width: 12},
		{Title: "Rating", Width: 6},
		{Title: "Enrolled", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).Foreground(styles.Primary)
	ts.Selected = ts.Selected.Foreground(lipgloss.Color("229")).Background(styles.Primary)
	t.SetStyles(ts)

	c := &Catalog{table: t, search: si, filter: filter}
	c.SetPage(page)
	return c
}

// SetPage replaces the displayed courses, e.g. after a reload.
func (c *Catalog) SetPage(page *client.Page[client.Course]) {
	c.courses = page.Results
	c.total = page.Count
	c.hasNext = page.Next != nil
	c.hasPrev = page.Previous != nil
	rows := make([]table.Row, 0, len(page.Results))
	for _, course := range page.Results {
		enrolled := ""
		if course.IsEnrolled {
			enrolled = icons.CheckOK.String()
		}
		rows = append(rows, table.Row{
			course.Title,
			course.Category.Name,
			course.Difficulty,
			fmt.Sprintf("%.1f", course.AverageRating),
			enrolled,
		})
	}
	c.table.SetRows(rows)
	if c.table.Cursor() >= len(rows) {
		c.table.SetCursor(0)
	}
}

// SetCategories installs the category list for the filter cycle.
func (c *Catalog) SetCategories(categories []client.Category) {
	c.categories = categories
	c.catIdx = 0
	for i, cat := range categories {
		if cat.Name == c.filter.Category {
			c.catIdx = i + 1
		}
	}
}

// SetStatus shows a transient message under the table.
func (c *Catalog) SetStatus(msg string) {
	c.status = msg
}

func (c *Catalog) selected() *client.Course {
	idx := c.table.Cursor()
	if idx < 0 || idx >= len(c.courses) {
		return nil
	}
	return &c.courses[idx]
}

// Init implements tea.Model
func (c *Catalog) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (c *Catalog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		return c, nil

	case tea.KeyMsg:
		if c.searching {
			switch msg.String() {
			case "enter":
				c.searching = false
				c.search.Blur()
				c.filter.Search = strings.TrimSpace(c.search.Value())
				c.filter.Page = 0
				filter := c.filter
				return c, func() tea.Msg { return SearchMsg{Filter: filter} }
			case "esc":
				c.searching = false
				c.search.Blur()
				return c, nil
			}
			var cmd tea.Cmd
			c.search, cmd = c.search.Update(msg)
			return c, cmd
		}

		switch msg.String() {
		case "/":
			c.searching = true
			c.search.Focus()
			return c, textinput.Blink
		case "e", "enter":
			if course := c.selected(); course != nil && !course.IsEnrolled {
				id := course.ID
				c.status = "Enrolling in " + course.Title + "..."
				return c, func() tea.Msg { return EnrollRequestMsg{CourseID: id} }
			}
			return c, nil
		case "u":
			if course := c.selected(); course != nil && course.IsEnrolled {
				id := course.ID
				c.status = "Dropping " + course.Title + "..."
				return c, func() tea.Msg { return UnenrollRequestMsg{CourseID: id} }
			}
			return c, nil
		case "f":
			if len(c.categories) == 0 {
				return c, nil
			}
			c.catIdx = (c.catIdx + 1) % (len(c.categories) + 1)
			if c.catIdx == 0 {
				c.filter.Category = ""
			} else {
				c.filter.Category = c.categories[c.catIdx-1].Name
			}
			c.filter.Page = 0
			filter := c.filter
			return c, func() tea.Msg { return SearchMsg{Filter: filter} }
		case "n":
			if c.hasNext {
				c.filter.Page = c.page() + 1
				filter := c.filter
				return c, func() tea.Msg { return SearchMsg{Filter: filter} }
			}
			return c, nil
		case "p":
			if c.hasPrev {
				c.filter.Page = c.page() - 1
				filter := c.filter
				return c, func() tea.Msg { return SearchMsg{Filter: filter} }
			}
			return c, nil
		case "esc", "b":
			return c, func() tea.Msg { return CancelledMsg{} }
		}
	}

	var cmd tea.Cmd
	c.table, cmd = c.table.Update(msg)
	return c, cmd
}

// page normalizes the filter page: an unset filter means the first page.
func (c *Catalog) page() int {
	if c.filter.Page < 1 {
		return 1
	}
	return c.filter.Page
}

// View implements tea.Model
func (c *Catalog) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Course.String() + " Courses"))
	if c.filter.Search != "" {
		sb.WriteString("  " + styles.Subtitle.Render("search: "+c.filter.Search))
	}
	if c.filter.Category != "" {
		sb.WriteString("  " + styles.Subtitle.Render("category: "+c.filter.Category))
	}
	sb.WriteString("  " + styles.Subtitle.Render(strconv.Itoa(c.total)+" total"))
	sb.WriteString("\n\n")

	if c.searching {
		sb.WriteString(c.search.View())
		sb.WriteString("\n\n")
	}

	sb.WriteString(c.table.View())
	sb.WriteString("\n")

	if course := c.selected(); course != nil {
		detail := fmt.Sprintf("%s · %s %s · %dh · %d enrolled",
			course.Instructor.FirstName+" "+course.Instructor.LastName,
			course.Category.Name, course.Difficulty,
			course.DurationHours, course.EnrolledCount)
		sb.WriteString(styles.Subtitle.Render(detail))
		sb.WriteString("\n")
	}

	if c.status != "" {
		sb.WriteString(styles.StatusWarning.Render(c.status))
		sb.WriteString("\n")
	}

	sb.WriteString(styles.Help.Render("/ Search  f Category  e Enroll  u Drop  n/p Page  esc Back"))
	return sb.String()
}
