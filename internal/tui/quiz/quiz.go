// ABOUTME: Quiz list screen showing available quizzes with attempt status
// ABOUTME: Emits a selection message when the user picks a quiz to take

package quiz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trackdemic/trackdemic-cli/internal/client"
	"github.com/trackdemic/trackdemic-cli/internal/tui/icons"
	"github.com/trackdemic/trackdemic-cli/internal/tui/styles"
)

// SelectedMsg is sent when a quiz is chosen from the list.
type SelectedMsg struct {
	QuizID int
}

// CancelledMsg is sent when the user leaves the quiz list.
type CancelledMsg struct{}

// List displays the quizzes available to the current user.
type List struct {
	quizzes []client.Quiz
	cursor  int
	width   int
}

// NewList creates a quiz list over already-fetched quizzes.
func NewList(quizzes []client.Quiz) *List {
	return &List{quizzes: quizzes}
}

// Init implements tea.Model
func (l *List) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (l *List) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if l.cursor > 0 {
				l.cursor--
			}
		case "down", "j":
			if l.cursor < len(l.quizzes)-1 {
				l.cursor++
			}
		case "enter":
			if len(l.quizzes) > 0 {
				q := l.quizzes[l.cursor]
				if q.CanAttempt {
					return l, func() tea.Msg { return SelectedMsg{QuizID: q.ID} }
				}
			}
		case "esc", "b":
			return l, func() tea.Msg { return CancelledMsg{} }
		}
	}
	return l, nil
}

// View implements tea.Model
func (l *List) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Quiz.String() + " Quizzes"))
	sb.WriteString("\n\n")

	if len(l.quizzes) == 0 {
		sb.WriteString(styles.Subtitle.Render("No quizzes available."))
		return sb.String()
	}

	for i, q := range l.quizzes {
		cursor := "  "
		line := fmt.Sprintf("%s (%d questions, %d min)", q.Title, q.TotalQuestions, q.TimeLimitMinutes)
		if q.BestScore != nil {
			line += fmt.Sprintf("  best %.0f%%", *q.BestScore)
		}
		if !q.CanAttempt {
			line += "  " + styles.Help.Render("no attempts left")
		}
		if i == l.cursor {
			cursor = styles.KeyStyle.Render("> ")
			line = styles.ValueStyle.Render(line)
		}
		sb.WriteString(cursor + line + "\n")
	}
	return sb.String()
}
