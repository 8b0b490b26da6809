// ABOUTME: Quiz-taking screen with question navigation and countdown clock
// ABOUTME: Auto-submits the attempt exactly once when the clock reaches zero

package quiz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trackdemic/trackdemic-cli/internal/client"
	"github.com/trackdemic/trackdemic-cli/internal/tui/icons"
	"github.com/trackdemic/trackdemic-cli/internal/tui/styles"
)

// SubmitMsg carries the answers for submission. Auto marks a time-up submit.
type SubmitMsg struct {
	QuizID  int
	Answers []client.Answer
	Auto    bool
}

// LeaveMsg is sent when the user abandons the attempt.
type LeaveMsg struct{}

// TickMsg advances the attempt clock by one second.
type TickMsg struct{}

// Take drives one quiz attempt.
type Take struct {
	quiz      *client.Quiz
	countdown *Countdown
	idx       int
	cursor    int
	selected  map[int]int    // question ID -> choice ID
	text      map[int]string // question ID -> text answer
	textInput textinput.Model
	submitted bool
	width     int
}

// NewTake starts an attempt over a quiz detail that includes questions.
func NewTake(quiz *client.Quiz) *Take {
	ti := textinput.New()
	ti.Placeholder = "Type your answer"
	ti.CharLimit = 500
	t := &Take{
		quiz:      quiz,
		countdown: NewCountdown(time.Duration(quiz.TimeLimitMinutes) * time.Minute),
		selected:  make(map[int]int),
		text:      make(map[int]string),
		textInput: ti,
	}
	t.syncFocus()
	return t
}

// Init implements tea.Model
func (t *Take) Init() tea.Cmd {
	if !t.countdown.Timed() {
		return nil
	}
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

func (t *Take) current() *client.Question {
	if t.idx < 0 || t.idx >= len(t.quiz.Questions) {
		return nil
	}
	return &t.quiz.Questions[t.idx]
}

func (t *Take) isTextQuestion() bool {
	q := t.current()
	return q != nil && len(q.Choices) == 0
}

func (t *Take) syncFocus() {
	if t.isTextQuestion() {
		if q := t.current(); q != nil {
			t.textInput.SetValue(t.text[q.ID])
		}
		t.textInput.Focus()
	} else {
		t.textInput.Blur()
	}
}

// Update implements tea.Model
func (t *Take) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		return t, nil

	case TickMsg:
		if t.submitted || !t.countdown.Timed() {
			return t, nil
		}
		if t.countdown.Tick() {
			return t, t.submit(true)
		}
		return t, tickCmd()

	case tea.KeyMsg:
		if t.submitted {
			return t, nil
		}
		switch msg.String() {
		case "esc":
			t.countdown.Stop()
			return t, func() tea.Msg { return LeaveMsg{} }
		case "left", "shift+tab":
			t.saveText()
			if t.idx > 0 {
				t.idx--
				t.cursor = 0
				t.syncFocus()
			}
			return t, nil
		case "right", "tab":
			t.saveText()
			if t.idx < len(t.quiz.Questions)-1 {
				t.idx++
				t.cursor = 0
				t.syncFocus()
			}
			return t, nil
		case "ctrl+s":
			return t, t.submit(false)
		}

		if t.isTextQuestion() {
			var cmd tea.Cmd
			t.textInput, cmd = t.textInput.Update(msg)
			t.saveText()
			return t, cmd
		}

		q := t.current()
		if q == nil {
			return t, nil
		}
		switch msg.String() {
		case "up", "k":
			if t.cursor > 0 {
				t.cursor--
			}
		case "down", "j":
			if t.cursor < len(q.Choices)-1 {
				t.cursor++
			}
		case "enter", " ":
			t.selected[q.ID] = q.Choices[t.cursor].ID
		}
		return t, nil
	}

	if t.isTextQuestion() {
		var cmd tea.Cmd
		t.textInput, cmd = t.textInput.Update(msg)
		return t, cmd
	}
	return t, nil
}

func (t *Take) saveText() {
	if q := t.current(); q != nil && t.isTextQuestion() {
		t.text[q.ID] = t.textInput.Value()
	}
}

// submit collects answers and emits a single SubmitMsg. The countdown is
// stopped so a pending tick cannot fire a second submit.
func (t *Take) submit(auto bool) tea.Cmd {
	if t.submitted {
		return nil
	}
	t.submitted = true
	t.countdown.Stop()
	t.saveText()

	answers := make([]client.Answer, 0, len(t.quiz.Questions))
	for _, q := range t.quiz.Questions {
		a := client.Answer{QuestionID: q.ID}
		if choiceID, ok := t.selected[q.ID]; ok {
			id := choiceID
			a.SelectedChoiceID = &id
		} else if txt := t.text[q.ID]; txt != "" {
			a.TextAnswer = txt
		} else {
			continue
		}
		answers = append(answers, a)
	}

	quizID := t.quiz.ID
	return func() tea.Msg {
		return SubmitMsg{QuizID: quizID, Answers: answers, Auto: auto}
	}
}

// View implements tea.Model
func (t *Take) View() string {
	var sb strings.Builder

	header := styles.Title.Render(t.quiz.Title)
	if t.countdown.Timed() {
		clock := icons.Clock.String() + " " + t.countdown.Clock()
		clockStyle := styles.StatusOK
		if t.countdown.Low() {
			clockStyle = styles.StatusCritical
		}
		header += "  " + clockStyle.Render(clock)
	}
	sb.WriteString(header)
	sb.WriteString("\n\n")

	q := t.current()
	if q == nil {
		sb.WriteString(styles.Subtitle.Render("This quiz has no questions."))
		return sb.String()
	}

	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("Question %d of %d (%d pts)", t.idx+1, len(t.quiz.Questions), q.Points)))
	sb.WriteString("\n")
	sb.WriteString(q.QuestionText)
	sb.WriteString("\n\n")

	if t.isTextQuestion() {
		sb.WriteString(t.textInput.View())
		sb.WriteString("\n")
	} else {
		for i, choice := range q.Choices {
			marker := "( )"
			if t.selected[q.ID] == choice.ID {
				marker = "(x)"
			}
			line := fmt.Sprintf("%s %s", marker, choice.ChoiceText)
			if i == t.cursor {
				line = styles.ValueStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			sb.WriteString(line + "\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render(fmt.Sprintf("Answered %d/%d  tab/shift+tab Navigate  ctrl+s Submit  esc Leave", t.answeredCount(), len(t.quiz.Questions))))

	return lipgloss.NewStyle().Width(t.width).Render(sb.String())
}

func (t *Take) answeredCount() int {
	n := len(t.selected)
	for _, txt := range t.text {
		if txt != "" {
			n++
		}
	}
	return n
}
