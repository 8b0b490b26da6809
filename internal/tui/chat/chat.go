// ABOUTME: Chat assistant screen with scrollback viewport and message input
// ABOUTME: Tracks the backend session id and falls back gracefully on send failure

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"

	"github.com/trackdemic/trackdemic-cli/internal/client"
	"github.com/trackdemic/trackdemic-cli/internal/tui/icons"
	"github.com/trackdemic/trackdemic-cli/internal/tui/styles"
)

const welcomeText = "Hi! I'm your learning assistant. Ask me anything about your courses, quizzes, or progress."

const fallbackText = "Sorry, I couldn't reach the assistant right now. Please try again in a moment."

// SendRequestMsg asks the app to deliver a message to the assistant.
type SendRequestMsg struct {
	LocalID   string
	SessionID string
	Text      string
}

// ReplyMsg carries the assistant's answer back to the screen.
type ReplyMsg struct {
	LocalID string
	Resp    *client.ChatResponse
	Err     error
}

// ClearRequestMsg asks the app to clear the current session.
type ClearRequestMsg struct {
	SessionID string
}

// CancelledMsg is sent when the user leaves the chat screen.
type CancelledMsg struct{}

// line is one rendered chat entry. Local entries carry a ULID until the
// backend confirms them.
type line struct {
	localID string
	from    string // "user", "bot", "system"
	text    string
	pending bool
}

// Chat is the assistant conversation screen.
type Chat struct {
	viewport  viewport.Model
	input     textarea.Model
	lines     []line
	sessionID string
	width     int
	height    int
	ready     bool
}

// New creates the chat screen, optionally restoring prior history.
func New(history []client.ChatMessage, sessionID string) *Chat {
	ta := textarea.New()
	ta.Placeholder = "Ask the assistant..."
	ta.SetHeight(2)
	ta.CharLimit = 1000
	ta.ShowLineNumbers = false
	ta.Focus()

	c := &Chat{
		input:     ta,
		sessionID: sessionID,
	}
	if len(history) == 0 {
		c.lines = append(c.lines, line{from: "bot", text: welcomeText})
	}
	for _, m := range history {
		from := "bot"
		if m.MessageType == "user" {
			from = "user"
		}
		c.lines = append(c.lines, line{from: from, text: m.Content})
	}
	return c
}

// SessionID returns the current backend session id, empty before the
// first confirmed message.
func (c *Chat) SessionID() string {
	return c.sessionID
}

// Init implements tea.Model
func (c *Chat) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		vpHeight := msg.Height - c.input.Height() - 4
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !c.ready {
			c.viewport = viewport.New(msg.Width-2, vpHeight)
			c.ready = true
		} else {
			c.viewport.Width = msg.Width - 2
			c.viewport.Height = vpHeight
		}
		c.input.SetWidth(msg.Width - 2)
		c.refresh()
		return c, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return c, func() tea.Msg { return CancelledMsg{} }
		case "ctrl+l":
			if c.sessionID != "" {
				sessionID := c.sessionID
				c.sessionID = ""
				c.lines = []line{{from: "bot", text: welcomeText}}
				c.refresh()
				return c, func() tea.Msg { return ClearRequestMsg{SessionID: sessionID} }
			}
			return c, nil
		case "enter":
			text := strings.TrimSpace(c.input.Value())
			if text == "" {
				return c, nil
			}
			localID := ulid.Make().String()
			c.lines = append(c.lines, line{localID: localID, from: "user", text: text, pending: true})
			c.input.Reset()
			c.refresh()
			sessionID := c.sessionID
			return c, func() tea.Msg {
				return SendRequestMsg{LocalID: localID, SessionID: sessionID, Text: text}
			}
		}

	case ReplyMsg:
		c.resolve(msg)
		return c, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	cmds = append(cmds, cmd)
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return c, tea.Batch(cmds...)
}

// resolve applies the assistant's reply, or a fallback line on failure.
func (c *Chat) resolve(msg ReplyMsg) {
	for i := range c.lines {
		if c.lines[i].localID == msg.LocalID {
			c.lines[i].pending = false
			break
		}
	}
	if msg.Err != nil || msg.Resp == nil {
		c.lines = append(c.lines, line{from: "system", text: fallbackText})
		c.refresh()
		return
	}
	c.sessionID = msg.Resp.SessionID
	c.lines = append(c.lines, line{from: "bot", text: msg.Resp.BotResponse.Content})
	c.refresh()
}

func (c *Chat) refresh() {
	if !c.ready {
		return
	}
	var sb strings.Builder
	for _, l := range c.lines {
		switch l.from {
		case "user":
			prefix := "You"
			if l.pending {
				prefix = "You (sending...)"
			}
			sb.WriteString(styles.ChatUser.Render(prefix+":") + " " + l.text + "\n\n")
		case "bot":
			sb.WriteString(styles.ChatBot.Render("Assistant:") + " " + l.text + "\n\n")
		default:
			sb.WriteString(styles.StatusWarning.Render(l.text) + "\n\n")
		}
	}
	c.viewport.SetContent(sb.String())
	c.viewport.GotoBottom()
}

// View implements tea.Model
func (c *Chat) View() string {
	if !c.ready {
		return styles.Subtitle.Render("Loading chat...")
	}
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Chat.String() + " Assistant"))
	sb.WriteString("\n")
	sb.WriteString(c.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(c.input.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("enter Send  ctrl+l Clear session  esc Back"))
	return sb.String()
}
