// ABOUTME: Login and registration screens built on huh forms
// ABOUTME: Emits submit messages for the app model to run against the session

package login

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/trackdemic/trackdemic-cli/internal/client"
	"github.com/trackdemic/trackdemic-cli/internal/tui/styles"
)

// SubmitMsg is sent when the login form completes.
type SubmitMsg struct {
	Input client.LoginInput
}

// RegisterSubmitMsg is sent when the registration form completes.
type RegisterSubmitMsg struct {
	Input client.RegisterInput
}

// SwitchMsg asks the app to swap between the login and register screens.
type SwitchMsg struct {
	ToRegister bool
}

// Login is the sign-in form model.
type Login struct {
	form     *huh.Form
	username string
	password string
	errMsg   string
	width    int
}

// New creates the login form.
func New() *Login {
	l := &Login{}
	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&l.username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
	return l
}

// SetError shows a failure message above the form, keeping entered values.
func (l *Login) SetError(msg string) {
	l.errMsg = msg
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+r":
			return l, func() tea.Msg { return SwitchMsg{ToRegister: true} }
		}
	}
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		l.width = size.Width
	}

	model, cmd := l.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		l.form = form
	}

	if l.form.State == huh.StateCompleted {
		input := client.LoginInput{Username: l.username, Password: l.password}
		return l, func() tea.Msg { return SubmitMsg{Input: input} }
	}
	return l, cmd
}

// View implements tea.Model
func (l *Login) View() string {
	view := styles.Title.Render("Sign in to Trackdemic") + "\n"
	if l.errMsg != "" {
		view += styles.StatusCritical.Render(l.errMsg) + "\n\n"
	}
	view += l.form.View()
	view += styles.Help.Render("\nctrl+r Register  ctrl+c Quit")
	return view
}

// Register is the account creation form model.
type Register struct {
	form   *huh.Form
	input  client.RegisterInput
	errMsg string
}

// NewRegister creates the registration form.
func NewRegister() *Register {
	r := &Register{input: client.RegisterInput{UserType: client.RoleStudent}}
	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&r.input.Username),
			huh.NewInput().
				Title("Email").
				Value(&r.input.Email),
			huh.NewInput().
				Title("First name").
				Value(&r.input.FirstName),
			huh.NewInput().
				Title("Last name").
				Value(&r.input.LastName),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Role").
				Options(
					huh.NewOption("Student", client.RoleStudent),
					huh.NewOption("Faculty", client.RoleFaculty),
				).
				Value(&r.input.UserType),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&r.input.Password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&r.input.PasswordConfirm),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
	return r
}

// SetError shows a failure message above the form.
func (r *Register) SetError(msg string) {
	r.errMsg = msg
}

// Init implements tea.Model
func (r *Register) Init() tea.Cmd {
	return r.form.Init()
}

// Update implements tea.Model
func (r *Register) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+r":
			return r, func() tea.Msg { return SwitchMsg{ToRegister: false} }
		}
	}

	model, cmd := r.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		r.form = form
	}

	if r.form.State == huh.StateCompleted {
		input := r.input
		return r, func() tea.Msg { return RegisterSubmitMsg{Input: input} }
	}
	return r, cmd
}

// View implements tea.Model
func (r *Register) View() string {
	view := styles.Title.Render("Create your Trackdemic account") + "\n"
	if r.errMsg != "" {
		view += styles.StatusCritical.Render(r.errMsg) + "\n\n"
	}
	view += r.form.View()
	view += styles.Help.Render("\nctrl+r Back to sign in  ctrl+c Quit")
	return view
}
