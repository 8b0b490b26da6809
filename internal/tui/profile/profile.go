// ABOUTME: Profile screen with account editing and password change forms
// ABOUTME: Faculty additionally edit their extended profile with a local draft

package profile

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/trackdemic/trackdemic-cli/internal/client"
	"github.com/trackdemic/trackdemic-cli/internal/store"
	"github.com/trackdemic/trackdemic-cli/internal/tui/styles"
	"github.com/trackdemic/trackdemic-cli/internal/tui/widgets"
)

// SaveMsg carries edited account fields for the app to submit.
type SaveMsg struct {
	Fields map[string]any
}

// PasswordMsg carries a password change request.
type PasswordMsg struct {
	Input client.ChangePasswordInput
}

// FacultySaveMsg carries edited faculty profile fields.
type FacultySaveMsg struct {
	Fields map[string]any
}

// CancelledMsg is sent when the user leaves the profile screen.
type CancelledMsg struct{}

type mode int

const (
	modeView mode = iota
	modeEdit
	modePassword
	modeFaculty
)

// Profile is the account management screen.
type Profile struct {
	user  *client.User
	store *store.Store
	mode  mode

	form   *huh.Form
	edited client.User

	oldPassword     string
	newPassword     string
	confirmPassword string

	facultyProfile *client.FacultyProfile
	draft          client.FacultyProfile

	status string
	errMsg string
}

// New creates the profile screen for the signed-in user.
func New(user *client.User, st *store.Store) *Profile {
	return &Profile{user: user, store: st}
}

// SetUser refreshes the displayed user, e.g. after a successful save.
func (p *Profile) SetUser(user *client.User) {
	p.user = user
	p.mode = modeView
	p.form = nil
	p.status = "Profile saved."
	p.errMsg = ""
}

// SetFacultyProfile installs the server copy of the faculty profile.
// A local draft, when present, takes precedence in the editor.
func (p *Profile) SetFacultyProfile(fp *client.FacultyProfile) {
	p.facultyProfile = fp
}

// FacultySaved clears the local draft after the server accepted the edits.
func (p *Profile) FacultySaved(fp *client.FacultyProfile) {
	p.facultyProfile = fp
	_ = ClearDraft(p.store)
	p.mode = modeView
	p.form = nil
	p.status = "Faculty profile saved."
	p.errMsg = ""
}

// SetError surfaces a save failure, keeping the form open.
func (p *Profile) SetError(msg string) {
	p.errMsg = msg
}

// PasswordChanged reports a successful password change.
func (p *Profile) PasswordChanged() {
	p.mode = modeView
	p.form = nil
	p.status = "Password changed."
	p.errMsg = ""
}

func (p *Profile) startEdit() tea.Cmd {
	p.edited = *p.user
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("First name").Value(&p.edited.FirstName),
			huh.NewInput().Title("Last name").Value(&p.edited.LastName),
			huh.NewInput().Title("Email").Value(&p.edited.Email),
			huh.NewInput().Title("Phone").Value(&p.edited.PhoneNumber),
			huh.NewText().Title("Bio").Value(&p.edited.Bio),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
	p.mode = modeEdit
	p.status = ""
	p.errMsg = ""
	return p.form.Init()
}

func (p *Profile) startPassword() tea.Cmd {
	p.oldPassword = ""
	p.newPassword = ""
	p.confirmPassword = ""
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Current password").EchoMode(huh.EchoModePassword).Value(&p.oldPassword),
			huh.NewInput().Title("New password").EchoMode(huh.EchoModePassword).Value(&p.newPassword),
			huh.NewInput().Title("Confirm new password").EchoMode(huh.EchoModePassword).Value(&p.confirmPassword),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
	p.mode = modePassword
	p.status = ""
	p.errMsg = ""
	return p.form.Init()
}

func (p *Profile) startFaculty() tea.Cmd {
	if draft, ok := LoadDraft(p.store); ok {
		p.draft = *draft
	} else if p.facultyProfile != nil {
		p.draft = *p.facultyProfile
	} else {
		p.draft = client.FacultyProfile{}
	}
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Department").Value(&p.draft.Department),
			huh.NewInput().Title("Designation").Value(&p.draft.Designation),
			huh.NewInput().Title("Specialization").Value(&p.draft.Specialization),
		),
		huh.NewGroup(
			huh.NewText().Title("Qualifications").Value(&p.draft.EducationalQualifications),
			huh.NewText().Title("Certifications and awards").Value(&p.draft.CertificationsAwards),
			huh.NewInput().Title("Subject expertise").Value(&p.draft.SubjectExpertise),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
	p.mode = modeFaculty
	p.status = ""
	p.errMsg = ""
	return p.form.Init()
}

// Init implements tea.Model
func (p *Profile) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (p *Profile) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.mode == modeView {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "e":
				return p, p.startEdit()
			case "w":
				return p, p.startPassword()
			case "f":
				if p.user.EffectiveRole() == client.RoleFaculty {
					return p, p.startFaculty()
				}
			case "esc", "b":
				return p, func() tea.Msg { return CancelledMsg{} }
			}
		}
		return p, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		if p.mode == modeFaculty {
			// Keep the unsaved edits around for next time.
			draft := p.draft
			_ = SaveDraft(p.store, &draft)
		}
		p.mode = modeView
		p.form = nil
		return p, nil
	}

	model, cmd := p.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		p.form = form
	}
	if p.mode == modeFaculty {
		// Write-through so a crash or quit never loses edits.
		draft := p.draft
		_ = SaveDraft(p.store, &draft)
	}

	if p.form.State == huh.StateCompleted {
		switch p.mode {
		case modeEdit:
			fields := map[string]any{
				"first_name":   p.edited.FirstName,
				"last_name":    p.edited.LastName,
				"email":        p.edited.Email,
				"phone_number": p.edited.PhoneNumber,
				"bio":          p.edited.Bio,
			}
			return p, func() tea.Msg { return SaveMsg{Fields: fields} }
		case modePassword:
			input := client.ChangePasswordInput{
				OldPassword:        p.oldPassword,
				NewPassword:        p.newPassword,
				NewPasswordConfirm: p.confirmPassword,
			}
			return p, func() tea.Msg { return PasswordMsg{Input: input} }
		case modeFaculty:
			fields := map[string]any{
				"department":                 p.draft.Department,
				"designation":                p.draft.Designation,
				"specialization":             p.draft.Specialization,
				"educational_qualifications": p.draft.EducationalQualifications,
				"certifications_awards":      p.draft.CertificationsAwards,
				"subject_expertise":          p.draft.SubjectExpertise,
			}
			return p, func() tea.Msg { return FacultySaveMsg{Fields: fields} }
		}
	}
	return p, cmd
}

// View implements tea.Model
func (p *Profile) View() string {
	if p.mode != modeView && p.form != nil {
		view := styles.Title.Render(p.formTitle()) + "\n"
		if p.errMsg != "" {
			view += styles.StatusCritical.Render(p.errMsg) + "\n\n"
		}
		view += p.form.View()
		view += styles.Help.Render("\nesc Cancel")
		return view
	}

	view := styles.Title.Render("Profile") + "  " + widgets.RoleBadge(p.user.EffectiveRole()) + "\n\n"
	view += styles.KeyStyle.Render("Username:  ") + p.user.Username + "\n"
	view += styles.KeyStyle.Render("Name:      ") + p.user.DisplayName() + "\n"
	view += styles.KeyStyle.Render("Email:     ") + p.user.Email + "\n"
	if p.user.PhoneNumber != "" {
		view += styles.KeyStyle.Render("Phone:     ") + p.user.PhoneNumber + "\n"
	}
	if p.user.Bio != "" {
		view += styles.KeyStyle.Render("Bio:       ") + p.user.Bio + "\n"
	}
	if p.facultyProfile != nil {
		view += "\n" + styles.Subtitle.Render("Faculty") + "\n"
		view += styles.KeyStyle.Render("Department:  ") + p.facultyProfile.Department + "\n"
		view += styles.KeyStyle.Render("Designation: ") + p.facultyProfile.Designation + "\n"
	}
	if _, ok := LoadDraft(p.store); ok {
		view += "\n" + styles.StatusWarning.Render("You have unsaved faculty profile edits.") + "\n"
	}
	if p.status != "" {
		view += "\n" + styles.StatusOK.Render(p.status) + "\n"
	}
	help := "e Edit  w Password"
	if p.user.EffectiveRole() == client.RoleFaculty {
		help += "  f Faculty profile"
	}
	view += "\n" + styles.Help.Render(help+"  esc Back")
	return view
}

func (p *Profile) formTitle() string {
	switch p.mode {
	case modeEdit:
		return "Edit profile"
	case modePassword:
		return "Change password"
	case modeFaculty:
		return "Edit faculty profile"
	}
	return ""
}
