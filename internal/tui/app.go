// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Bootstraps the session, guards screens by role, and routes messages

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/trackdemic/trackdemic-cli/internal/client"
	"github.com/trackdemic/trackdemic-cli/internal/debuglog"
	"github.com/trackdemic/trackdemic-cli/internal/session"
	"github.com/trackdemic/trackdemic-cli/internal/store"
	"github.com/trackdemic/trackdemic-cli/internal/tui/chat"
	"github.com/trackdemic/trackdemic-cli/internal/tui/courses"
	"github.com/trackdemic/trackdemic-cli/internal/tui/dashboard"
	"github.com/trackdemic/trackdemic-cli/internal/tui/icons"
	"github.com/trackdemic/trackdemic-cli/internal/tui/login"
	"github.com/trackdemic/trackdemic-cli/internal/tui/profile"
	"github.com/trackdemic/trackdemic-cli/internal/tui/quiz"
	"github.com/trackdemic/trackdemic-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenDashboard
	ScreenCourses
	ScreenQuizzes
	ScreenTakeQuiz
	ScreenQuizResult
	ScreenChat
	ScreenProfile
)

// Layout constants
const (
	minTerminalWidth = 80
	requestTimeout   = 30 * time.Second
)

// screenRoles lists the roles allowed on each screen. An absent entry or an
// empty list means any authenticated user.
var screenRoles = map[Screen][]string{
	ScreenTakeQuiz: {client.RoleStudent},
}

type bootstrapDoneMsg struct {
	snap session.Snapshot
}

type authResultMsg struct {
	user *client.User
	err  error
}

type logoutDoneMsg struct{}

type dashboardLoadedMsg struct {
	student *dashboard.StudentData
	faculty *dashboard.FacultyData
	admin   *dashboard.AdminData
	err     error
}

type coursesLoadedMsg struct {
	page       *client.Page[client.Course]
	categories []client.Category
	filter     client.CourseFilter
	err        error
}

type courseActionMsg struct {
	err error
}

type quizzesLoadedMsg struct {
	page *client.Page[client.Quiz]
	err  error
}

type quizStartedMsg struct {
	quiz *client.Quiz
	err  error
}

type quizSubmittedMsg struct {
	resp *client.AttemptResponse
	err  error
}

type chatHistoryMsg struct {
	messages  []client.ChatMessage
	sessionID string
	err       error
}

type profileSavedMsg struct {
	user *client.User
	err  error
}

type passwordChangedMsg struct {
	err error
}

type facultyProfileMsg struct {
	profile *client.FacultyProfile
	saved   bool
	err     error
}

// App is the root model for the TUI
type App struct {
	client  *client.Client
	session *session.Controller
	store   *store.Store

	screen   Screen
	resume   Screen // where to go after a login prompt
	width    int
	height   int
	spin     spinner.Model
	booting  bool
	notice   string
	errMsg   string
	lastSync time.Time

	// Child models
	loginScreen    *login.Login
	registerScreen *login.Register
	dash           *dashboard.Dashboard
	catalog        *courses.Catalog
	quizList       *quiz.List
	takeScreen     *quiz.Take
	quizResult     *client.AttemptResponse
	chatScreen     *chat.Chat
	profileScreen  *profile.Profile
}

// New creates a new TUI application
func New(apiClient *client.Client, sess *session.Controller, st *store.Store) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)
	return &App{
		client:  apiClient,
		session: sess,
		store:   st,
		screen:  ScreenLogin,
		resume:  ScreenDashboard,
		spin:    sp,
		booting: true,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.bootstrap())
}

func (a *App) bootstrap() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return bootstrapDoneMsg{snap: a.session.Bootstrap(ctx)}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dash != nil {
			a.dash.SetSize(a.contentWidth(), a.contentHeight())
		}
		return a, a.forward(msg)

	case spinner.TickMsg:
		if !a.booting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.booting {
			return a, nil
		}
		if handled, cmd := a.globalKeys(msg); handled {
			return a, cmd
		}
		return a, a.forward(msg)

	case bootstrapDoneMsg:
		a.booting = false
		if msg.snap.IsAuthenticated {
			return a, a.navigate(ScreenDashboard)
		}
		return a, a.showLogin()

	case login.SubmitMsg:
		return a, a.doLogin(msg.Input)

	case login.RegisterSubmitMsg:
		return a, a.doRegister(msg.Input)

	case login.SwitchMsg:
		if msg.ToRegister {
			a.screen = ScreenRegister
			a.registerScreen = login.NewRegister()
			return a, a.registerScreen.Init()
		}
		return a, a.showLogin()

	case authResultMsg:
		return a.handleAuthResult(msg)

	case logoutDoneMsg:
		a.resume = ScreenDashboard
		a.resetScreens()
		return a, a.showLogin()

	case dashboardLoadedMsg:
		if msg.err != nil {
			a.errMsg = a.friendly(msg.err)
			return a, nil
		}
		a.lastSync = time.Now()
		if a.dash != nil {
			if msg.student != nil {
				a.dash.SetStudent(msg.student)
			}
			if msg.faculty != nil {
				a.dash.SetFaculty(msg.faculty)
			}
			if msg.admin != nil {
				a.dash.SetAdmin(msg.admin)
			}
		}
		return a, nil

	case coursesLoadedMsg:
		if msg.err != nil {
			a.errMsg = a.friendly(msg.err)
			return a, nil
		}
		a.lastSync = time.Now()
		if a.catalog == nil {
			a.catalog = courses.New(msg.page, msg.filter)
		} else {
			a.catalog.SetPage(msg.page)
			a.catalog.SetStatus("")
		}
		a.catalog.SetCategories(msg.categories)
		a.screen = ScreenCourses
		return a, nil

	case courses.SearchMsg:
		return a, a.loadCourses(msg.Filter)

	case courses.EnrollRequestMsg:
		return a, a.enroll(msg.CourseID, true)

	case courses.UnenrollRequestMsg:
		return a, a.enroll(msg.CourseID, false)

	case courseActionMsg:
		if msg.err != nil {
			if a.catalog != nil {
				a.catalog.SetStatus(a.friendly(msg.err))
			}
			return a, nil
		}
		// Reload so enrollment flags are current.
		filter := client.CourseFilter{}
		if a.catalog != nil {
			a.catalog.SetStatus("Done.")
		}
		return a, a.loadCourses(filter)

	case courses.CancelledMsg, quiz.CancelledMsg, chat.CancelledMsg, profile.CancelledMsg:
		return a, a.navigate(ScreenDashboard)

	case quizzesLoadedMsg:
		if msg.err != nil {
			a.errMsg = a.friendly(msg.err)
			return a, nil
		}
		a.lastSync = time.Now()
		a.quizList = quiz.NewList(msg.page.Results)
		a.screen = ScreenQuizzes
		return a, nil

	case quiz.SelectedMsg:
		return a, a.startQuiz(msg.QuizID)

	case quizStartedMsg:
		if msg.err != nil {
			a.errMsg = a.friendly(msg.err)
			return a, nil
		}
		if Authorize(a.session.Snapshot(), screenRoles[ScreenTakeQuiz]...) != AccessGranted {
			a.notice = "You don't have access to that screen."
			return a, nil
		}
		a.takeScreen = quiz.NewTake(msg.quiz)
		a.screen = ScreenTakeQuiz
		return a, a.takeScreen.Init()

	case quiz.SubmitMsg:
		return a, a.submitQuiz(msg)

	case quiz.LeaveMsg:
		a.takeScreen = nil
		return a, a.navigate(ScreenQuizzes)

	case quizSubmittedMsg:
		a.takeScreen = nil
		if msg.err != nil {
			a.errMsg = a.friendly(msg.err)
			a.screen = ScreenQuizzes
			return a, nil
		}
		a.quizResult = msg.resp
		a.screen = ScreenQuizResult
		return a, nil

	case chatHistoryMsg:
		if msg.err != nil {
			// History is best effort; open an empty conversation.
			a.chatScreen = chat.New(nil, "")
		} else {
			a.chatScreen = chat.New(msg.messages, msg.sessionID)
		}
		a.screen = ScreenChat
		cmds := []tea.Cmd{a.chatScreen.Init()}
		if a.width > 0 {
			cmds = append(cmds, a.forward(tea.WindowSizeMsg{Width: a.width, Height: a.height}))
		}
		return a, tea.Batch(cmds...)

	case chat.SendRequestMsg:
		return a, a.sendChat(msg)

	case chat.ReplyMsg:
		return a, a.forward(msg)

	case chat.ClearRequestMsg:
		sessionID := msg.SessionID
		return a, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			_ = a.client.ClearChatSession(ctx, sessionID)
			return nil
		}

	case profile.SaveMsg:
		return a, a.saveProfile(msg.Fields)

	case profile.PasswordMsg:
		return a, a.changePassword(msg.Input)

	case profile.FacultySaveMsg:
		return a, a.saveFacultyProfile(msg.Fields)

	case profileSavedMsg:
		if a.profileScreen == nil {
			return a, nil
		}
		if msg.err != nil {
			a.profileScreen.SetError(a.friendly(msg.err))
			return a, nil
		}
		a.profileScreen.SetUser(msg.user)
		return a, nil

	case passwordChangedMsg:
		if a.profileScreen == nil {
			return a, nil
		}
		if msg.err != nil {
			a.profileScreen.SetError(a.friendly(msg.err))
			return a, nil
		}
		a.profileScreen.PasswordChanged()
		return a, nil

	case facultyProfileMsg:
		if a.profileScreen == nil {
			return a, nil
		}
		if msg.err != nil {
			if msg.saved {
				a.profileScreen.SetError(a.friendly(msg.err))
			}
			return a, nil
		}
		if msg.saved {
			a.profileScreen.FacultySaved(msg.profile)
		} else {
			a.profileScreen.SetFacultyProfile(msg.profile)
		}
		return a, nil

	default:
		// huh forms and bubbles need their internal messages.
		return a, a.forward(msg)
	}
}

// globalKeys handles navigation shortcuts outside of text entry screens.
func (a *App) globalKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch a.screen {
	case ScreenLogin, ScreenRegister, ScreenCourses, ScreenTakeQuiz, ScreenChat, ScreenProfile:
		// Screens with text input own their keys.
		return false, nil
	case ScreenQuizResult:
		a.quizResult = nil
		return true, a.navigate(ScreenQuizzes)
	}

	switch msg.String() {
	case "q":
		return true, tea.Quit
	case "d":
		return true, a.navigate(ScreenDashboard)
	case "c":
		return true, a.navigate(ScreenCourses)
	case "z":
		return true, a.navigate(ScreenQuizzes)
	case "a":
		return true, a.navigate(ScreenChat)
	case "m":
		return true, a.navigate(ScreenProfile)
	case "x":
		return true, a.doLogout()
	}
	return false, nil
}

// navigate checks the route guard and switches screens, kicking off the
// screen's data load on success.
func (a *App) navigate(to Screen) tea.Cmd {
	a.errMsg = ""
	snap := a.session.Snapshot()
	switch Authorize(snap, screenRoles[to]...) {
	case AccessPending:
		a.booting = true
		return a.spin.Tick
	case AccessLogin:
		a.resume = to
		return a.showLogin()
	case AccessDenied:
		a.notice = "You don't have access to that screen."
		return nil
	}

	a.notice = ""
	switch to {
	case ScreenDashboard:
		a.screen = ScreenDashboard
		a.dash = dashboard.New(snap.EffectiveRole(), a.contentWidth(), a.contentHeight())
		return a.loadDashboard(snap)
	case ScreenCourses:
		a.screen = ScreenCourses
		a.catalog = nil
		return a.loadCourses(client.CourseFilter{})
	case ScreenQuizzes:
		a.screen = ScreenQuizzes
		a.quizList = nil
		return a.loadQuizzes()
	case ScreenChat:
		a.screen = ScreenChat
		a.chatScreen = nil
		return a.loadChat()
	case ScreenProfile:
		a.screen = ScreenProfile
		user := snap.User
		a.profileScreen = profile.New(user, a.store)
		if snap.EffectiveRole() == client.RoleFaculty {
			return a.loadFacultyProfile()
		}
		return nil
	}
	a.screen = to
	return nil
}

func (a *App) showLogin() tea.Cmd {
	a.screen = ScreenLogin
	a.loginScreen = login.New()
	return a.loginScreen.Init()
}

func (a *App) resetScreens() {
	a.dash = nil
	a.catalog = nil
	a.quizList = nil
	a.takeScreen = nil
	a.chatScreen = nil
	a.profileScreen = nil
	a.quizResult = nil
}

func (a *App) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		friendly := a.friendly(msg.err)
		var vErr *session.ValidationError
		if errors.As(msg.err, &vErr) {
			friendly = vErr.Error()
		}
		switch a.screen {
		case ScreenRegister:
			a.registerScreen = login.NewRegister()
			a.registerScreen.SetError(friendly)
			return a, a.registerScreen.Init()
		default:
			cmd := a.showLogin()
			a.loginScreen.SetError(friendly)
			return a, cmd
		}
	}
	a.loginScreen = nil
	a.registerScreen = nil
	target := a.resume
	a.resume = ScreenDashboard
	return a, a.navigate(target)
}

// forward routes a message to the active child model.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	switch a.screen {
	case ScreenLogin:
		if a.loginScreen == nil {
			return nil
		}
		model, cmd := a.loginScreen.Update(msg)
		a.loginScreen = model.(*login.Login)
		return cmd
	case ScreenRegister:
		if a.registerScreen == nil {
			return nil
		}
		model, cmd := a.registerScreen.Update(msg)
		a.registerScreen = model.(*login.Register)
		return cmd
	case ScreenCourses:
		if a.catalog == nil {
			return nil
		}
		model, cmd := a.catalog.Update(msg)
		a.catalog = model.(*courses.Catalog)
		return cmd
	case ScreenQuizzes:
		if a.quizList == nil {
			return nil
		}
		model, cmd := a.quizList.Update(msg)
		a.quizList = model.(*quiz.List)
		return cmd
	case ScreenTakeQuiz:
		if a.takeScreen == nil {
			return nil
		}
		model, cmd := a.takeScreen.Update(msg)
		a.takeScreen = model.(*quiz.Take)
		return cmd
	case ScreenChat:
		if a.chatScreen == nil {
			return nil
		}
		model, cmd := a.chatScreen.Update(msg)
		a.chatScreen = model.(*chat.Chat)
		return cmd
	case ScreenProfile:
		if a.profileScreen == nil {
			return nil
		}
		model, cmd := a.profileScreen.Update(msg)
		a.profileScreen = model.(*profile.Profile)
		return cmd
	}
	return nil
}

func (a *App) doLogin(input client.LoginInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := a.session.Login(ctx, input)
		return authResultMsg{user: user, err: err}
	}
}

func (a *App) doRegister(input client.RegisterInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := a.session.Register(ctx, input)
		return authResultMsg{user: user, err: err}
	}
}

func (a *App) doLogout() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		a.session.Logout(ctx)
		return logoutDoneMsg{}
	}
}

// loadDashboard fetches the role's overview data concurrently.
func (a *App) loadDashboard(snap session.Snapshot) tea.Cmd {
	role := snap.EffectiveRole()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		switch role {
		case client.RoleFaculty:
			data := &dashboard.FacultyData{}
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				page, err := a.client.ListMyCourses(ctx)
				if err != nil {
					return err
				}
				data.Courses = page.Results
				return nil
			})
			g.Go(func() error {
				page, err := a.client.ListMyQuizzes(ctx)
				if err != nil {
					return err
				}
				data.Quizzes = page.Results
				return nil
			})
			if err := g.Wait(); err != nil {
				return dashboardLoadedMsg{err: err}
			}
			return dashboardLoadedMsg{faculty: data}

		case client.RoleAdmin:
			stats, err := a.client.GetDashboardStats(ctx)
			if err != nil {
				return dashboardLoadedMsg{err: err}
			}
			return dashboardLoadedMsg{admin: &dashboard.AdminData{Stats: stats}}

		default:
			data := &dashboard.StudentData{}
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				enrollments, err := a.client.MyEnrollments(ctx)
				if err != nil {
					return err
				}
				data.Enrollments = enrollments
				return nil
			})
			g.Go(func() error {
				attempts, err := a.client.MyAttempts(ctx)
				if err != nil {
					return err
				}
				data.Attempts = attempts
				return nil
			})
			g.Go(func() error {
				// Performance may not exist yet for new students.
				perf, err := a.client.GetPerformance(ctx, 0)
				if err == nil {
					data.Performance = perf
				}
				return nil
			})
			if err := g.Wait(); err != nil {
				return dashboardLoadedMsg{err: err}
			}
			return dashboardLoadedMsg{student: data}
		}
	}
}

func (a *App) loadCourses(filter client.CourseFilter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var (
			page       *client.Page[client.Course]
			categories []client.Category
		)
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			page, err = a.client.ListCourses(ctx, filter)
			return err
		})
		g.Go(func() error {
			// The filter cycle works without categories if this fails.
			categories, _ = a.client.ListCategories(ctx)
			return nil
		})
		if err := g.Wait(); err != nil {
			return coursesLoadedMsg{err: err}
		}
		return coursesLoadedMsg{page: page, categories: categories, filter: filter}
	}
}

func (a *App) enroll(courseID int, join bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		var err error
		if join {
			err = a.client.EnrollCourse(ctx, courseID)
		} else {
			err = a.client.UnenrollCourse(ctx, courseID)
		}
		return courseActionMsg{err: err}
	}
}

func (a *App) loadQuizzes() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		page, err := a.client.ListQuizzes(ctx, client.QuizFilter{})
		return quizzesLoadedMsg{page: page, err: err}
	}
}

// startQuiz fetches the quiz detail and opens the attempt.
func (a *App) startQuiz(quizID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if _, err := a.client.StartQuiz(ctx, quizID); err != nil {
			return quizStartedMsg{err: err}
		}
		detail, err := a.client.GetQuiz(ctx, quizID)
		return quizStartedMsg{quiz: detail, err: err}
	}
}

func (a *App) submitQuiz(msg quiz.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		resp, err := a.client.SubmitQuiz(ctx, msg.QuizID, msg.Answers)
		return quizSubmittedMsg{resp: resp, err: err}
	}
}

func (a *App) loadChat() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		sessions, err := a.client.ChatHistory(ctx, "")
		if err != nil {
			return chatHistoryMsg{err: err}
		}
		if len(sessions) == 0 {
			return chatHistoryMsg{}
		}
		latest := sessions[0]
		return chatHistoryMsg{messages: latest.Messages, sessionID: latest.SessionID}
	}
}

func (a *App) sendChat(msg chat.SendRequestMsg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		resp, err := a.client.SendChatMessage(ctx, msg.Text, msg.SessionID)
		return chat.ReplyMsg{LocalID: msg.LocalID, Resp: resp, Err: err}
	}
}

func (a *App) saveProfile(fields map[string]any) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := a.session.UpdateProfile(ctx, fields)
		return profileSavedMsg{user: user, err: err}
	}
}

func (a *App) changePassword(input client.ChangePasswordInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return passwordChangedMsg{err: a.session.ChangePassword(ctx, input)}
	}
}

func (a *App) loadFacultyProfile() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		fp, err := a.client.GetFacultyProfile(ctx)
		return facultyProfileMsg{profile: fp, err: err}
	}
}

func (a *App) saveFacultyProfile(fields map[string]any) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		fp, err := a.client.UpdateFacultyProfile(ctx, fields)
		return facultyProfileMsg{profile: fp, saved: true, err: err}
	}
}

// friendly turns an error into a message fit for the footer. Every error
// surfaced to the user also lands in the debug log, since the alt screen
// swallows stack traces.
func (a *App) friendly(err error) string {
	if err == nil {
		return ""
	}
	debuglog.Error("api", err)
	if errors.Is(err, client.ErrSessionExpired) {
		return "Your session has expired. Please sign in again."
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}

// View implements tea.Model
func (a *App) View() string {
	if a.booting {
		return a.wrapWithFrame(a.spin.View() + " Checking your session...")
	}

	loading := styles.Subtitle.Render("Loading...")
	content := loading
	switch a.screen {
	case ScreenLogin:
		if a.loginScreen != nil {
			content = a.loginScreen.View()
		}
	case ScreenRegister:
		if a.registerScreen != nil {
			content = a.registerScreen.View()
		}
	case ScreenDashboard:
		content = a.viewDashboard()
	case ScreenCourses:
		if a.catalog != nil {
			content = a.catalog.View()
		}
	case ScreenQuizzes:
		if a.quizList != nil {
			content = a.quizList.View()
		}
	case ScreenTakeQuiz:
		if a.takeScreen != nil {
			content = a.takeScreen.View()
		}
	case ScreenQuizResult:
		content = a.viewQuizResult()
	case ScreenChat:
		if a.chatScreen != nil {
			content = a.chatScreen.View()
		}
	case ScreenProfile:
		if a.profileScreen != nil {
			content = a.profileScreen.View()
		}
	}

	if a.errMsg != "" {
		content += "\n" + styles.StatusCritical.Render(a.errMsg)
	}
	if a.notice != "" {
		content += "\n" + styles.StatusWarning.Render(a.notice)
	}
	return a.wrapWithFrame(content)
}

func (a *App) viewDashboard() string {
	if a.dash == nil {
		return styles.Panel.Render("Loading...")
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(a.dash.View())
}

func (a *App) viewQuizResult() string {
	if a.quizResult == nil {
		return ""
	}
	attempt := a.quizResult.Attempt
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Quiz.String() + " " + attempt.QuizTitle))
	sb.WriteString("\n\n")
	if a.quizResult.Message != "" {
		sb.WriteString(a.quizResult.Message + "\n\n")
	}
	if attempt.Score != nil {
		scoreStyle := styles.StatusCritical
		if attempt.Passed {
			scoreStyle = styles.StatusOK
		}
		sb.WriteString("Score: " + scoreStyle.Render(fmt.Sprintf("%.1f%%", *attempt.Score)) + "\n")
		if attempt.Passed {
			sb.WriteString(styles.StatusOK.Render("Passed") + "\n")
		} else {
			sb.WriteString(styles.StatusCritical.Render("Not passed") + "\n")
		}
	}
	sb.WriteString("\n" + styles.Help.Render("Press any key to continue"))
	return sb.String()
}

func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth - 4
	}
	return a.width - 4
}

func (a *App) contentHeight() int {
	return a.height - 8
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Trackdemic"))

	rightText := ""
	snap := a.session.Snapshot()
	if snap.IsAuthenticated && snap.User != nil {
		rightText = contextStyle.Render(snap.User.DisplayName()+" ("+snap.EffectiveRole()+")") + " "
	}

	leftRendered := lipgloss.NewStyle().Render(leftText)
	rightRendered := lipgloss.NewStyle().Align(lipgloss.Right).Render(rightText)

	fillWidth := width - 4 - lipgloss.Width(leftRendered) - lipgloss.Width(rightRendered)
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftRendered + strings.Repeat("─", fillWidth) + rightRendered + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and sync status
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin, ScreenRegister:
		shortcuts = []string{"tab Next field", "enter Submit", "ctrl+c Quit"}
	case ScreenDashboard:
		shortcuts = []string{"c Courses", "z Quizzes", "a Assistant", "m Profile", "x Sign out", "q Quit"}
	case ScreenTakeQuiz:
		shortcuts = []string{"tab Next question", "ctrl+s Submit", "esc Leave"}
	case ScreenChat:
		shortcuts = []string{"enter Send", "esc Back"}
	default:
		shortcuts = []string{"d Dashboard", "q Quit"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastSync.IsZero() && a.screen != ScreenLogin && a.screen != ScreenRegister {
		elapsed := formatTimeSince(a.lastSync)
		rightText = statusStyle.Render("Synced "+elapsed) + " "
		rightPlainText = "Synced " + elapsed + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftPlainText) - lipgloss.Width(rightPlainText)
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

func formatTimeSince(t time.Time) string {
	d := time.Since(t)
	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh ago", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder
	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())
	return sb.String()
}

// Run starts the TUI
func Run(apiClient *client.Client, sess *session.Controller, st *store.Store) error {
	app := New(apiClient, sess, st)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
