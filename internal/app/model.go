// Package app is the terminal UI: a bubbletea model that walks the user from sign-in through
// writing a script, reading it off the teleprompter while recording, and managing the library.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwulff/prompter/internal/auth"
	"github.com/jwulff/prompter/internal/domain"
	"github.com/jwulff/prompter/internal/teleprompter"
)

// Screen is a node of the navigation graph.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenSignUp
	ScreenForgotPassword
	ScreenWelcome
	ScreenScriptInput
	ScreenRecording
	ScreenReview
	ScreenRecordings
	ScreenScripts
	ScreenProfile
)

// Gateway is the persistence the screens need.
type Gateway interface {
	teleprompter.ArtifactSink
	ListRecordings(ctx context.Context) ([]domain.Recording, error)
	DeleteRecording(ctx context.Context, id string) error
	RenameRecording(ctx context.Context, id, title string) error
	ListScripts(ctx context.Context) ([]domain.Script, error)
	SaveScript(ctx context.Context, sc domain.Script) error
	DeleteScript(ctx context.Context, id string) error
}

// Authenticator signs users in and out.
type Authenticator interface {
	Current(ctx context.Context) (*domain.User, error)
	Login(ctx context.Context, req auth.LoginRequest) (domain.User, error)
	SignUp(ctx context.Context, req auth.SignUpRequest) (domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	Logout(ctx context.Context) error
}

// Deps are the collaborators and defaults the model is built with.
type Deps struct {
	Gateway     Gateway
	Auth        Authenticator
	Log         *zap.Logger
	MediaDir    string
	ScrollSpeed float64
	FontSize    int
}

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmLeaveRecording
	confirmReRecord
	confirmDiscard
	confirmDeleteRecording
	confirmDeleteScript
	confirmLogout
)

func (c confirmKind) prompt() string {
	switch c {
	case confirmLeaveRecording:
		return "Stop recording and leave?"
	case confirmReRecord:
		return "Record again? This discards the current take."
	case confirmDiscard:
		return "Discard this recording?"
	case confirmDeleteRecording:
		return "Delete this recording?"
	case confirmDeleteScript:
		return "Delete this script?"
	case confirmLogout:
		return "Are you sure you want to logout?"
	}
	return ""
}

const operationFailed = "Operation failed"

// Model is the root bubbletea model.
type Model struct {
	ctx  context.Context
	deps Deps
	log  *zap.Logger

	screen  Screen
	loading bool
	user    *domain.User

	width  int
	height int

	// Auth forms
	login  form
	signUp form
	forgot form

	// Script input
	mode   domain.Mode
	script textarea.Model

	// Recording
	session     teleprompter.Session
	sessionLive bool
	paragraphs  []string
	speed       float64
	fontSize    int

	// Library
	recordings     []domain.Recording
	recordingIndex int
	renaming       bool
	renameInput    textinput.Model

	scripts       []domain.Script
	scriptIndex   int
	editingScript bool
	editorFocus   int
	scriptTitle   textinput.Model
	scriptBody    textarea.Model

	confirm confirmKind

	// Errors
	errorMessage   string
	errorTransient bool
	notice         string
}

// New creates a Model waiting for the stored session to load.
func New(ctx context.Context, deps Deps) Model {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	script := textarea.New()
	script.Placeholder = "Enter or paste your script here..."
	script.ShowLineNumbers = false
	script.CharLimit = 0
	script.MaxHeight = 0
	script.Focus()

	rename := textinput.New()
	rename.Prompt = "Title: "
	rename.CharLimit = 120

	title := textinput.New()
	title.Placeholder = "Script title"
	title.Prompt = ""
	title.CharLimit = 120

	body := textarea.New()
	body.Placeholder = "Script content"
	body.ShowLineNumbers = false
	body.CharLimit = 0
	body.MaxHeight = 0

	return Model{
		ctx:     ctx,
		deps:    deps,
		log:     log,
		screen:  ScreenLogin,
		loading: true,
		login: newForm("",
			field{label: "Email"},
			field{label: "Password", password: true},
		),
		signUp: newForm("I agree to the Terms & Conditions",
			field{label: "Full name"},
			field{label: "Email"},
			field{label: "Password", password: true},
			field{label: "Confirm password", password: true},
		),
		forgot:      newForm("", field{label: "Email"}),
		mode:        domain.ModeVideo,
		script:      script,
		speed:       deps.ScrollSpeed,
		fontSize:    deps.FontSize,
		renameInput: rename,
		scriptTitle: title,
		scriptBody:  body,
	}
}

// Init loads the stored session.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadUserCmd(m.ctx, m.deps.Auth), textinput.Blink)
}

// Screen returns the screen currently shown.
func (m Model) Screen() Screen {
	return m.screen
}

func loadUserCmd(ctx context.Context, a Authenticator) tea.Cmd {
	return func() tea.Msg {
		u, err := a.Current(ctx)
		return userLoadedMsg{user: u, err: err}
	}
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// tickCmd arms one teleprompter ticker.
func tickCmd(t teleprompter.Tick) tea.Cmd {
	return tea.Tick(t.Kind.Interval(), func(time.Time) tea.Msg {
		return tickMsg{tick: t}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		if msg.String() == KeyCtrlC {
			m.endSession("quit")
			return m, tea.Quit
		}
		if m.confirm != confirmNone {
			return m.handleConfirm(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeEditors()
		return m, nil

	case tickMsg:
		if !m.sessionLive {
			return m, nil
		}
		if m.session.Advance(msg.tick) {
			return m, tickCmd(msg.tick)
		}
		return m, nil

	case userLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.log.Error("load session", zap.Error(msg.err))
		}
		if msg.user != nil {
			m.user = msg.user
			m.screen = ScreenWelcome
		}
		return m, nil

	case authDoneMsg:
		return m.handleAuthDone(msg)

	case resetSentMsg:
		if msg.err != nil {
			return m, m.showError(m.authMessage(msg.err))
		}
		m.forgot.reset()
		m.screen = ScreenLogin
		return m, m.showNotice("Password reset link sent to " + msg.email)

	case loggedOutMsg:
		if msg.err != nil {
			m.log.Error("logout", zap.Error(msg.err))
			return m, m.showError(operationFailed)
		}
		m.user = nil
		m.recordings = nil
		m.scripts = nil
		m.login.reset()
		m.screen = ScreenLogin
		return m, nil

	case recordingsLoadedMsg:
		return m.handleRecordingsLoaded(msg)

	case scriptsLoadedMsg:
		return m.handleScriptsLoaded(msg)

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		m.notice = ""
		return m, nil
	}

	// Cursor blink and similar component messages.
	return m, m.updateFocused(msg)
}

// updateFocused forwards a message to whichever input owns the keyboard on this screen.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.screen {
	case ScreenLogin:
		cmd = m.login.update(msg)
	case ScreenSignUp:
		cmd = m.signUp.update(msg)
	case ScreenForgotPassword:
		cmd = m.forgot.update(msg)
	case ScreenScriptInput:
		m.script, cmd = m.script.Update(msg)
	case ScreenRecordings:
		if m.renaming {
			m.renameInput, cmd = m.renameInput.Update(msg)
		}
	case ScreenScripts:
		if m.editingScript {
			if m.editorFocus == 0 {
				m.scriptTitle, cmd = m.scriptTitle.Update(msg)
			} else {
				m.scriptBody, cmd = m.scriptBody.Update(msg)
			}
		}
	}
	return cmd
}

// handleKey dispatches key presses to the current screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenLogin, ScreenSignUp, ScreenForgotPassword:
		return m.handleAuthKey(msg)
	case ScreenWelcome:
		return m.handleWelcomeKey(msg)
	case ScreenScriptInput:
		return m.handleScriptInputKey(msg)
	case ScreenRecording:
		return m.handleRecordingKey(msg)
	case ScreenReview:
		return m.handleReviewKey(msg)
	case ScreenRecordings:
		return m.handleRecordingsKey(msg)
	case ScreenScripts:
		return m.handleScriptsKey(msg)
	case ScreenProfile:
		return m.handleProfileKey(msg)
	}
	return m, nil
}

func (m Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyYes, KeyYesUpper:
		kind := m.confirm
		m.confirm = confirmNone
		return m.confirmed(kind)
	case KeyNo, KeyNoUpper, KeyEsc:
		m.confirm = confirmNone
	}
	return m, nil
}

func (m Model) confirmed(kind confirmKind) (tea.Model, tea.Cmd) {
	switch kind {
	case confirmLeaveRecording:
		m.endSession("left recording")
		m.screen = ScreenScriptInput
		return m, m.script.Focus()
	case confirmReRecord:
		return m.reRecord()
	case confirmDiscard:
		return m.discard()
	case confirmDeleteRecording:
		return m.deleteSelectedRecording()
	case confirmDeleteScript:
		return m.deleteSelectedScript()
	case confirmLogout:
		return m, logoutCmd(m.ctx, m.deps.Auth)
	}
	return m, nil
}

// showError displays msg until it times out.
func (m *Model) showError(msg string) tea.Cmd {
	m.errorMessage = msg
	m.errorTransient = true
	m.notice = ""
	return clearTransientErrorCmd()
}

func (m *Model) showNotice(msg string) tea.Cmd {
	m.notice = msg
	m.errorMessage = ""
	m.errorTransient = false
	return clearTransientErrorCmd()
}

// failed logs a gateway error and shows the generic failure text.
func (m *Model) failed(op string, err error) tea.Cmd {
	m.log.Error(op, zap.Error(err))
	return m.showError(operationFailed)
}

// endSession tears down the live recording session, if any.
func (m *Model) endSession(reason string) {
	if !m.sessionLive {
		return
	}
	m.session.Teardown()
	m.sessionLive = false
	m.log.Debug("session ended", zap.String("reason", reason))
}

func (m *Model) resizeEditors() {
	w := max(20, m.width-4)
	h := max(3, m.height-9)
	m.script.SetWidth(w)
	m.script.SetHeight(h)
	m.scriptBody.SetWidth(w)
	m.scriptBody.SetHeight(max(3, h-2))
	m.renameInput.Width = max(10, w-8)
	m.scriptTitle.Width = max(10, w-18)
}

// Helpers

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// truncateToWidth cuts s to at most width terminal cells, ending in an ellipsis when cut.
func truncateToWidth(s string, width int) string {
	if width < 1 || lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// wrapText breaks text into lines of at most width cells, splitting on spaces. A single word
// longer than width gets a line of its own.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case lipgloss.Width(current)+1+lipgloss.Width(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}
