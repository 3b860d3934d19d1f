package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jwulff/prompter/internal/auth"
)

func loginCmd(ctx context.Context, a Authenticator, req auth.LoginRequest) tea.Cmd {
	return func() tea.Msg {
		u, err := a.Login(ctx, req)
		return authDoneMsg{user: u, err: err}
	}
}

func signUpCmd(ctx context.Context, a Authenticator, req auth.SignUpRequest) tea.Cmd {
	return func() tea.Msg {
		u, err := a.SignUp(ctx, req)
		return authDoneMsg{user: u, err: err}
	}
}

func forgotCmd(ctx context.Context, a Authenticator, email string) tea.Cmd {
	return func() tea.Msg {
		return resetSentMsg{email: email, err: a.ForgotPassword(ctx, email)}
	}
}

func logoutCmd(ctx context.Context, a Authenticator) tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: a.Logout(ctx)}
	}
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.activeForm()

	switch msg.String() {
	case KeyTab, KeyDown:
		return m, f.move(1)
	case KeyShiftTab, KeyUp:
		return m, f.move(-1)
	case KeyEnter, KeySubmit:
		return m.submitAuth()
	case KeyEsc:
		if m.screen != ScreenLogin {
			m.errorMessage = ""
			m.screen = ScreenLogin
		}
		return m, nil
	case KeyGoSignUp:
		if m.screen == ScreenLogin {
			m.errorMessage = ""
			m.screen = ScreenSignUp
		}
		return m, nil
	case KeyGoForgot:
		if m.screen == ScreenLogin {
			m.errorMessage = ""
			m.screen = ScreenForgotPassword
		}
		return m, nil
	}
	return m, f.update(msg)
}

func (m *Model) activeForm() *form {
	switch m.screen {
	case ScreenSignUp:
		return &m.signUp
	case ScreenForgotPassword:
		return &m.forgot
	default:
		return &m.login
	}
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenSignUp:
		f := &m.signUp
		return m, signUpCmd(m.ctx, m.deps.Auth, auth.SignUpRequest{
			Name:            f.value(0),
			Email:           f.value(1),
			Password:        f.value(2),
			ConfirmPassword: f.value(3),
			AgreeToTerms:    f.checked,
		})
	case ScreenForgotPassword:
		return m, forgotCmd(m.ctx, m.deps.Auth, m.forgot.value(0))
	default:
		return m, loginCmd(m.ctx, m.deps.Auth, auth.LoginRequest{
			Email:    m.login.value(0),
			Password: m.login.value(1),
		})
	}
}

func (m Model) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.showError(m.authMessage(msg.err))
	}
	u := msg.user
	m.user = &u
	m.login.reset()
	m.signUp.reset()
	m.errorMessage = ""
	m.screen = ScreenWelcome
	return m, nil
}

// authMessage maps an auth error to its text, logging the ones that are not the user's doing.
func (m *Model) authMessage(err error) string {
	text := auth.Message(err)
	if text == operationFailed {
		m.log.Error("auth", zap.Error(err))
	}
	return text
}

const demoHint = "Demo: " + auth.DemoEmail + " / " + auth.DemoPassword
