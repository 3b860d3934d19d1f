package app

import (
	"github.com/jwulff/prompter/internal/domain"
	"github.com/jwulff/prompter/internal/teleprompter"
)

// tickMsg is one firing of a teleprompter ticker.
type tickMsg struct {
	tick teleprompter.Tick
}

// ClearTransientErrorMsg clears a transient error or notice after a timeout.
type ClearTransientErrorMsg struct{}

// userLoadedMsg carries the session restored at startup.
type userLoadedMsg struct {
	user *domain.User
	err  error
}

// authDoneMsg is the result of a login or sign-up attempt.
type authDoneMsg struct {
	user domain.User
	err  error
}

// resetSentMsg is the result of a forgot-password request.
type resetSentMsg struct {
	email string
	err   error
}

// loggedOutMsg is the result of clearing the session.
type loggedOutMsg struct {
	err error
}

// recordingsLoadedMsg carries the recording library, optionally after a mutation named by op.
type recordingsLoadedMsg struct {
	op         string
	recordings []domain.Recording
	err        error
}

// scriptsLoadedMsg carries the script library, optionally after a mutation named by op.
type scriptsLoadedMsg struct {
	op      string
	scripts []domain.Script
	err     error
}
