package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jwulff/prompter/internal/domain"
	"github.com/jwulff/prompter/internal/teleprompter"
)

func (m Model) handleWelcomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit:
		return m, tea.Quit
	case KeyRecordVideo:
		return m.openScriptInput(domain.ModeVideo, "")
	case KeyRecordAudio:
		return m.openScriptInput(domain.ModeAudio, "")
	case KeyRecordings:
		return m.openRecordings()
	case KeyScripts:
		return m.openScripts()
	case KeyProfile:
		m.screen = ScreenProfile
		return m, nil
	}
	return m, nil
}

// openScriptInput shows the script editor in the given mode. A non-empty script replaces the
// editor contents.
func (m Model) openScriptInput(mode domain.Mode, script string) (tea.Model, tea.Cmd) {
	m.mode = mode
	if script != "" {
		m.script.SetValue(script)
	}
	m.errorMessage = ""
	m.screen = ScreenScriptInput
	return m, m.script.Focus()
}

func (m Model) handleScriptInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.script.Blur()
		m.screen = ScreenWelcome
		return m, nil
	case KeyTab:
		m.mode = m.mode.Toggle()
		return m, nil
	case KeySubmit:
		return m.enterRecording()
	}
	var cmd tea.Cmd
	m.script, cmd = m.script.Update(msg)
	return m, cmd
}

// enterRecording paginates the script and creates the session for this visit.
func (m Model) enterRecording() (tea.Model, tea.Cmd) {
	paragraphs := teleprompter.Paginate(m.script.Value())
	if len(paragraphs) == 0 {
		return m, m.showError("Please enter your script text")
	}
	m.script.Blur()
	m.endSession("replaced")
	m.paragraphs = paragraphs
	m.session = teleprompter.NewSession(m.mode, m.speed, m.fontSize)
	m.sessionLive = true
	m.errorMessage = ""
	m.screen = ScreenRecording
	m.log.Info("teleprompter opened",
		zap.String("mode", string(m.mode)),
		zap.Int("paragraphs", len(paragraphs)))
	return m, nil
}

func (m Model) handleRecordingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeySpace:
		if m.session.Status() == teleprompter.StatusRecording {
			return m.stopRecording()
		}
		return m.startRecording()

	case KeyFaster, KeyFasterAlt:
		m.session.SetScrollSpeed(m.session.ScrollSpeed() + teleprompter.ScrollSpeedStep)
		m.speed = m.session.ScrollSpeed()
	case KeySlower:
		m.session.SetScrollSpeed(m.session.ScrollSpeed() - teleprompter.ScrollSpeedStep)
		m.speed = m.session.ScrollSpeed()
	case KeyBigger:
		m.session.SetFontSize(m.session.FontSize() + teleprompter.FontSizeStep)
		m.fontSize = m.session.FontSize()
	case KeySmaller:
		m.session.SetFontSize(m.session.FontSize() - teleprompter.FontSizeStep)
		m.fontSize = m.session.FontSize()

	case KeyEsc:
		if m.session.Status() == teleprompter.StatusRecording {
			m.confirm = confirmLeaveRecording
			return m, nil
		}
		m.endSession("left recording")
		m.screen = ScreenScriptInput
		return m, m.script.Focus()
	}
	return m, nil
}

func (m Model) startRecording() (tea.Model, tea.Cmd) {
	ticks, err := m.session.Start()
	if err != nil {
		return m, m.failed("start recording", err)
	}
	cmds := make([]tea.Cmd, 0, len(ticks))
	for _, t := range ticks {
		cmds = append(cmds, tickCmd(t))
	}
	if len(ticks) > 0 {
		m.log.Info("recording started", zap.String("mode", string(m.session.Mode())))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) stopRecording() (tea.Model, tea.Cmd) {
	if err := m.session.Stop(); err != nil {
		return m, m.failed("stop recording", err)
	}
	m.log.Info("recording stopped", zap.Int("elapsed_seconds", m.session.ElapsedSeconds()))
	m.screen = ScreenReview
	return m, nil
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeySave:
		return m.save()
	case KeyReRecord, KeyEsc:
		m.confirm = confirmReRecord
	case KeyDiscard:
		m.confirm = confirmDiscard
	}
	return m, nil
}

// save commits the stopped take. On failure the take stays on the review screen so it can be
// saved again.
func (m Model) save() (tea.Model, tea.Cmd) {
	rec, err := m.session.Commit(m.ctx, m.deps.Gateway, teleprompter.CommitOptions{MediaDir: m.deps.MediaDir})
	if err != nil {
		return m, m.failed("save recording", err)
	}
	m.log.Info("recording saved",
		zap.String("recording_id", rec.ID),
		zap.Int("duration_seconds", rec.DurationSeconds))
	m.endSession("saved")
	m.screen = ScreenWelcome
	return m, m.showNotice("Recording saved successfully!")
}

// reRecord drops the take and returns to the teleprompter, ready to start again.
func (m Model) reRecord() (tea.Model, tea.Cmd) {
	if err := m.session.Discard(); err != nil {
		return m, m.failed("discard recording", err)
	}
	m.screen = ScreenRecording
	return m, nil
}

func (m Model) discard() (tea.Model, tea.Cmd) {
	if err := m.session.Discard(); err != nil {
		return m, m.failed("discard recording", err)
	}
	m.endSession("discarded")
	m.screen = ScreenWelcome
	return m, nil
}
