package app

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jwulff/prompter/internal/domain"
)

func loadRecordingsCmd(ctx context.Context, gw Gateway) tea.Cmd {
	return mutateRecordingsCmd(ctx, gw, "", nil)
}

// mutateRecordingsCmd runs fn, when given, and then reloads the library.
func mutateRecordingsCmd(ctx context.Context, gw Gateway, op string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if fn != nil {
			if err := fn(ctx); err != nil {
				return recordingsLoadedMsg{op: op, err: err}
			}
		}
		recs, err := gw.ListRecordings(ctx)
		return recordingsLoadedMsg{op: op, recordings: recs, err: err}
	}
}

func loadScriptsCmd(ctx context.Context, gw Gateway) tea.Cmd {
	return mutateScriptsCmd(ctx, gw, "", nil)
}

func mutateScriptsCmd(ctx context.Context, gw Gateway, op string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if fn != nil {
			if err := fn(ctx); err != nil {
				return scriptsLoadedMsg{op: op, err: err}
			}
		}
		scripts, err := gw.ListScripts(ctx)
		return scriptsLoadedMsg{op: op, scripts: scripts, err: err}
	}
}

// Recordings

func (m Model) openRecordings() (tea.Model, tea.Cmd) {
	m.screen = ScreenRecordings
	m.renaming = false
	return m, loadRecordingsCmd(m.ctx, m.deps.Gateway)
}

func (m Model) handleRecordingsLoaded(msg recordingsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		op := msg.op
		if op == "" {
			op = "load recordings"
		}
		return m, m.failed(op, msg.err)
	}
	m.recordings = msg.recordings
	m.recordingIndex = clampIndex(m.recordingIndex, len(m.recordings))
	return m, nil
}

func (m Model) handleRecordingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.renaming {
		return m.handleRenameKey(msg)
	}

	switch msg.String() {
	case KeyEsc, KeyQuit:
		m.screen = ScreenWelcome
	case KeyDown, KeyJ:
		m.recordingIndex = clampIndex(m.recordingIndex+1, len(m.recordings))
	case KeyUp, KeyK:
		m.recordingIndex = clampIndex(m.recordingIndex-1, len(m.recordings))
	case KeyRename:
		if rec, ok := m.selectedRecording(); ok {
			m.renaming = true
			m.renameInput.SetValue(rec.Title)
			m.renameInput.CursorEnd()
			return m, m.renameInput.Focus()
		}
	case KeyDelete:
		if _, ok := m.selectedRecording(); ok {
			m.confirm = confirmDeleteRecording
		}
	}
	return m, nil
}

func (m Model) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.renaming = false
		m.renameInput.Blur()
		return m, nil
	case KeyEnter:
		title := strings.TrimSpace(m.renameInput.Value())
		if title == "" {
			return m, m.showError("Title cannot be empty")
		}
		rec, ok := m.selectedRecording()
		m.renaming = false
		m.renameInput.Blur()
		if !ok {
			return m, nil
		}
		gw := m.deps.Gateway
		return m, mutateRecordingsCmd(m.ctx, gw, "rename recording", func(ctx context.Context) error {
			return gw.RenameRecording(ctx, rec.ID, title)
		})
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

func (m Model) deleteSelectedRecording() (tea.Model, tea.Cmd) {
	rec, ok := m.selectedRecording()
	if !ok {
		return m, nil
	}
	gw := m.deps.Gateway
	return m, mutateRecordingsCmd(m.ctx, gw, "delete recording", func(ctx context.Context) error {
		return gw.DeleteRecording(ctx, rec.ID)
	})
}

func (m Model) selectedRecording() (domain.Recording, bool) {
	if m.recordingIndex < 0 || m.recordingIndex >= len(m.recordings) {
		return domain.Recording{}, false
	}
	return m.recordings[m.recordingIndex], true
}

// Scripts

func (m Model) openScripts() (tea.Model, tea.Cmd) {
	m.screen = ScreenScripts
	m.editingScript = false
	return m, loadScriptsCmd(m.ctx, m.deps.Gateway)
}

func (m Model) handleScriptsLoaded(msg scriptsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		op := msg.op
		if op == "" {
			op = "load scripts"
		}
		return m, m.failed(op, msg.err)
	}
	m.scripts = msg.scripts
	m.scriptIndex = clampIndex(m.scriptIndex, len(m.scripts))
	if msg.op == "save script" {
		m.editingScript = false
		m.scriptTitle.Reset()
		m.scriptBody.Reset()
		m.scriptIndex = 0
	}
	return m, nil
}

func (m Model) handleScriptsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingScript {
		return m.handleEditorKey(msg)
	}

	switch msg.String() {
	case KeyEsc, KeyQuit:
		m.screen = ScreenWelcome
	case KeyDown, KeyJ:
		m.scriptIndex = clampIndex(m.scriptIndex+1, len(m.scripts))
	case KeyUp, KeyK:
		m.scriptIndex = clampIndex(m.scriptIndex-1, len(m.scripts))
	case KeyNew:
		m.editingScript = true
		m.editorFocus = 0
		m.scriptBody.Blur()
		return m, m.scriptTitle.Focus()
	case KeyDelete:
		if _, ok := m.selectedScript(); ok {
			m.confirm = confirmDeleteScript
		}
	case KeyEnter:
		if sc, ok := m.selectedScript(); ok {
			return m.openScriptInput(m.mode, sc.Content)
		}
	}
	return m, nil
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.editingScript = false
		m.scriptTitle.Blur()
		m.scriptBody.Blur()
		return m, nil
	case KeyTab:
		m.editorFocus = 1 - m.editorFocus
		if m.editorFocus == 0 {
			m.scriptBody.Blur()
			return m, m.scriptTitle.Focus()
		}
		m.scriptTitle.Blur()
		return m, m.scriptBody.Focus()
	case KeySubmit:
		return m.saveScript()
	}

	var cmd tea.Cmd
	if m.editorFocus == 0 {
		m.scriptTitle, cmd = m.scriptTitle.Update(msg)
	} else {
		m.scriptBody, cmd = m.scriptBody.Update(msg)
	}
	return m, cmd
}

func (m Model) saveScript() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.scriptTitle.Value())
	content := strings.TrimSpace(m.scriptBody.Value())
	if title == "" || content == "" {
		return m, m.showError("Please fill in all fields")
	}
	sc := domain.Script{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
	}
	gw := m.deps.Gateway
	return m, mutateScriptsCmd(m.ctx, gw, "save script", func(ctx context.Context) error {
		return gw.SaveScript(ctx, sc)
	})
}

func (m Model) deleteSelectedScript() (tea.Model, tea.Cmd) {
	sc, ok := m.selectedScript()
	if !ok {
		return m, nil
	}
	gw := m.deps.Gateway
	return m, mutateScriptsCmd(m.ctx, gw, "delete script", func(ctx context.Context) error {
		return gw.DeleteScript(ctx, sc.ID)
	})
}

func (m Model) selectedScript() (domain.Script, bool) {
	if m.scriptIndex < 0 || m.scriptIndex >= len(m.scripts) {
		return domain.Script{}, false
	}
	return m.scripts[m.scriptIndex], true
}

// Profile

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc, KeyQuit:
		m.screen = ScreenWelcome
	case KeyLogout:
		m.confirm = confirmLogout
	}
	return m, nil
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
