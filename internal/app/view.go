package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jwulff/prompter/internal/domain"
	"github.com/jwulff/prompter/internal/teleprompter"
	"github.com/jwulff/prompter/internal/ui"
)

const appVersion = "1.0.0"

type hint struct {
	key  string
	desc string
}

// View renders the current screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.loading {
		return ui.DimStyle.Render("Loading...")
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderBody())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.confirm != confirmNone {
		sections = append(sections, ui.ConfirmStyle.Render(m.confirm.prompt()+" (y/n)"))
	}
	if m.errorMessage != "" {
		sections = append(sections, ui.ErrorStyle.Render("Error: ")+ui.ErrorTextStyle.Render(m.errorMessage))
	}
	if m.notice != "" {
		sections = append(sections, ui.NoticeStyle.Render(m.notice))
	}

	sections = append(sections, renderFooter(m.footerHints()))
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	switch m.screen {
	case ScreenLogin:
		return ui.TitleStyle.Render("TELEPROMPTME") + ui.SubtitleStyle.Render("  Sign in to continue")
	case ScreenSignUp:
		return ui.TitleStyle.Render("CREATE ACCOUNT")
	case ScreenForgotPassword:
		return ui.TitleStyle.Render("RESET PASSWORD")
	case ScreenWelcome:
		return ui.TitleStyle.Render("TELEPROMPTME") + ui.SubtitleStyle.Render("  Choose how to start")
	case ScreenScriptInput:
		count := fmt.Sprintf("  %d characters", utf8.RuneCountInString(m.script.Value()))
		return ui.TitleStyle.Render("SCRIPT") + "  " + ui.ModeBadgeStyle.Render(modeLabel(m.mode)) + ui.DimStyle.Render(count)
	case ScreenRecording:
		return m.renderRecordingHeader()
	case ScreenReview:
		return ui.TitleStyle.Render("REVIEW RECORDING")
	case ScreenRecordings:
		return ui.TitleStyle.Render(fmt.Sprintf("MY RECORDINGS (%d)", len(m.recordings)))
	case ScreenScripts:
		if m.editingScript {
			return ui.TitleStyle.Render("NEW SCRIPT")
		}
		return ui.TitleStyle.Render(fmt.Sprintf("MY SCRIPTS (%d)", len(m.scripts)))
	case ScreenProfile:
		return ui.TitleStyle.Render("PROFILE")
	}
	return ""
}

func (m Model) renderBody() string {
	switch m.screen {
	case ScreenLogin:
		return m.login.view() + "\n\n" + ui.DimStyle.Render("  "+demoHint)
	case ScreenSignUp:
		return m.signUp.view()
	case ScreenForgotPassword:
		return ui.DimStyle.Render("  Enter your email address and we'll send you a reset link.") +
			"\n\n" + m.forgot.view()
	case ScreenWelcome:
		return m.renderWelcome()
	case ScreenScriptInput:
		return m.script.View()
	case ScreenRecording:
		return m.renderPrompter()
	case ScreenReview:
		return m.renderReview()
	case ScreenRecordings:
		return m.renderRecordings()
	case ScreenScripts:
		return m.renderScripts()
	case ScreenProfile:
		return m.renderProfile()
	}
	return ""
}

func (m Model) renderWelcome() string {
	var lines []string
	if m.user != nil {
		lines = append(lines, "  Hello, "+m.user.Name, "")
	}
	lines = append(lines,
		"  "+ui.FooterKeyStyle.Render("v")+"  Record video & audio",
		"  "+ui.FooterKeyStyle.Render("a")+"  Record audio only",
		"",
		"  "+ui.FooterKeyStyle.Render("r")+"  My recordings",
		"  "+ui.FooterKeyStyle.Render("s")+"  My scripts",
		"  "+ui.FooterKeyStyle.Render("p")+"  Profile",
	)
	return strings.Join(lines, "\n")
}

func (m Model) renderRecordingHeader() string {
	var dot string
	switch m.session.Status() {
	case teleprompter.StatusRecording:
		dot = ui.RecordingDotStyle.Render("● REC")
	default:
		dot = ui.IdleDotStyle.Render("○ READY")
	}
	clock := ui.ClockStyle.Render(teleprompter.FormatClock(m.session.ElapsedSeconds()))
	settings := ui.DimStyle.Render(fmt.Sprintf("  speed %.1fx  font %d", m.session.ScrollSpeed(), m.session.FontSize()))
	return dot + "  " + clock + "  " + ui.ModeBadgeStyle.Render(modeLabel(m.session.Mode())) + settings
}

func (m Model) prompterHeight() int {
	if m.height == 0 {
		return 12
	}
	// header, two dividers, prompt or error line, footer
	return max(3, m.height-5)
}

// prompterLines lays the paragraphs out at the current font size, one blank row between them.
func (m Model) prompterLines() []string {
	cols := teleprompter.Columns(max(1, m.width-4), m.session.FontSize())
	var lines []string
	for i, p := range m.paragraphs {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, wrapText(p, cols)...)
	}
	return lines
}

// renderPrompter draws the visible window of the script. The reading line sits a third of the
// way down; at scroll zero the first row is on it.
func (m Model) renderPrompter() string {
	height := m.prompterHeight()
	readRow := height / 3
	lines := m.prompterLines()
	offset := teleprompter.RowOffset(m.session.ScrollPosition(), m.session.FontSize())

	rows := make([]string, 0, height)
	for row := 0; row < height; row++ {
		idx := offset + row - readRow
		text := ""
		if idx >= 0 && idx < len(lines) {
			text = lines[idx]
		}
		if row == readRow {
			rows = append(rows, ui.ReadingMarkerStyle.Render("▶ ")+ui.ReadingLineStyle.Render(text))
			continue
		}
		rows = append(rows, "  "+ui.PrompterStyle.Render(text))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderReview() string {
	lines := []string{
		"  " + ui.LabelStyle.Render("Mode      ") + modeLabel(m.session.Mode()),
		"  " + ui.LabelStyle.Render("Duration  ") + teleprompter.FormatDuration(m.session.ElapsedSeconds()),
		"",
		ui.DimStyle.Render("  Save the take, record it again, or discard it."),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRecordings() string {
	if len(m.recordings) == 0 {
		return ui.DimStyle.Render("  No recordings yet") + "\n" +
			ui.DimStyle.Render("  Start recording to see your videos and audio files here")
	}

	var lines []string
	for i, rec := range m.recordings {
		meta := fmt.Sprintf("%s · %s · %s",
			rec.CreatedAt.Format("Jan 2, 2006"),
			teleprompter.FormatDuration(rec.DurationSeconds),
			rec.Mode)
		title := truncateToWidth(rec.Title, max(10, m.width-4))
		if i == m.recordingIndex {
			if m.renaming {
				lines = append(lines, "> "+m.renameInput.View())
			} else {
				lines = append(lines, ui.SelectedStyle.Render("> "+title))
			}
		} else {
			lines = append(lines, "  "+title)
		}
		lines = append(lines, "  "+ui.DimStyle.Render(meta))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderScripts() string {
	if m.editingScript {
		label := ui.LabelStyle.Render("Title  ")
		if m.editorFocus == 0 {
			label = ui.SelectedStyle.Render("Title  ")
		}
		return "  " + label + m.scriptTitle.View() + "\n\n" + m.scriptBody.View()
	}
	if len(m.scripts) == 0 {
		return ui.DimStyle.Render("  No scripts yet") + "\n" +
			ui.DimStyle.Render("  Create your first script to get started")
	}

	previewW := max(10, m.width-4)
	var lines []string
	for i, sc := range m.scripts {
		if i == m.scriptIndex {
			lines = append(lines, ui.SelectedStyle.Render("> "+truncateToWidth(sc.Title, previewW)))
		} else {
			lines = append(lines, "  "+truncateToWidth(sc.Title, previewW))
		}
		preview := strings.Join(teleprompter.Paginate(sc.Content), " ")
		lines = append(lines, "  "+ui.DimStyle.Render(truncateToWidth(preview, previewW)))
		lines = append(lines, "  "+ui.DimStyle.Render(sc.CreatedAt.Format("Jan 2, 2006")))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderProfile() string {
	var lines []string
	if m.user != nil {
		lines = append(lines, "  "+ui.ClockStyle.Render(m.user.Name), "  "+ui.DimStyle.Render(m.user.Email), "")
	}
	lines = append(lines,
		"  "+ui.LabelStyle.Render("Teleprompter speed  ")+fmt.Sprintf("%.1fx", m.speed),
		"  "+ui.LabelStyle.Render("Font size           ")+fmt.Sprintf("%d", m.fontSize),
		"",
		ui.DimStyle.Render("  Version "+appVersion),
	)
	return strings.Join(lines, "\n")
}

func (m Model) footerHints() []hint {
	switch m.screen {
	case ScreenLogin:
		return []hint{{"Enter", "Sign in"}, {"Tab", "Next field"}, {"^N", "Sign up"}, {"^F", "Forgot password"}, {"^C", "Quit"}}
	case ScreenSignUp:
		return []hint{{"Enter", "Create account"}, {"Tab", "Next field"}, {"Space", "Toggle terms"}, {"Esc", "Back"}}
	case ScreenForgotPassword:
		return []hint{{"Enter", "Send reset link"}, {"Esc", "Back"}}
	case ScreenWelcome:
		return []hint{{"q", "Quit"}}
	case ScreenScriptInput:
		return []hint{{"^S", "Start teleprompter"}, {"Tab", "Video/Audio"}, {"Esc", "Back"}}
	case ScreenRecording:
		action := "Record"
		if m.session.Status() == teleprompter.StatusRecording {
			action = "Stop"
		}
		return []hint{{"Space", action}, {"+/-", "Speed"}, {"[/]", "Font"}, {"Esc", "Back"}}
	case ScreenReview:
		return []hint{{"s", "Save"}, {"r", "Re-record"}, {"x", "Discard"}}
	case ScreenRecordings:
		if m.renaming {
			return []hint{{"Enter", "Rename"}, {"Esc", "Cancel"}}
		}
		return []hint{{"j/k", "Nav"}, {"e", "Rename"}, {"d", "Delete"}, {"Esc", "Back"}}
	case ScreenScripts:
		if m.editingScript {
			return []hint{{"^S", "Create"}, {"Tab", "Switch field"}, {"Esc", "Cancel"}}
		}
		return []hint{{"j/k", "Nav"}, {"Enter", "Use"}, {"n", "New"}, {"d", "Delete"}, {"Esc", "Back"}}
	case ScreenProfile:
		return []hint{{"l", "Logout"}, {"Esc", "Back"}}
	}
	return nil
}

func renderFooter(hints []hint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, ui.FooterKeyStyle.Render(h.key)+ui.FooterDescStyle.Render(" "+h.desc))
	}
	return strings.Join(parts, "  ")
}

func modeLabel(mode domain.Mode) string {
	if mode == domain.ModeAudio {
		return "AUDIO"
	}
	return "VIDEO"
}
