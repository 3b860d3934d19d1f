package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF4444")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorBlue    = lipgloss.Color("#4A90E2")
	ColorGray    = lipgloss.Color("#888888")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

// Base styles reused by the screens.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	RecordingDotStyle = lipgloss.NewStyle().
				Foreground(ColorRed).
				Bold(true)

	IdleDotStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ClockStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	// PrompterStyle is the body text of the teleprompter.
	PrompterStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	// ReadingLineStyle highlights the row under the reading marker.
	ReadingLineStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true)

	ReadingMarkerStyle = lipgloss.NewStyle().
				Foreground(ColorBlue).
				Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	ModeBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	ConfirmStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)
)
