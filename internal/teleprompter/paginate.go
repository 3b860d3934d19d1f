package teleprompter

import (
	"fmt"
	"strings"
)

// Paginate splits a script into its non-blank lines, trimmed, in order.
func Paginate(script string) []string {
	script = strings.ReplaceAll(script, "\r\n", "\n")
	script = strings.ReplaceAll(script, "\r", "\n")

	var paragraphs []string
	for _, line := range strings.Split(script, "\n") {
		if p := strings.TrimSpace(line); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// LineHeight is the pixel height of one rendered row at the given font size.
func LineHeight(fontSize int) float64 {
	return float64(fontSize) * 1.4
}

// RowOffset is the number of rows that have scrolled past the reading line.
func RowOffset(scrollPx float64, fontSize int) int {
	if scrollPx <= 0 || fontSize <= 0 {
		return 0
	}
	return int(scrollPx / LineHeight(fontSize))
}

// Columns is the wrap width for a viewport of the given width. Larger fonts get fewer columns,
// scaled against the smallest font which uses the full width.
func Columns(width, fontSize int) int {
	if fontSize < MinFontSize {
		fontSize = MinFontSize
	}
	return max(20, width*MinFontSize/fontSize)
}

// FormatClock renders seconds as MM:SS for the running timer.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatDuration renders seconds as M:SS for saved recordings.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
