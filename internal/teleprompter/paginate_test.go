package teleprompter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"blank lines dropped", "Hello\n\nWorld\n  \n", []string{"Hello", "World"}},
		{"empty", "", nil},
		{"whitespace only", " \n\t\n  ", nil},
		{"trimmed", "  intro  \n\tbody\t", []string{"intro", "body"}},
		{"crlf", "one\r\ntwo\r\n\r\nthree", []string{"one", "two", "three"}},
		{"bare cr", "a\rb", []string{"a", "b"}},
		{"single line", "just this", []string{"just this"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.input)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaginateIsIdempotent(t *testing.T) {
	script := "First line\n\n  Second  \nThird"
	once := Paginate(script)
	joined := ""
	for i, p := range once {
		if i > 0 {
			joined += "\n"
		}
		joined += p
	}
	assert.Equal(t, once, Paginate(joined))
	assert.Equal(t, once, Paginate(script))
}

func TestRowOffset(t *testing.T) {
	assert.Equal(t, 0, RowOffset(0, 20))
	assert.Equal(t, 0, RowOffset(27.9, 20))
	assert.Equal(t, 1, RowOffset(28, 20))
	assert.Equal(t, 10, RowOffset(280, 20))
	assert.Equal(t, 0, RowOffset(-5, 20))
}

func TestColumnsShrinkWithFont(t *testing.T) {
	assert.Equal(t, 80, Columns(80, MinFontSize))
	assert.Equal(t, 32, Columns(80, MaxFontSize))
	assert.Equal(t, 20, Columns(30, MaxFontSize))
	assert.Greater(t, Columns(100, 18), Columns(100, 30))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "00:42", FormatClock(42))
	assert.Equal(t, "01:05", FormatClock(65))
	assert.Equal(t, "61:01", FormatClock(3661))
	assert.Equal(t, "00:00", FormatClock(-3))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", FormatDuration(0))
	assert.Equal(t, "0:30", FormatDuration(30))
	assert.Equal(t, "2:05", FormatDuration(125))
}
