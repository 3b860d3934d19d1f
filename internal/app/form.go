package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwulff/prompter/internal/ui"
)

type field struct {
	label    string
	password bool
}

// form is a column of text inputs with an optional trailing checkbox. Focus cycles over the
// inputs and then the checkbox.
type form struct {
	labels     []string
	inputs     []textinput.Model
	checkLabel string
	checked    bool
	focus      int
}

func newForm(checkLabel string, fields ...field) form {
	f := form{checkLabel: checkLabel}
	for _, fd := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = fd.label
		in.CharLimit = 256
		in.Width = 40
		if fd.password {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.labels = append(f.labels, fd.label)
		f.inputs = append(f.inputs, in)
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) stops() int {
	if f.checkLabel != "" {
		return len(f.inputs) + 1
	}
	return len(f.inputs)
}

func (f *form) onCheckbox() bool {
	return f.focus == len(f.inputs)
}

// move shifts focus by delta, wrapping around.
func (f *form) move(delta int) tea.Cmd {
	n := f.stops()
	f.focus = ((f.focus+delta)%n + n) % n
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.focus {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

// update routes a message to the focused input. Space on the checkbox toggles it.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if f.onCheckbox() {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == KeySpace {
			f.checked = !f.checked
		}
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.checked = false
	f.focus = 0
	f.move(0)
}

func (f *form) view() string {
	var lines []string
	for i, in := range f.inputs {
		label := ui.LabelStyle.Render(padRight(f.labels[i], 18))
		if i == f.focus {
			label = ui.SelectedStyle.Render(padRight(f.labels[i], 18))
		}
		lines = append(lines, "  "+label+in.View())
	}
	if f.checkLabel != "" {
		box := "[ ] "
		if f.checked {
			box = "[x] "
		}
		line := box + f.checkLabel
		if f.onCheckbox() {
			line = ui.SelectedStyle.Render(line)
		}
		lines = append(lines, "", "  "+line)
	}
	return strings.Join(lines, "\n")
}
