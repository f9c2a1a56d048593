package tui

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// form is a vertical stack of text inputs with one focused at a time.
type form struct {
	inputs []textinput.Model
	focus  int
}

func newForm(inputs ...textinput.Model) form {
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return form{inputs: inputs}
}

// next moves focus to the following input, wrapping around.
func (f *form) next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// prev moves focus to the previous input, wrapping around.
func (f *form) prev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// update forwards msg to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// value returns the content of input i as typed.
func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

// textField builds a single-line input with a label-style prompt.
func textField(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 256
	return ti
}

// passwordField builds a masked input.
func passwordField(placeholder string) textinput.Model {
	ti := textField(placeholder)
	ti.EchoMode = textinput.EchoPassword
	return ti
}
