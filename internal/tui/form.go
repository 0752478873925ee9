package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonathan/cv-builder/internal/sections"
)

// form holds the inputs for one entry of a section. id is empty for the profile.
type form struct {
	section sections.Section
	id      string
	fields  []fieldSpec
	inputs  []textinput.Model
	focus   int
}

func newForm(section sections.Section, id string, value func(field string) string, width int) *form {
	fields := formFields[section]
	f := &form{section: section, id: id, fields: fields, inputs: make([]textinput.Model, len(fields))}
	for i, spec := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = spec.Placeholder
		in.CharLimit = 2000
		in.Width = max(width-labelStyle.GetWidth()-4, 20)
		in.KeyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("ctrl+l"))
		v := value(spec.Key)
		if spec.Key == "current" && v == "false" {
			v = ""
		}
		in.SetValue(v)
		f.inputs[i] = in
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f *form) focused() fieldSpec {
	return f.fields[f.focus]
}

func (f *form) value() string {
	return strings.TrimSpace(f.inputs[f.focus].Value())
}

// move shifts focus by delta, wrapping around.
func (f *form) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *form) setSuggestions(list []string) {
	f.inputs[f.focus].ShowSuggestions = len(list) > 0
	f.inputs[f.focus].SetSuggestions(list)
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) setWidth(width int) {
	for i := range f.inputs {
		f.inputs[i].Width = max(width-labelStyle.GetWidth()-4, 20)
	}
}

// view renders the inputs with the error message under each failing field.
func (f *form) view(errorFor func(field string) string) string {
	var b strings.Builder
	for i, spec := range f.fields {
		label := labelStyle.Render(spec.Label)
		if i == f.focus {
			label = focusedLabel.Render(spec.Label)
		}
		b.WriteString(label + " " + f.inputs[i].View() + "\n")
		if msg := errorFor(spec.Key); msg != "" {
			b.WriteString(strings.Repeat(" ", labelStyle.GetWidth()+1) + errorStyle.Render(msg) + "\n")
		}
	}
	return b.String()
}
