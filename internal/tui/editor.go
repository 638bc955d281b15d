package tui

import (
	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
	"github.com/Veraticus/the-rolodex-must-flow/internal/normalize"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// editorModel is the inline field editor for a single contact.
type editorModel struct {
	contactID string
	base      *model.Contact
	inputs    []textinput.Model
	focused   int
}

func newEditor(c *model.Contact) editorModel {
	inputs := make([]textinput.Model, len(editableFields))
	for i, field := range editableFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = field
		ti.SetValue(c.Get(field))
		ti.CharLimit = 128
		inputs[i] = ti
	}

	return editorModel{
		contactID: c.ID,
		base:      c,
		inputs:    inputs,
	}
}

func (e editorModel) focusCmd() tea.Cmd {
	return e.inputs[e.focused].Focus()
}

func (e editorModel) update(msg tea.KeyMsg) (editorModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return e.moveFocus(1)
	case "shift+tab", "up":
		return e.moveFocus(-1)
	}

	var cmd tea.Cmd
	e.inputs[e.focused], cmd = e.inputs[e.focused].Update(msg)
	return e, cmd
}

func (e editorModel) moveFocus(delta int) (editorModel, tea.Cmd) {
	e.inputs[e.focused].Blur()
	e.focused = (e.focused + delta + len(e.inputs)) % len(e.inputs)
	return e, e.inputs[e.focused].Focus()
}

// contact builds the edited record: the original fields with the editor
// values applied and re-normalized.
func (e editorModel) contact(norm *normalize.Normalizer) *model.Contact {
	edited := e.base.Clone()
	for i, field := range editableFields {
		edited.Set(field, e.inputs[i].Value())
	}

	edited.Set(model.FieldFirstName, norm.Name(edited.Get(model.FieldFirstName)))
	edited.Set(model.FieldLastName, norm.Name(edited.Get(model.FieldLastName)))
	edited.Set(model.FieldEmail, norm.Email(edited.Get(model.FieldEmail)))
	edited.Set(model.FieldMobile, norm.Phone(edited.Get(model.FieldMobile)))

	return edited
}
