// Package tui implements the interactive review screen: the anomaly
// categories from a cleaning run presented as tabs, with the review
// transitions (delete, restore, resolve, flag, merge, edit) bound to keys.
package tui

import (
	"errors"
	"fmt"

	"github.com/Veraticus/the-rolodex-must-flow/internal/common"
	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
	"github.com/Veraticus/the-rolodex-must-flow/internal/normalize"
	"github.com/Veraticus/the-rolodex-must-flow/internal/review"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// mode is the current input mode of the review screen.
type mode int

const (
	modeBrowse mode = iota
	modeEdit
)

// editableFields are the columns offered by the inline editor.
var editableFields = []string{
	model.FieldFirstName,
	model.FieldLastName,
	model.FieldEmail,
	model.FieldMobile,
	model.FieldCompany,
}

// Config holds the dependencies of the review screen.
type Config struct {
	Session    *review.Session
	Normalizer *normalize.Normalizer
}

// Model is the bubbletea model for the review screen.
type Model struct {
	session  *review.Session
	norm     *normalize.Normalizer
	keymap   KeyMap
	help     help.Model
	editor   editorModel
	status   string
	mode     mode
	width    int
	height   int
	quitting bool
}

// New creates the review screen model.
func New(cfg Config) Model {
	return Model{
		session: cfg.Session,
		norm:    cfg.Normalizer,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
	}
}

// Session exposes the underlying review session, for reading final state
// after the program exits.
func (m Model) Session() *review.Session {
	return m.session
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeEdit {
			return m.updateEdit(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.Down):
		m.session.Next()

	case key.Matches(msg, m.keymap.Up):
		m.session.Previous()

	case key.Matches(msg, m.keymap.NextCategory):
		m.cycleCategory(1)

	case key.Matches(msg, m.keymap.PrevCategory):
		m.cycleCategory(-1)

	case key.Matches(msg, m.keymap.Delete):
		if c := m.session.Current(); c != nil {
			m.session.Delete(c)
			m.status = fmt.Sprintf("Deleted %s", c.DisplayName())
		}

	case key.Matches(msg, m.keymap.Restore):
		if c := m.session.Current(); c != nil {
			if m.session.Category() != model.CategoryDeleted {
				m.status = "Restore applies to deleted contacts"
				break
			}
			m.session.Restore(c)
			m.status = fmt.Sprintf("Restored %s", c.DisplayName())
		}

	case key.Matches(msg, m.keymap.Resolve):
		if c := m.session.Current(); c != nil {
			m.session.Resolve(c)
			m.status = fmt.Sprintf("Resolved %s", c.DisplayName())
		}

	case key.Matches(msg, m.keymap.Flag):
		if c := m.session.Current(); c != nil {
			flagged := !m.session.IsFlagged(c)
			m.session.SetFlagged(c, flagged)
			if flagged {
				m.status = fmt.Sprintf("Flagged %s", c.DisplayName())
			} else {
				m.status = fmt.Sprintf("Unflagged %s", c.DisplayName())
			}
		}

	case key.Matches(msg, m.keymap.Merge):
		merged, err := m.session.MergeSimilar()
		switch {
		case errors.Is(err, common.ErrNotEnoughSimilar):
			m.status = "Not enough similar contacts to merge"
		case err != nil:
			m.status = err.Error()
		default:
			m.status = fmt.Sprintf("Merged into %s", merged.DisplayName())
		}

	case key.Matches(msg, m.keymap.Edit):
		if c := m.session.Current(); c != nil {
			m.editor = newEditor(c)
			m.mode = modeEdit
			return m, m.editor.focusCmd()
		}
	}

	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.status = "Edit canceled"
		return m, nil

	case "enter":
		edited := m.editor.contact(m.norm)
		if err := m.session.ApplyEdit(m.editor.contactID, edited); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("Saved %s", edited.DisplayName())
		}
		m.mode = modeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.update(msg)
	return m, cmd
}

// cycleCategory moves to the next or previous category, wrapping around.
func (m *Model) cycleCategory(delta int) {
	categories := m.session.Categories()
	current := 0
	for i, name := range categories {
		if name == m.session.Category() {
			current = i
			break
		}
	}
	next := (current + delta + len(categories)) % len(categories)
	_ = m.session.SelectCategory(categories[next])
}
