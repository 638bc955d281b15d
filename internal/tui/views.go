package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-rolodex-must-flow/internal/cli"
	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// listWindow is how many records are visible around the cursor.
const listWindow = 12

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(cli.SubtleColor)

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(cli.PrimaryColor).
			Underline(true)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.PrimaryColor)

	flagStyle = lipgloss.NewStyle().
			Foreground(cli.WarningColor)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.tabsView(),
		"",
	}

	if m.mode == modeEdit {
		sections = append(sections, m.editorView())
	} else {
		sections = append(sections, m.listView(), m.detailView())
	}

	sections = append(sections,
		cli.SubtleStyle.Render(m.status),
		m.help.View(m.keymap),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) tabsView() string {
	var tabs []string
	for _, name := range m.session.Categories() {
		label := fmt.Sprintf("%s (%d)", name, len(m.session.CategoryContacts(name)))
		if name == m.session.Category() {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) listView() string {
	contacts := m.session.CategoryContacts(m.session.Category())
	if len(contacts) == 0 {
		if m.session.Done() {
			return cli.FormatSuccess("All anomalies reviewed, nothing left in any category")
		}
		return cli.SubtleStyle.Render("No records in this category")
	}

	start := 0
	if m.session.Index() >= listWindow {
		start = m.session.Index() - listWindow + 1
	}
	end := start + listWindow
	if end > len(contacts) {
		end = len(contacts)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		c := contacts[i]
		line := c.DisplayName()
		if email := c.Email(); email != model.Missing {
			line += cli.SubtleStyle.Render("  " + email)
		}
		if m.session.IsFlagged(c) {
			line += flagStyle.Render("  ⚑")
		}
		if i == m.session.Index() {
			b.WriteString(cursorStyle.Render("❯ "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	if end < len(contacts) {
		fmt.Fprintf(&b, "%s\n", cli.SubtleStyle.Render(fmt.Sprintf("… %d more", len(contacts)-end)))
	}

	return b.String()
}

func (m Model) detailView() string {
	c := m.session.Current()
	if c == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", cli.BoldStyle.Render(c.DisplayName()))

	for _, field := range []string{
		model.FieldFirstName, model.FieldLastName, model.FieldEmail,
		model.FieldMobile, model.FieldCompany,
	} {
		if v := c.Get(field); strings.TrimSpace(v) != "" {
			fmt.Fprintf(&b, "  %-16s %s\n", field+":", v)
		}
	}

	for _, reason := range c.Reasons {
		fmt.Fprintf(&b, "  %s\n", cli.WarningStyle.Render(reason))
	}
	if c.SimilarityReason != "" {
		fmt.Fprintf(&b, "  %s\n", cli.WarningStyle.Render(c.SimilarityReason))
	}
	if m.session.IsFlagged(c) {
		fmt.Fprintf(&b, "  %s\n", flagStyle.Render("⚑ flagged"))
	}

	return cli.RenderBox("Record", strings.TrimRight(b.String(), "\n"))
}

func (m Model) editorView() string {
	var b strings.Builder
	for i, field := range editableFields {
		marker := "  "
		if i == m.editor.focused {
			marker = cursorStyle.Render("❯ ")
		}
		fmt.Fprintf(&b, "%s%-16s %s\n", marker, field+":", m.editor.inputs[i].View())
	}
	b.WriteString("\n" + cli.SubtleStyle.Render("enter save · esc cancel · tab next field"))

	return cli.RenderBox("Edit Contact", strings.TrimRight(b.String(), "\n"))
}
