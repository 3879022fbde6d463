package notelist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#1f6f43", Dark: "#5fd787"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6b6b6b", Dark: "#8a8a8a"}
	colorDanger  = lipgloss.AdaptiveColor{Light: "#b3261e", Dark: "#ff6b6b"}
	colorModalBg = lipgloss.AdaptiveColor{Light: "#f0f0ea", Dark: "#262626"}
	colorBtnBg   = lipgloss.AdaptiveColor{Light: "#dcdcd2", Dark: "#3a3a3a"}

	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted)
	styleError    = lipgloss.NewStyle().Foreground(colorDanger)
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleModal    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Background(colorModalBg).
			Padding(1, 2)
	styleButton       = lipgloss.NewStyle().Padding(0, 1).Background(colorBtnBg)
	styleButtonActive = styleButton.Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(colorAccent)
)

const modalWidth = 48

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("notes"))
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.notes) == 0:
		b.WriteString(styleMuted.Render("loading..."))
	case len(m.notes) == 0:
		b.WriteString(styleMuted.Render("no notes yet, press n to add one"))
	default:
		for i, n := range m.notes {
			line := fmt.Sprintf("  %s", n.Title)
			if i == m.cursor {
				line = styleSelected.Render("> " + n.Title)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	if m.err != "" && m.modal == modalNone {
		b.WriteString(styleError.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	base := b.String()
	if m.modal == modalNone {
		return base
	}
	modal := m.renderModal()
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}
	return base + "\n\n" + modal
}

func (m Model) renderModal() string {
	var title, body string
	switch m.modal {
	case modalAdd:
		title = "new note"
		body = "Title:\n" + m.input.View()
	case modalEdit:
		title = "edit note"
		body = "New title:\n" + m.input.View()
	case modalDelete:
		title = "are you sure to delete this note?"
		body = styleMuted.Render(m.current.Title) + "\n\n" + m.renderButtons()
	}

	parts := []string{styleTitle.Render(title), "", body}
	if m.err != "" {
		parts = append(parts, "", styleError.Render(m.err))
	}
	hint := "enter: confirm   esc: cancel"
	if m.modal == modalDelete {
		hint = "tab: focus   enter: select   esc: cancel"
	}
	if m.pending {
		hint = "saving..."
	}
	parts = append(parts, "", styleMuted.Render(hint))
	return styleModal.Width(modalWidth).Render(strings.Join(parts, "\n"))
}

func (m Model) renderButtons() string {
	confirm := styleButton.Render("confirm")
	cancel := styleButton.Render("cancel")
	if m.focus == focusConfirm {
		confirm = styleButtonActive.Render("confirm")
	} else {
		cancel = styleButtonActive.Render("cancel")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cancel, " ", confirm)
}

// Run starts the list view full-screen and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
