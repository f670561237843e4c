package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/petlist/internal/pets"
)

func (a *App) View() string {
	if a.state == stateError {
		return errorStyle.Render(fmt.Sprintf("Error: %v", a.loadErr)) + "\n\n" + mutedStyle.Render("[ctrl+r] Retry  [q] Quit")
	}
	if a.state == stateLoading && !a.loaded {
		return "Loading..."
	}

	body := a.renderScreen()
	switch {
	case a.alert != "":
		body = renderPopup(body, a.alert+"\n\n"+mutedStyle.Render("[enter] OK"), a.width, a.height)
	case a.modalOpen:
		body = renderPopup(body, a.renderModal(), a.width, a.height)
	}
	return body
}

func (a *App) renderScreen() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Home"))
	b.WriteString("\n\n")

	for i := range a.inputs {
		b.WriteString(a.renderField(i, focusArea(i) == a.focus && !a.modalOpen))
		b.WriteString("\n")
	}
	b.WriteString(buttonStyle.Render(a.submitLabel()))
	b.WriteString("\n\n")

	marker := " "
	if a.focus == focusFilter {
		marker = "▶"
	}
	b.WriteString(fmt.Sprintf("%s Search: %s\n\n", marker, a.filter.View()))

	b.WriteString(a.renderList())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(a.helpLine()))
	return b.String()
}

func (a *App) renderField(i int, focused bool) string {
	marker := " "
	if focused {
		marker = "▶"
	}
	return fmt.Sprintf("%s %-6s %s", marker, fieldLabels[i]+":", a.inputs[i].View())
}

func (a *App) submitLabel() string {
	if a.editingID != "" {
		return "Edit Pet"
	}
	return "Add Pet"
}

func (a *App) renderList() string {
	visible := a.visible()
	var lines []string
	if a.state == stateLoading {
		lines = append(lines, mutedStyle.Render("Loading..."))
	}
	if len(visible) == 0 {
		query := a.filter.Value()
		if query != "" {
			hint := fmt.Sprintf("No pets match %q.", query)
			if name, ok := pets.Closest(a.pets, query); ok {
				hint += fmt.Sprintf(" Did you mean %s?", name)
			}
			lines = append(lines, mutedStyle.Render(hint))
		}
		return strings.Join(lines, "\n")
	}

	rows := a.listRows()
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+rows {
		a.offset = a.cursor - rows + 1
	}
	end := a.offset + rows
	if end > len(visible) {
		end = len(visible)
	}

	actions := editTagStyle.Render("Edit") + " " + deleteTagStyle.Render("Delete")
	for i := a.offset; i < end; i++ {
		line := visible[i].Summary()
		if i == a.cursor && a.focus == focusList {
			line = selectedStyle.Render("▶ "+line) + "  " + actions
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	if len(visible) > rows {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d-%d of %d", a.offset+1, end, len(visible))))
	}
	return strings.Join(lines, "\n")
}

// listRows is how many records fit below the form; everything is shown
// until the first window size arrives.
func (a *App) listRows() int {
	const chrome = 16
	if a.height <= 0 {
		return len(a.pets) + 1
	}
	if n := a.height - chrome; n > 1 {
		return n
	}
	return 1
}

func (a *App) renderModal() string {
	lines := []string{sectionStyle.Render("Edit Pet Details"), ""}
	for i := range a.inputs {
		lines = append(lines, a.renderField(i, i == a.modalFocus))
	}
	lines = append(lines, "",
		lipgloss.JoinHorizontal(lipgloss.Top, buttonStyle.Render("Update Pet"), "  ", closeTagStyle.Render("Close")),
		mutedStyle.Render("[enter] Update  [esc] Close  [tab] Next field"),
	)
	return strings.Join(lines, "\n")
}

func (a *App) helpLine() string {
	switch a.focus {
	case focusList:
		return "[↑/↓] Move  [e] Edit  [d] Delete  [tab] Form  [ctrl+n] New  [q] Quit"
	case focusFilter:
		return "[enter] To list  [tab] Next  [ctrl+c] Quit"
	}
	return "[enter] " + a.submitLabel() + "  [tab] Next  [ctrl+n] New  [ctrl+r] Reload  [ctrl+c] Quit"
}
