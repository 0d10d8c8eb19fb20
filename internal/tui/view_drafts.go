package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/patra/internal/drafts"
	"github.com/sant0-9/patra/internal/session"
)

func (a *App) handleDraftsKey(msg tea.KeyMsg) tea.Cmd {
	list := a.book.List()
	switch {
	case key.Matches(msg, keys.Back):
		a.screen = homeScreen{}
	case key.Matches(msg, keys.Up):
		if a.state.draftCursor > 0 {
			a.state.draftCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.state.draftCursor < len(list)-1 {
			a.state.draftCursor++
		}
	case key.Matches(msg, keys.Enter):
		if a.state.draftCursor < len(list) {
			d := list[a.state.draftCursor]
			t := drafts.Restore(d, a.catalog)
			return a.openSession(session.New(t, languageFor(t, d.Language)), draftsScreen{})
		}
	case key.Matches(msg, keys.Delete):
		if a.state.draftCursor < len(list) {
			if err := a.book.Delete(list[a.state.draftCursor].ID); err != nil {
				a.showError(err)
				return nil
			}
			if a.state.draftCursor >= a.book.Len() && a.state.draftCursor > 0 {
				a.state.draftCursor--
			}
			a.state.status = "Draft deleted"
		}
	}
	return nil
}

func (a *App) renderDrafts() string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render("My Drafts")))
	b.WriteString("\n\n")

	list := a.book.List()
	var lines []string
	if len(list) == 0 {
		lines = append(lines, styleSubtitle.Render("No saved drafts yet. Save one from the editor with [ctrl+s]."))
	}
	for i, d := range list {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(colorWhite)
		if i == a.state.draftCursor {
			cursor = "> "
			style = styleSelected
		}
		origin := "template"
		if !d.FromCatalog() {
			origin = "AI"
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%-36s %-8s %s", cursor, truncate(d.Title, 36), origin, d.LastModified.Local().Format("02 Jan 2006 15:04"))))
		if i == a.state.draftCursor {
			first, _, _ := strings.Cut(strings.TrimSpace(d.Content), "\n")
			lines = append(lines, styleSubtitle.Render("    "+truncate(first, 60)))
		}
	}

	box := styleBox.Copy().Width(min(76, max(30, a.width-4))).Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	b.WriteString(a.statusLine("[j/k] Navigate  [Enter] Open  [x] Delete  [Esc] Back"))

	return a.centerVertically(b.String())
}
