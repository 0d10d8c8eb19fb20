package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/patra/internal/catalog"
)

// listed returns the templates shown by a category or search screen.
func (a *App) listed() []catalog.Template {
	switch s := a.screen.(type) {
	case categoryScreen:
		return a.catalog.ByCategory(s.category)
	case searchScreen:
		return a.catalog.Search(s.query)
	}
	return nil
}

func (a *App) handleListKey(msg tea.KeyMsg) tea.Cmd {
	list := a.listed()
	switch {
	case key.Matches(msg, keys.Back):
		a.state.listCursor = 0
		a.screen = homeScreen{}
	case key.Matches(msg, keys.Up):
		if a.state.listCursor > 0 {
			a.state.listCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.state.listCursor < len(list)-1 {
			a.state.listCursor++
		}
	case key.Matches(msg, keys.Enter):
		if a.state.listCursor < len(list) {
			return a.openTemplate(list[a.state.listCursor], a.screen)
		}
	case key.Matches(msg, keys.Search):
		a.screen = homeScreen{}
		return a.handleHomeKey(msg)
	case key.Matches(msg, keys.Help):
		a.screen = helpScreen{back: a.screen}
	}
	return nil
}

func (a *App) renderList(heading string, list []catalog.Template) string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render(heading)))
	b.WriteString("\n\n")

	var lines []string
	if len(list) == 0 {
		lines = append(lines, styleSubtitle.Render("No letters found. Try the AI writer with [a] from home."))
	}
	for i, t := range list {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(colorWhite)
		if i == a.state.listCursor {
			cursor = "> "
			style = styleSelected
		}
		langs := "EN"
		if t.HasLanguage(catalog.Hindi) {
			langs += "/HI"
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%-44s %-8s %s", cursor, truncate(t.Title, 44), t.Category, langs)))
		if len(t.Tags) > 0 && i == a.state.listCursor {
			lines = append(lines, styleSubtitle.Render("    "+truncate(strings.Join(t.Tags, ", "), 60)))
		}
	}

	box := styleBox.Copy().Width(min(72, max(30, a.width-4))).Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	b.WriteString(a.statusLine("[j/k] Navigate  [Enter] Open  [/] Search  [Esc] Back"))

	return a.centerVertically(b.String())
}
