package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/patra/internal/catalog"
	"github.com/sant0-9/patra/internal/session"
)

const logo = `
 ██████╗  █████╗ ████████╗██████╗  █████╗
 ██╔══██╗██╔══██╗╚══██╔══╝██╔══██╗██╔══██╗
 ██████╔╝███████║   ██║   ██████╔╝███████║
 ██╔═══╝ ██╔══██║   ██║   ██╔══██╗██╔══██║
 ██║     ██║  ██║   ██║   ██║  ██║██║  ██║
 ╚═╝     ╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝
`

// homeItem is one selectable row on the home screen: a trending template
// or a category.
type homeItem struct {
	template *catalog.Template
	category catalog.Category
}

func (a *App) homeItems() []homeItem {
	var items []homeItem
	for _, t := range a.catalog.Trending(a.now()) {
		t := t
		items = append(items, homeItem{template: &t})
	}
	for _, c := range catalog.Categories {
		items = append(items, homeItem{category: c})
	}
	return items
}

func (a *App) handleHomeKey(msg tea.KeyMsg) tea.Cmd {
	if a.state.searchFocused {
		switch {
		case key.Matches(msg, keys.Back):
			a.state.searchFocused = false
			a.state.searchInput.Blur()
			return nil
		case key.Matches(msg, keys.Enter):
			query := strings.TrimSpace(a.state.searchInput.Value())
			if query == "" {
				return nil
			}
			a.state.searchFocused = false
			a.state.searchInput.Blur()
			a.state.listCursor = 0
			a.screen = searchScreen{query: query}
			return nil
		}
		var cmd tea.Cmd
		a.state.searchInput, cmd = a.state.searchInput.Update(msg)
		return cmd
	}

	items := a.homeItems()
	switch {
	case key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.Search):
		a.state.searchFocused = true
		a.state.searchInput.Reset()
		return tea.Batch(a.state.searchInput.Focus(), textinput.Blink)
	case key.Matches(msg, keys.Up):
		if a.state.listCursor > 0 {
			a.state.listCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.state.listCursor < len(items)-1 {
			a.state.listCursor++
		}
	case key.Matches(msg, keys.Enter):
		if a.state.listCursor >= len(items) {
			return nil
		}
		item := items[a.state.listCursor]
		if item.template != nil {
			return a.openTemplate(*item.template, homeScreen{})
		}
		a.state.listCursor = 0
		a.screen = categoryScreen{category: item.category}
	case key.Matches(msg, keys.AI):
		return a.openAI()
	case key.Matches(msg, keys.Drafts):
		a.state.draftCursor = 0
		a.screen = draftsScreen{}
	case key.Matches(msg, keys.FAQ):
		a.screen = faqScreen{back: homeScreen{}}
	case key.Matches(msg, keys.Settings):
		a.openSettings()
	case key.Matches(msg, keys.Help):
		a.screen = helpScreen{back: a.screen}
	}
	return nil
}

// openTemplate starts a fresh editor session on t in the configured language.
func (a *App) openTemplate(t catalog.Template, back screen) tea.Cmd {
	lang, err := catalog.ParseLanguage(a.state.config.Language)
	if err != nil || !t.HasLanguage(lang) {
		lang = catalog.English
		if !t.HasLanguage(lang) {
			lang = catalog.Hindi
		}
	}
	return a.openSession(session.New(t, lang), back)
}

func (a *App) renderHome() string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleLogo.Render(logo)))
	b.WriteString("\n")
	subtitle := styleSubtitle.Render("Formal letters for Banking, Police, Schools and Offices, in English and Hindi")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, subtitle))
	b.WriteString("\n\n")

	searchBox := styleBox.Copy().Width(56)
	if a.state.searchFocused {
		searchBox = searchBox.BorderForeground(colorSecondary)
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, searchBox.Render(a.state.searchInput.View())))
	b.WriteString("\n\n")

	items := a.homeItems()
	var trending, categories []string
	for i, item := range items {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(colorWhite)
		if i == a.state.listCursor && !a.state.searchFocused {
			cursor = "> "
			style = styleSelected
		}
		if item.template != nil {
			line := fmt.Sprintf("%s%-40s %s", cursor, truncate(item.template.Title, 40), item.template.Category)
			trending = append(trending, style.Render(line))
			continue
		}
		count := len(a.catalog.ByCategory(item.category))
		categories = append(categories, style.Render(fmt.Sprintf("%s%-12s %d letters", cursor, item.category, count)))
	}

	if len(trending) > 0 {
		box := styleBox.Copy().Width(56).Render(styleTitle.Render("Trending today") + "\n" + strings.Join(trending, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
		b.WriteString("\n")
	}
	box := styleBox.Copy().Width(56).Render(styleTitle.Render("Categories") + "\n" + strings.Join(categories, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	b.WriteString(a.statusLine("[/] Search  [a] AI writer  [d] Drafts  [f] FAQ  [s] Settings  [?] Help  [Esc] Quit"))

	return a.centerVertically(b.String())
}

// statusLine renders the footer, preceded by the last status message.
func (a *App) statusLine(help string) string {
	var b strings.Builder
	if a.state.status != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSuccess.Render(a.state.status)))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(help)))
	return b.String()
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}
