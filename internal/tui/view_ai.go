package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/patra/internal/catalog"
	"github.com/sant0-9/patra/internal/intent"
	"github.com/sant0-9/patra/internal/session"
)

func (a *App) openAI() tea.Cmd {
	a.screen = aiScreen{}
	a.state.chipsFocused = false
	return tea.Batch(a.state.promptArea.Focus(), textarea.Blink)
}

func (a *App) handleAIKey(msg tea.KeyMsg) tea.Cmd {
	if a.state.chipsFocused {
		switch {
		case key.Matches(msg, keys.Left):
			if a.state.chipCursor > 0 {
				a.state.chipCursor--
			}
		case key.Matches(msg, keys.Right):
			if a.state.chipCursor < len(quickRequests)-1 {
				a.state.chipCursor++
			}
		case key.Matches(msg, keys.Enter):
			if a.state.generating {
				return nil
			}
			a.state.promptArea.SetValue(quickRequests[a.state.chipCursor])
			a.state.chipsFocused = false
			return a.state.promptArea.Focus()
		case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Back):
			a.state.chipsFocused = false
			return a.state.promptArea.Focus()
		case key.Matches(msg, keys.Generate):
			return a.startGenerate()
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		a.state.promptArea.Blur()
		a.screen = homeScreen{}
		return nil
	case key.Matches(msg, keys.Generate):
		return a.startGenerate()
	case key.Matches(msg, keys.Tab):
		if a.state.generating {
			return nil
		}
		a.state.chipsFocused = true
		a.state.promptArea.Blur()
		return nil
	case key.Matches(msg, keys.Voice):
		if a.speech == nil || a.state.capturing || a.state.generating {
			return nil
		}
		a.state.capturing = true
		lang := catalog.English
		if intent.HasDevanagari(a.state.promptArea.Value()) || a.state.config.Language == string(catalog.Hindi) {
			lang = catalog.Hindi
		}
		return tea.Batch(captureCmd(a.speech, lang), a.state.spinner.Tick)
	}

	if a.state.generating {
		return nil
	}
	var cmd tea.Cmd
	a.state.promptArea, cmd = a.state.promptArea.Update(msg)
	return cmd
}

// startGenerate sends the prompt unless a request is already in flight. The
// prompt text is left in place whatever the outcome.
func (a *App) startGenerate() tea.Cmd {
	if a.state.generating {
		return nil
	}
	a.state.generating = true
	return tea.Batch(generateCmd(a.writer, a.state.promptArea.Value()), a.state.spinner.Tick)
}

func (a *App) handleGenerated(msg generatedMsg) tea.Cmd {
	a.state.generating = false
	t := *msg.tmpl
	a.state.promptArea.Blur()
	return a.openSession(session.New(t, languageFor(t, "")), aiScreen{})
}

func (a *App) renderAI() string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render("AI Letter Writer")))
	b.WriteString("\n")
	desc := styleSubtitle.Render("Can't find the right format? Describe what you need in Hindi or English.")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
	b.WriteString("\n\n")

	border := colorSecondary
	if a.state.chipsFocused {
		border = colorMuted
	}
	promptBox := styleBox.Copy().BorderForeground(border).Render(a.state.promptArea.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, promptBox))
	b.WriteString("\n\n")

	var chips []string
	for i, q := range quickRequests {
		style := styleSubtitle
		if a.state.chipsFocused && i == a.state.chipCursor {
			style = styleSelected
		}
		chips = append(chips, style.Render("["+q+"]"))
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, strings.Join(chips, " ")))
	b.WriteString("\n\n")

	switch {
	case a.state.generating:
		line := fmt.Sprintf("%s Writing your letter...", a.state.spinner.View())
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line))
		b.WriteString("\n\n")
	case a.state.capturing:
		line := fmt.Sprintf("%s Listening...", a.state.spinner.View())
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line))
		b.WriteString("\n\n")
	case !a.writer.Available():
		warn := styleBlank.Render("No API key set. Press [Esc] then [s] to add one.")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, warn))
		b.WriteString("\n\n")
	}

	help := "[ctrl+g] Generate  [Tab] Quick requests  [Esc] Back"
	if a.speech != nil {
		help = "[ctrl+g] Generate  [ctrl+r] Speak  [Tab] Quick requests  [Esc] Back"
	}
	b.WriteString(a.statusLine(help))

	return a.centerVertically(b.String())
}
