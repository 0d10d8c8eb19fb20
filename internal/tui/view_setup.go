package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/patra/internal/config"
)

func (a *App) handleSetupKey(s setupScreen, msg tea.KeyMsg) tea.Cmd {
	switch s.step {
	case 0: // Provider selection
		switch {
		case key.Matches(msg, keys.Up):
			if a.state.selectedProvider > 0 {
				a.state.selectedProvider--
			}
		case key.Matches(msg, keys.Down):
			if a.state.selectedProvider < len(config.Providers)-1 {
				a.state.selectedProvider++
			}
		case key.Matches(msg, keys.Enter):
			provider := config.Providers[a.state.selectedProvider]
			a.state.config.Provider = provider.ID
			a.state.config.Model = provider.DefaultModel

			if provider.NeedsAPIKey && a.state.config.EnvAPIKey() == "" {
				a.screen = setupScreen{step: 1}
				a.state.apiKeyInput.Reset()
				return tea.Batch(a.state.apiKeyInput.Focus(), textinput.Blink)
			}
			return saveConfigCmd(a.state.config.Save, setupCompleteMsg{})
		}

	case 1: // API key entry
		switch {
		case key.Matches(msg, keys.Back):
			a.state.apiKeyInput.Blur()
			a.screen = setupScreen{}
		case key.Matches(msg, keys.Enter):
			a.state.config.APIKey = strings.TrimSpace(a.state.apiKeyInput.Value())
			a.state.apiKeyInput.Blur()
			return saveConfigCmd(a.state.config.Save, setupCompleteMsg{})
		default:
			var cmd tea.Cmd
			a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
			return cmd
		}
	}
	return nil
}

func (a *App) renderSetup(s setupScreen) string {
	if s.step == 1 {
		return a.renderAPIKeyEntry()
	}
	return a.renderProviderSelection()
}

func (a *App) renderProviderSelection() string {
	var b strings.Builder

	header := styleLogo.Render(logo)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header))
	b.WriteString("\n\n")

	title := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render("Welcome! Choose the AI provider for the letter writer:")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	var providerLines []string
	for i, p := range config.Providers {
		if i == a.state.selectedProvider {
			providerLines = append(providerLines, lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true).
				Render(fmt.Sprintf("> [x] %-12s %s", p.Name, p.Description)))
			continue
		}
		providerLines = append(providerLines, lipgloss.NewStyle().
			Foreground(colorMuted).
			Render(fmt.Sprintf("  [ ] %-12s %s", p.Name, p.Description)))
	}

	providerBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(providerLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, providerBox))
	b.WriteString("\n\n")

	note := styleSubtitle.Render("Templates work without a provider. You can change this later in settings.")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, note))
	b.WriteString("\n\n")

	b.WriteString(a.statusLine("[j/k] Navigate  [Enter] Select"))

	return a.centerVertically(b.String())
}

func (a *App) renderAPIKeyEntry() string {
	var b strings.Builder

	provider := config.GetProvider(a.state.config.Provider)
	name := a.state.config.Provider
	if provider != nil {
		name = provider.Name
	}

	header := styleLogo.Render(logo)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header))
	b.WriteString("\n\n")

	title := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render(fmt.Sprintf("Enter your %s API key:", name))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	if provider != nil && provider.SignupURL != "" {
		link := styleSubtitle.Render(fmt.Sprintf("Get one at: %s", provider.SignupURL))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, link))
		b.WriteString("\n\n")
	}

	inputBox := styleBox.Copy().
		Width(60).
		BorderForeground(colorSecondary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	b.WriteString(a.statusLine("[Enter] Continue  [Esc] Back"))

	return a.centerVertically(b.String())
}
