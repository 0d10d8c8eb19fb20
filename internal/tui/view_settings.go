package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/patra/internal/catalog"
	"github.com/sant0-9/patra/internal/config"
)

func (a *App) openSettings() {
	a.state.settingsSelected = 0
	a.screen = settingsScreen{}
}

// openAPIKeySettings jumps straight to key entry, used when a request
// failed for want of a valid credential.
func (a *App) openAPIKeySettings() tea.Cmd {
	a.screen = settingsScreen{mode: settingsAPIKey}
	a.state.apiKeyInput.Reset()
	return tea.Batch(a.state.apiKeyInput.Focus(), textinput.Blink)
}

func (a *App) saveSettings() tea.Cmd {
	a.screen = settingsScreen{}
	return saveConfigCmd(a.state.config.Save, settingsSavedMsg{})
}

func (a *App) handleSettingsKey(s settingsScreen, msg tea.KeyMsg) tea.Cmd {
	cfg := a.state.config

	switch s.mode {
	case settingsMain:
		switch msg.String() {
		case "esc":
			a.screen = homeScreen{}
		case "p":
			a.state.settingsSelected = max(0, providerIndex(cfg.Provider))
			a.screen = settingsScreen{mode: settingsProvider}
		case "m":
			a.state.settingsSelected = 0
			if p := config.GetProvider(cfg.Provider); p != nil {
				for i, m := range p.Models {
					if m == cfg.Model {
						a.state.settingsSelected = i
					}
				}
			}
			a.screen = settingsScreen{mode: settingsModel}
		case "k":
			return a.openAPIKeySettings()
		case "l":
			lang, err := catalog.ParseLanguage(cfg.Language)
			if err != nil {
				lang = catalog.English
			}
			cfg.Language = string(lang.Other())
			return a.saveSettings()
		case "r":
			a.state.selectedProvider = max(0, providerIndex(cfg.Provider))
			a.screen = setupScreen{}
		}

	case settingsProvider:
		switch {
		case key.Matches(msg, keys.Back):
			a.screen = settingsScreen{}
		case key.Matches(msg, keys.Up):
			if a.state.settingsSelected > 0 {
				a.state.settingsSelected--
			}
		case key.Matches(msg, keys.Down):
			if a.state.settingsSelected < len(config.Providers)-1 {
				a.state.settingsSelected++
			}
		case key.Matches(msg, keys.Enter):
			p := config.Providers[a.state.settingsSelected]
			if p.ID != cfg.Provider {
				cfg.Provider = p.ID
				cfg.Model = p.DefaultModel
				cfg.APIKey = ""
				cfg.BaseURL = ""
			}
			if p.NeedsAPIKey && cfg.EffectiveAPIKey() == "" {
				return a.openAPIKeySettings()
			}
			return a.saveSettings()
		}

	case settingsModel:
		p := config.GetProvider(cfg.Provider)
		switch {
		case key.Matches(msg, keys.Back):
			a.screen = settingsScreen{}
		case p == nil:
		case key.Matches(msg, keys.Up):
			if a.state.settingsSelected > 0 {
				a.state.settingsSelected--
			}
		case key.Matches(msg, keys.Down):
			if a.state.settingsSelected < len(p.Models)-1 {
				a.state.settingsSelected++
			}
		case key.Matches(msg, keys.Enter):
			cfg.Model = p.Models[a.state.settingsSelected]
			return a.saveSettings()
		}

	case settingsAPIKey:
		switch {
		case key.Matches(msg, keys.Back):
			a.state.apiKeyInput.Blur()
			a.screen = settingsScreen{}
		case key.Matches(msg, keys.Enter):
			cfg.APIKey = strings.TrimSpace(a.state.apiKeyInput.Value())
			a.state.apiKeyInput.Blur()
			return a.saveSettings()
		default:
			var cmd tea.Cmd
			a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
			return cmd
		}
	}
	return nil
}

func providerIndex(id string) int {
	for i, p := range config.Providers {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// maskKey shows only the ends of a credential.
func maskKey(k string) string {
	switch {
	case k == "":
		return "Not set"
	case len(k) > 8:
		return k[:4] + "****" + k[len(k)-4:]
	default:
		return "****"
	}
}

func (a *App) renderSettings(s settingsScreen) string {
	switch s.mode {
	case settingsProvider:
		return a.renderSettingsProvider()
	case settingsModel:
		return a.renderSettingsModel()
	case settingsAPIKey:
		return a.renderSettingsAPIKey()
	default:
		return a.renderSettingsMain()
	}
}

func (a *App) renderSettingsMain() string {
	var b strings.Builder
	cfg := a.state.config

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render("Settings")))
	b.WriteString("\n\n")

	providerName := cfg.Provider
	if p := config.GetProvider(cfg.Provider); p != nil {
		providerName = p.Name
	}

	apiKey := maskKey(cfg.APIKey)
	if cfg.APIKey == "" && cfg.EnvAPIKey() != "" {
		apiKey = "from environment"
	}

	lang, err := catalog.ParseLanguage(cfg.Language)
	if err != nil {
		lang = catalog.English
	}

	configLines := []string{
		fmt.Sprintf("  Provider: %s", providerName),
		fmt.Sprintf("  Model:    %s", cfg.Model),
		fmt.Sprintf("  API Key:  %s", apiKey),
		fmt.Sprintf("  Language: %s", lang.Label()),
	}
	configBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, configBox))
	b.WriteString("\n\n")

	actions := []string{
		"  [p] Change provider",
		"  [m] Change model",
		"  [k] Update API key",
		"  [l] Switch default language",
		"  [r] Run setup again",
	}
	actionsBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(actions, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, actionsBox))
	b.WriteString("\n\n")

	b.WriteString(a.statusLine("[Esc] Back"))

	return a.centerVertically(b.String())
}

func (a *App) renderPicker(title, subtitle string, items []string, current string) string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render(title)))
	b.WriteString("\n\n")
	if subtitle != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(subtitle)))
		b.WriteString("\n\n")
	}

	var lines []string
	for i, item := range items {
		cursor := "  "
		if i == a.state.settingsSelected {
			cursor = "> "
		}
		mark := ""
		if item == current {
			mark = " (current)"
		}
		line := cursor + item + mark
		if i == a.state.settingsSelected {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	b.WriteString(a.statusLine("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel"))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsProvider() string {
	names := make([]string, len(config.Providers))
	current := ""
	for i, p := range config.Providers {
		names[i] = p.Name
		if p.ID == a.state.config.Provider {
			current = p.Name
		}
	}
	return a.renderPicker("Select Provider", "", names, current)
}

func (a *App) renderSettingsModel() string {
	p := config.GetProvider(a.state.config.Provider)
	if p == nil {
		return a.renderPicker("Select Model", "No models listed for provider "+a.state.config.Provider, nil, "")
	}
	return a.renderPicker("Select Model", "Provider: "+p.Name, p.Models, a.state.config.Model)
}

func (a *App) renderSettingsAPIKey() string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render("Update API Key")))
	b.WriteString("\n\n")

	desc := "Enter your new API key"
	if p := config.GetProvider(a.state.config.Provider); p != nil && p.SignupURL != "" {
		desc = fmt.Sprintf("Enter your %s API key (get one at %s)", p.Name, p.SignupURL)
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(desc)))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		Width(50).
		BorderForeground(colorPrimary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	b.WriteString(a.statusLine("[Enter] Save  [Esc] Cancel"))

	return a.centerVertically(b.String())
}
