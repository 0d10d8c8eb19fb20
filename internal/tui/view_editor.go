package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/patra/internal/catalog"
	"github.com/sant0-9/patra/internal/document"
	"github.com/sant0-9/patra/internal/placeholder"
	"github.com/sant0-9/patra/internal/session"
)

func (a *App) openSession(s *session.Session, back screen) tea.Cmd {
	a.state.fieldCursor = 0
	a.state.editingField = false
	a.state.fieldInput.Blur()
	a.screen = newEditor(s, back)
	a.refreshPreview(s)
	a.state.preview.GotoTop()
	return nil
}

func (a *App) refreshPreview(s *session.Session) {
	text := s.Render()
	if strings.TrimSpace(s.Body()) == "" {
		text = styleSubtitle.Render(fmt.Sprintf("This letter has no %s version. Press [ctrl+l] to switch back.", s.Language().Label()))
	}
	a.state.preview.SetContent(lipgloss.NewStyle().Width(a.state.preview.Width).Render(text))
}

func (a *App) documentFor(s *session.Session) *document.Document {
	t := s.Template()
	return document.New(t.Title, s.Render(), s.Language())
}

func (a *App) handleEditorKey(e editorScreen, msg tea.KeyMsg) tea.Cmd {
	s := e.session
	names := s.Placeholders()

	if a.state.editingField {
		name := names[a.state.fieldCursor]
		switch {
		case key.Matches(msg, keys.Back):
			s.Set(name, a.state.fieldOriginal)
			a.stopEditing()
		case key.Matches(msg, keys.Enter):
			a.stopEditing()
			if a.state.fieldCursor < len(names)-1 {
				a.state.fieldCursor++
			}
		case key.Matches(msg, keys.Tab):
			if a.state.fieldCursor < len(names)-1 {
				a.state.fieldCursor++
				return a.startEditing(s)
			}
			a.stopEditing()
		default:
			var cmd tea.Cmd
			a.state.fieldInput, cmd = a.state.fieldInput.Update(msg)
			s.Set(name, a.state.fieldInput.Value())
			a.refreshPreview(s)
			return cmd
		}
		a.refreshPreview(s)
		return nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		a.goBack(e.back)
	case key.Matches(msg, keys.Up):
		if a.state.fieldCursor > 0 {
			a.state.fieldCursor--
		}
	case key.Matches(msg, keys.Down), key.Matches(msg, keys.Tab):
		if a.state.fieldCursor < len(names)-1 {
			a.state.fieldCursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(names) > 0 {
			return a.startEditing(s)
		}
	case key.Matches(msg, keys.Language):
		s.ToggleLanguage()
		if a.state.fieldCursor >= len(s.Placeholders()) {
			a.state.fieldCursor = 0
		}
		a.refreshPreview(s)
	case key.Matches(msg, keys.Save):
		d := s.Snapshot(a.now())
		if err := a.book.Add(d); err != nil {
			a.showError(err)
			return nil
		}
		a.state.status = "Draft saved"
	case key.Matches(msg, keys.Text):
		return exportCmd(a.exporter, a.documentFor(s), document.FormatText)
	case key.Matches(msg, keys.HTML):
		return exportCmd(a.exporter, a.documentFor(s), document.FormatHTML)
	case key.Matches(msg, keys.PDF):
		if a.exporter.PDF != nil && !a.exporter.PDF.Available() {
			a.showError(document.ErrRendererUnavailable)
			return nil
		}
		a.state.status = "Exporting PDF..."
		return exportCmd(a.exporter, a.documentFor(s), document.FormatPDF)
	case key.Matches(msg, keys.Copy):
		return copyCmd(s.Render())
	case key.Matches(msg, keys.WhatsApp):
		return whatsAppCmd(s.Render())
	case key.Matches(msg, keys.FAQ):
		t := s.Template()
		if len(t.FAQs) > 0 {
			a.screen = faqScreen{title: t.Title, faqs: t.FAQs, back: e}
		}
	case key.Matches(msg, keys.Help):
		a.screen = helpScreen{back: e}
	default:
		var cmd tea.Cmd
		a.state.preview, cmd = a.state.preview.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) startEditing(s *session.Session) tea.Cmd {
	name := s.Placeholders()[a.state.fieldCursor]
	a.state.editingField = true
	a.state.fieldOriginal = s.Value(name)
	a.state.fieldInput.Placeholder = name
	a.state.fieldInput.SetValue(a.state.fieldOriginal)
	a.state.fieldInput.CursorEnd()
	return tea.Batch(a.state.fieldInput.Focus(), textinput.Blink)
}

func (a *App) stopEditing() {
	a.state.editingField = false
	a.state.fieldInput.Blur()
}

func (a *App) renderEditor(e editorScreen) string {
	s := e.session
	t := s.Template()
	var b strings.Builder

	heading := styleTitle.Render(t.Title)
	lang := styleSubtitle.Render(fmt.Sprintf("%s  ·  %s", t.Category, s.Language().Label()))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, heading))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, lang))
	b.WriteString("\n\n")

	names := s.Placeholders()
	var fields []string
	if len(names) == 0 {
		fields = append(fields, styleSubtitle.Render("No fields to fill"))
	}
	for i, name := range names {
		cursor := "  "
		if i == a.state.fieldCursor {
			cursor = "> "
		}
		var value string
		switch {
		case i == a.state.fieldCursor && a.state.editingField:
			value = a.state.fieldInput.View()
		case s.Value(name) == "":
			value = styleBlank.Render(placeholder.Token(name))
		default:
			value = s.Value(name)
		}
		label := truncate(name, 24)
		if i == a.state.fieldCursor {
			label = styleSelected.Render(label)
		}
		fields = append(fields, fmt.Sprintf("%s%s: %s", cursor, label, value))
	}

	width := min(a.state.preview.Width+4, max(30, a.width-4))
	fieldsBox := styleBox.Copy().Width(width).Render(strings.Join(fields, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, fieldsBox))
	b.WriteString("\n")

	previewBox := styleBox.Copy().
		Width(width).
		BorderForeground(colorSecondary).
		Render(a.state.preview.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, previewBox))
	b.WriteString("\n")

	doc := a.documentFor(s)
	info := fmt.Sprintf("%d words  ·  %s", doc.WordCount(), doc.SizeHuman())
	if missing := s.Missing(); len(missing) > 0 {
		info += fmt.Sprintf("  ·  %d of %d fields blank", len(missing), len(names))
	} else if len(names) > 0 {
		info += "  ·  all fields filled"
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(info)))
	b.WriteString("\n")

	help := "[Enter] Edit  [ctrl+l] Language  [ctrl+s] Save  [ctrl+t/o/p] Export  [ctrl+y] Copy  [ctrl+w] WhatsApp  [Esc] Back"
	if a.state.editingField {
		help = "[Enter] Done  [Tab] Next field  [Esc] Cancel"
	} else if len(t.FAQs) > 0 {
		help = "[f] FAQ  " + help
	}
	b.WriteString(a.statusLine(help))

	return a.centerVertically(b.String())
}

// languageFor picks the session language for a restored template.
func languageFor(t catalog.Template, want catalog.Language) catalog.Language {
	if want == "" || !t.HasLanguage(want) {
		if t.HasLanguage(catalog.Hindi) && !t.HasLanguage(catalog.English) {
			return catalog.Hindi
		}
		return catalog.English
	}
	return want
}
