package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/patra/internal/catalog"
	"github.com/sant0-9/patra/internal/document"
	"github.com/sant0-9/patra/internal/share"
	"github.com/sant0-9/patra/internal/speech"
	"github.com/sant0-9/patra/internal/writer"
)

type setupCompleteMsg struct{}
type settingsSavedMsg struct{}
type providerReadyMsg struct{}
type providerErrorMsg struct{ error }

// errMsg carries a failure from a background command to the notice overlay.
type errMsg struct{ err error }

type generatedMsg struct{ tmpl *catalog.Template }
type generateErrMsg struct{ err error }

type transcriptMsg struct{ text string }
type captureErrMsg struct{ err error }

type exportedMsg struct{ path string }

type statusMsg string

func generateCmd(w *writer.Writer, request string) tea.Cmd {
	return func() tea.Msg {
		tmpl, err := w.Generate(context.Background(), request)
		if err != nil {
			return generateErrMsg{err}
		}
		return generatedMsg{tmpl}
	}
}

func captureCmd(c speech.Capturer, lang catalog.Language) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		text, err := c.Capture(ctx, lang)
		if err != nil {
			return captureErrMsg{err}
		}
		return transcriptMsg{text}
	}
}

func exportCmd(e *document.Exporter, d *document.Document, f document.Format) tea.Cmd {
	return func() tea.Msg {
		path, err := e.Save(context.Background(), d, f)
		if err != nil {
			return errMsg{err}
		}
		return exportedMsg{path}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if err := share.Copy(text); err != nil {
			return errMsg{err}
		}
		return statusMsg("Letter copied to clipboard")
	}
}

func whatsAppCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if err := share.Open(share.WhatsAppURL(text)); err != nil {
			return errMsg{err}
		}
		return statusMsg("Opened WhatsApp share link")
	}
}

// saveConfigCmd persists the config and reports done on success.
func saveConfigCmd(save func() error, done tea.Msg) tea.Cmd {
	return func() tea.Msg {
		if err := save(); err != nil {
			return errMsg{err}
		}
		return done
	}
}
