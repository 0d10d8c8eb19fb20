package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sant0-9/patra/internal/document"
	"github.com/sant0-9/patra/internal/drafts"
	"github.com/sant0-9/patra/internal/intent"
	"github.com/sant0-9/patra/internal/share"
	"github.com/sant0-9/patra/internal/writer"
)

// notice is an overlay describing a failed action. It never replaces the
// screen underneath, so whatever the user was editing is still there.
type notice struct {
	title       string
	message     string
	suggestions []string
	retry       bool
	settings    bool
}

func noticeFor(err error) *notice {
	var werr *writer.Error
	switch {
	case errors.As(err, &werr):
		n := &notice{
			title:    "Letter not generated",
			message:  werr.Message(),
			retry:    werr.Retryable(),
			settings: werr.NeedsCredential(),
		}
		if werr.Kind == writer.KindEmptyResponse {
			n.suggestions = []string{"Add a little more detail, such as who the letter is for"}
		}
		if werr.Kind == writer.KindUnavailable || werr.Kind == writer.KindTimeout {
			n.suggestions = []string{"Your request is kept, press [r] to send it again"}
		}
		return n

	case errors.Is(err, intent.ErrEmptyRequest):
		return &notice{
			title:   "Nothing to write",
			message: "Describe the letter you need, or pick one of the quick requests.",
		}

	case errors.Is(err, drafts.ErrPersist):
		return &notice{
			title:       "Draft not saved",
			message:     "The draft could not be written to disk. Your letter is still open.",
			suggestions: []string{"Check free disk space and permissions on ~/.config/patra", "Or export the letter with [ctrl+t]"},
		}

	case errors.Is(err, drafts.ErrLoad):
		return &notice{
			title:       "Drafts not loaded",
			message:     "Your saved drafts file could not be read. Drafts saved now last until you quit.",
			suggestions: []string{"The file has been left as it is, see ~/.config/patra/patra.log for details"},
		}

	case errors.Is(err, document.ErrRendererUnavailable):
		return &notice{
			title:       "PDF export unavailable",
			message:     "PDF export needs Google Chrome or Chromium installed.",
			suggestions: []string{"Install Chrome or Chromium and try again", "Or export HTML with [ctrl+o] and print it from a browser"},
		}

	case errors.Is(err, share.ErrClipboardUnsupported):
		return &notice{
			title:       "Clipboard unavailable",
			message:     "No clipboard utility was found on this system.",
			suggestions: []string{"Install xclip, xsel or wl-clipboard", "Or export the letter with [ctrl+t]"},
		}
	}

	return &notice{
		title:   "Something went wrong",
		message: "The last action did not complete. Try again.",
	}
}

func (a *App) showError(err error) {
	if err == nil {
		return
	}
	a.logger.Warn("action failed", zap.Error(err))
	a.notice = noticeFor(err)
}

func (a *App) handleNoticeKey(msg tea.KeyMsg) tea.Cmd {
	n := a.notice
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Enter):
		a.notice = nil
	case n.settings && key.Matches(msg, keys.Settings):
		a.notice = nil
		return a.openAPIKeySettings()
	case n.retry && key.Matches(msg, keys.Retry):
		a.notice = nil
		if _, ok := a.screen.(aiScreen); ok {
			return a.startGenerate()
		}
	}
	return nil
}

func (a *App) renderNotice() string {
	n := a.notice
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render(n.title)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	errBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		BorderForeground(colorError).
		Render(n.message)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errBox))
	b.WriteString("\n\n")

	if len(n.suggestions) > 0 {
		suggBox := styleBox.Copy().
			Width(min(60, a.width-4)).
			BorderForeground(colorMuted).
			Render("Suggestions:\n" + strings.Join(n.suggestions, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, suggBox))
		b.WriteString("\n\n")
	}

	actions := []string{}
	if n.retry {
		actions = append(actions, "[r] Retry")
	}
	if n.settings {
		actions = append(actions, "[s] Settings")
	}
	actions = append(actions, "[Esc] Dismiss")
	status := styleStatusBar.Render(strings.Join(actions, "  "))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
