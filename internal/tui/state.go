package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sant0-9/patra/internal/config"
)

// quickRequests are offered as one-key starting points on the AI screen.
var quickRequests = []string{
	"Sick leave for 2 days",
	"Bank account close application",
	"Complaint about stray dogs",
	"Electricity bill correction",
}

type state struct {
	// Config
	config *config.Config

	// Setup wizard and settings
	selectedProvider int
	settingsSelected int
	apiKeyInput      textinput.Model

	// Home and template lists
	searchInput   textinput.Model
	searchFocused bool
	listCursor    int

	// Editor
	fieldCursor  int
	fieldInput   textinput.Model
	editingField bool
	// fieldOriginal is restored when an edit is cancelled
	fieldOriginal string
	preview       viewport.Model

	// AI writer
	promptArea   textarea.Model
	chipCursor   int
	chipsFocused bool
	generating   bool
	capturing    bool
	spinner      spinner.Model

	// Drafts
	draftCursor int

	// status is a one-line confirmation shown in the footer
	status string
}

func newState(cfg *config.Config) *state {
	search := textinput.New()
	search.Placeholder = "Search 'Cheque book', 'FIR', 'Leave'..."
	search.CharLimit = 100
	search.Width = 50

	field := textinput.New()
	field.CharLimit = 300
	field.Width = 50

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	prompt := textarea.New()
	prompt.Placeholder = "Type your request... (e.g. 'Bijli vibhag ko letter likho')"
	prompt.ShowLineNumbers = false
	prompt.CharLimit = 2000
	prompt.SetWidth(60)
	prompt.SetHeight(6)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return &state{
		config:      cfg,
		apiKeyInput: apiKey,
		searchInput: search,
		fieldInput:  field,
		preview:     viewport.New(60, 20),
		promptArea:  prompt,
		spinner:     sp,
	}
}
