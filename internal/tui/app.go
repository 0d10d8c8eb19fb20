package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sant0-9/patra/internal/catalog"
	"github.com/sant0-9/patra/internal/config"
	"github.com/sant0-9/patra/internal/document"
	"github.com/sant0-9/patra/internal/drafts"
	"github.com/sant0-9/patra/internal/llm"
	"github.com/sant0-9/patra/internal/logging"
	"github.com/sant0-9/patra/internal/speech"
	"github.com/sant0-9/patra/internal/writer"
)

// Deps are the collaborators the app drives. Writer and Speech may be nil:
// a nil Writer is rebuilt from Config, a nil Speech hides voice input.
type Deps struct {
	Config     *config.Config
	NeedsSetup bool
	Catalog    *catalog.Catalog
	Book       *drafts.Book
	// DraftsErr, when set, is shown once at startup.
	DraftsErr error
	Writer    *writer.Writer
	Exporter  *document.Exporter
	Speech    speech.Capturer
	Logger    *zap.Logger
	Now       func() time.Time
}

type App struct {
	width  int
	height int

	screen screen
	notice *notice
	state  *state

	catalog  *catalog.Catalog
	book     *drafts.Book
	writer   *writer.Writer
	exporter *document.Exporter
	speech   speech.Capturer
	logger   *zap.Logger
	now      func() time.Time

	quitting bool
}

func NewApp(d Deps) *App {
	cfg := d.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	d.Logger = logging.OrNop(d.Logger)
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Exporter == nil {
		d.Exporter = &document.Exporter{Dir: "."}
	}
	if d.Book == nil {
		d.Book, _ = drafts.Open(&drafts.MemoryStore{}, d.Logger)
	}

	a := &App{
		screen:   homeScreen{},
		state:    newState(cfg),
		catalog:  d.Catalog,
		book:     d.Book,
		writer:   d.Writer,
		exporter: d.Exporter,
		speech:   d.Speech,
		logger:   d.Logger,
		now:      d.Now,
	}
	if a.writer == nil {
		a.rebuildWriter()
	}
	if d.NeedsSetup {
		a.screen = setupScreen{}
	}
	if d.DraftsErr != nil {
		a.showError(d.DraftsErr)
	}
	return a
}

// rebuildWriter applies the current config. A missing key still yields a
// writer so the AI screen can explain what to do.
func (a *App) rebuildWriter() {
	cfg := a.state.config
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		a.logger.Info("AI writer not configured", zap.Error(err))
		provider = nil
	}
	a.writer = writer.NewWriter(provider, cfg.Model, cfg.RequestTimeout(), a.logger)
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), textinput.Blink)
}

func (a *App) testProvider() tea.Cmd {
	cfg := *a.state.config
	return func() tea.Msg {
		provider, err := llm.NewProvider(&cfg)
		if err != nil {
			return providerErrorMsg{err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{err}
		}
		return providerReadyMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			a.quitting = true
			return a, tea.Quit
		}
		if a.notice != nil {
			return a, a.handleNoticeKey(msg)
		}
		a.state.status = ""
		return a, a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case setupCompleteMsg:
		a.rebuildWriter()
		a.screen = homeScreen{}
		return a, a.testProvider()

	case settingsSavedMsg:
		a.rebuildWriter()
		a.state.status = "Settings saved"
		return a, a.testProvider()

	case errMsg:
		a.showError(msg.err)
		return a, nil

	case providerReadyMsg:
		a.state.status = "AI provider connected"
		return a, nil

	case providerErrorMsg:
		a.logger.Warn("provider check failed", zap.Error(msg.error))
		a.state.status = "AI provider not reachable; the AI writer may fail"
		return a, nil

	case generatedMsg:
		return a, a.handleGenerated(msg)

	case generateErrMsg:
		a.state.generating = false
		a.showError(msg.err)
		return a, nil

	case transcriptMsg:
		a.state.capturing = false
		a.state.promptArea.SetValue(speech.Append(a.state.promptArea.Value(), msg.text))
		return a, nil

	case captureErrMsg:
		a.state.capturing = false
		a.showError(msg.err)
		return a, nil

	case exportedMsg:
		a.state.status = "Saved " + msg.path
		return a, nil

	case statusMsg:
		a.state.status = string(msg)
		return a, nil

	case spinner.TickMsg:
		if !a.state.generating && !a.state.capturing {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd
	}

	// Forward everything else (cursor blink and the like) to the active input.
	if cmd := a.updateInputs(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch s := a.screen.(type) {
	case homeScreen:
		return a.handleHomeKey(msg)
	case categoryScreen, searchScreen:
		return a.handleListKey(msg)
	case editorScreen:
		return a.handleEditorKey(s, msg)
	case aiScreen:
		return a.handleAIKey(msg)
	case draftsScreen:
		return a.handleDraftsKey(msg)
	case faqScreen:
		if key.Matches(msg, keys.Back) {
			a.goBack(s.back)
		}
		return nil
	case helpScreen:
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Help) {
			a.goBack(s.back)
		}
		return nil
	case settingsScreen:
		return a.handleSettingsKey(s, msg)
	case setupScreen:
		return a.handleSetupKey(s, msg)
	}
	return nil
}

// updateInputs forwards non-key messages to whichever input is focused.
func (a *App) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.screen.(type) {
	case homeScreen, searchScreen, categoryScreen:
		a.state.searchInput, cmd = a.state.searchInput.Update(msg)
	case editorScreen:
		if a.state.editingField {
			a.state.fieldInput, cmd = a.state.fieldInput.Update(msg)
		} else {
			a.state.preview, cmd = a.state.preview.Update(msg)
		}
	case aiScreen:
		a.state.promptArea, cmd = a.state.promptArea.Update(msg)
	case setupScreen, settingsScreen:
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
	}
	return cmd
}

func (a *App) goBack(to screen) {
	if to == nil {
		to = homeScreen{}
	}
	a.screen = to
	if e, ok := to.(editorScreen); ok {
		a.refreshPreview(e.session)
	}
}

func (a *App) resize() {
	w := a.width - 8
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	a.state.preview.Width = w
	h := a.height - 16
	if h < 5 {
		h = 5
	}
	a.state.preview.Height = h
	a.state.promptArea.SetWidth(min(70, max(20, a.width-10)))
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if a.notice != nil {
		return a.renderNotice()
	}

	switch s := a.screen.(type) {
	case homeScreen:
		return a.renderHome()
	case categoryScreen:
		return a.renderList(string(s.category), a.catalog.ByCategory(s.category))
	case searchScreen:
		return a.renderList("Results for \""+s.query+"\"", a.catalog.Search(s.query))
	case editorScreen:
		return a.renderEditor(s)
	case aiScreen:
		return a.renderAI()
	case draftsScreen:
		return a.renderDrafts()
	case faqScreen:
		return a.renderFAQ(s)
	case helpScreen:
		return a.renderHelp()
	case settingsScreen:
		return a.renderSettings(s)
	case setupScreen:
		return a.renderSetup(s)
	default:
		return a.renderHome()
	}
}
