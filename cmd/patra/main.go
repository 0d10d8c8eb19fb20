package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sant0-9/patra/internal/catalog"
	"github.com/sant0-9/patra/internal/config"
	"github.com/sant0-9/patra/internal/document"
	"github.com/sant0-9/patra/internal/drafts"
	"github.com/sant0-9/patra/internal/logging"
	"github.com/sant0-9/patra/internal/speech"
	"github.com/sant0-9/patra/internal/tui"
)

var version = "dev"

// env is everything a run of patra needs, built once from the config.
type env struct {
	cfg        *config.Config
	needsSetup bool
	logger     *zap.Logger
	catalog    *catalog.Catalog
	book       *drafts.Book
	draftsPath string
	// draftsErr is set when the drafts file could not be read; book is then
	// an empty in-memory list.
	draftsErr error
	exporter  *document.Exporter
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	needsSetup := cfg == nil
	if needsSetup {
		cfg = config.DefaultConfig()
	}

	logPath, err := cfg.LogFile()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	templatesDir, err := cfg.UserTemplatesDir()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.LoadWithUser(templatesDir, logger)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	draftsPath, err := cfg.DraftsFile()
	if err != nil {
		return nil, err
	}
	store := drafts.NewFileStore(draftsPath)
	book, draftsErr := drafts.OpenOrEmpty(store, logger)

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	return &env{
		cfg:        cfg,
		needsSetup: needsSetup,
		logger:     logger,
		catalog:    cat,
		book:       book,
		draftsPath: store.Path(),
		draftsErr:  draftsErr,
		exporter: &document.Exporter{
			Dir: cwd,
			PDF: &document.PDFExporter{},
		},
	}, nil
}

func main() {
	e, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		code := runCommand(e, os.Args[1:], os.Stdout, os.Stderr)
		_ = e.logger.Sync()
		os.Exit(code)
	}

	var capturer speech.Capturer
	if c, ok := speech.Detect(e.cfg.Speech); ok {
		capturer = c
	}

	app := tui.NewApp(tui.Deps{
		Config:     e.cfg,
		NeedsSetup: e.needsSetup,
		Catalog:    e.catalog,
		Book:       e.book,
		Exporter:   e.exporter,
		DraftsErr:  e.draftsErr,
		Speech:     capturer,
		Logger:     e.logger,
	})
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)

	e.logger.Info("patra started", zap.String("version", version), zap.Int("templates", e.catalog.Len()))
	_, err = p.Run()
	_ = e.logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
