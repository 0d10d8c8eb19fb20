package tui

import (
	"github.com/sant0-9/patra/internal/catalog"
	"github.com/sant0-9/patra/internal/session"
)

// screen is the closed set of views the app can show. Each variant carries
// exactly the data it needs, so an editor without a session cannot exist.
type screen interface {
	isScreen()
}

type homeScreen struct{}

type categoryScreen struct {
	category catalog.Category
}

type searchScreen struct {
	query string
}

type editorScreen struct {
	session *session.Session
	back    screen
}

type aiScreen struct{}

type draftsScreen struct{}

type faqScreen struct {
	// title and faqs are set when showing a template's FAQ; otherwise the
	// general FAQ is shown.
	title string
	faqs  []catalog.FAQ
	back  screen
}

type settingsMode int

const (
	settingsMain settingsMode = iota
	settingsProvider
	settingsModel
	settingsAPIKey
)

type settingsScreen struct {
	mode settingsMode
}

type setupScreen struct {
	step int
}

type helpScreen struct {
	back screen
}

func (homeScreen) isScreen()     {}
func (categoryScreen) isScreen() {}
func (searchScreen) isScreen()   {}
func (editorScreen) isScreen()   {}
func (aiScreen) isScreen()       {}
func (draftsScreen) isScreen()   {}
func (faqScreen) isScreen()      {}
func (settingsScreen) isScreen() {}
func (setupScreen) isScreen()    {}
func (helpScreen) isScreen()     {}

func newEditor(s *session.Session, back screen) editorScreen {
	if back == nil {
		back = homeScreen{}
	}
	return editorScreen{session: s, back: back}
}
