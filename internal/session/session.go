// Package session holds the editor state for one letter: the active
// template, the active language and the values typed into its fields.
package session

import (
	"time"

	"github.com/sant0-9/patra/internal/catalog"
	"github.com/sant0-9/patra/internal/drafts"
	"github.com/sant0-9/patra/internal/placeholder"
)

// Session is the (template, language) pair being edited plus its form values.
// The placeholder set always reflects the active body only.
type Session struct {
	tmpl   catalog.Template
	lang   catalog.Language
	names  []string
	values map[string]string
}

func New(t catalog.Template, lang catalog.Language) *Session {
	if lang != catalog.Hindi {
		lang = catalog.English
	}
	s := &Session{tmpl: t, lang: lang}
	s.derive()
	return s
}

// SelectTemplate switches to t, keeping values for field names it shares
// with the previous body.
func (s *Session) SelectTemplate(t catalog.Template) {
	s.tmpl = t
	s.derive()
}

// SetLanguage switches the active body.
func (s *Session) SetLanguage(lang catalog.Language) {
	if lang != catalog.Hindi {
		lang = catalog.English
	}
	s.lang = lang
	s.derive()
}

// ToggleLanguage flips between English and Hindi.
func (s *Session) ToggleLanguage() {
	s.SetLanguage(s.lang.Other())
}

func (s *Session) derive() {
	s.names = placeholder.Extract(s.tmpl.Body(s.lang))
	s.values = placeholder.Reconcile(s.values, s.names)
}

// Set records value for name. Names outside the current set are ignored.
func (s *Session) Set(name, value string) bool {
	if _, ok := s.values[name]; !ok {
		return false
	}
	s.values[name] = value
	return true
}

func (s *Session) Template() catalog.Template { return s.tmpl }
func (s *Session) Language() catalog.Language { return s.lang }
func (s *Session) Body() string               { return s.tmpl.Body(s.lang) }
func (s *Session) Value(name string) string   { return s.values[name] }

func (s *Session) Placeholders() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Session) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Render returns the letter with filled fields substituted.
func (s *Session) Render() string {
	return placeholder.Render(s.Body(), s.names, s.values)
}

func (s *Session) Missing() []string {
	return placeholder.Missing(s.names, s.values)
}

func (s *Session) Complete() bool {
	return len(s.Missing()) == 0
}

// Snapshot freezes the rendered letter as a draft. Generated templates are
// recorded without a template id.
func (s *Session) Snapshot(now time.Time) drafts.Draft {
	var templateID *string
	if !s.tmpl.Generated() && s.tmpl.ID != "" {
		id := s.tmpl.ID
		templateID = &id
	}
	return drafts.New(templateID, s.tmpl.Title, s.Render(), s.lang, now)
}
