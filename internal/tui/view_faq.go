package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/patra/internal/catalog"
)

// generalFAQ is shown when no template is selected.
var generalFAQ = []catalog.FAQ{
	{
		Question: "Is this service free?",
		Answer:   "Yes. Every template, the drafts list and all exports are free. The AI writer uses your own provider key.",
	},
	{
		Question: "Can I write my request in Hinglish?",
		Answer:   "Yes. Requests like \"bank ko cheque book ke liye letter\" work. Write in Devanagari to get the letter in Hindi.",
	},
	{
		Question: "Does PDF export support Hindi?",
		Answer:   "Yes. Letters are laid out as A4 pages with a Devanagari font, so Hindi text prints correctly.",
	},
	{
		Question: "Where are my drafts kept?",
		Answer:   "On this computer only, in the patra config directory.",
	},
}

func faqMarkdown(title string, faqs []catalog.FAQ) string {
	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	for _, f := range faqs {
		b.WriteString("### " + f.Question + "\n\n")
		b.WriteString(f.Answer + "\n\n")
	}
	return b.String()
}

func (a *App) renderFAQ(s faqScreen) string {
	title, faqs := s.title, s.faqs
	if len(faqs) == 0 {
		title, faqs = "Frequently asked questions", generalFAQ
	} else {
		title = "FAQ: " + title
	}

	width := min(80, max(30, a.width-8))
	var b strings.Builder
	body := renderMarkdown(faqMarkdown(title, faqs), width)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, body))
	b.WriteString("\n\n")
	b.WriteString(a.statusLine("[Esc] Back"))

	return a.centerVertically(b.String())
}
