package intent

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sant0-9/patra/internal/catalog"
)

var ErrEmptyRequest = errors.New("describe the letter you need")

const (
	devanagariFirst = 'ऀ'
	devanagariLast  = 'ॿ'
)

// Parse trims text and detects its language. Any Devanagari code point makes
// the request Hindi.
func Parse(text string) (*Intent, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyRequest
	}

	lang := catalog.English
	if HasDevanagari(text) {
		lang = catalog.Hindi
	}

	return &Intent{
		Request:  text,
		Language: lang,
		Category: guessCategory(text),
	}, nil
}

func HasDevanagari(s string) bool {
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r >= devanagariFirst && r <= devanagariLast {
			return true
		}
		s = s[size:]
	}
	return false
}

var categoryKeywords = []struct {
	category catalog.Category
	words    []string
}{
	{catalog.Banking, []string{"bank", "account", "cheque", "atm", "loan", "बैंक", "खाता"}},
	{catalog.Police, []string{"police", "fir", "stolen", "theft", "lost", "पुलिस", "चोरी"}},
	{catalog.Utility, []string{"electricity", "bill", "water", "meter", "gas", "bijli", "बिजली", "पानी"}},
	{catalog.School, []string{"school", "teacher", "principal", "leave", "tc", "विद्यालय", "प्रधानाचार्य"}},
	{catalog.Job, []string{"job", "resign", "office", "salary", "manager", "नौकरी", "इस्तीफा"}},
}

// guessCategory picks the first category with a keyword in text. Keywords
// longer than three bytes also match as word prefixes ("banking", "bills").
func guessCategory(text string) catalog.Category {
	lower := strings.ToLower(text)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '\n' || r == '\t'
	})
	for _, entry := range categoryKeywords {
		for _, kw := range entry.words {
			for _, w := range words {
				if w == kw || (len(kw) > 3 && strings.HasPrefix(w, kw)) {
					return entry.category
				}
			}
		}
	}
	return catalog.General
}
