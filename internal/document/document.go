// Package document exports a finished letter as text, HTML or PDF.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/sant0-9/patra/internal/catalog"
)

// Document is a rendered letter ready to leave the app.
type Document struct {
	Title    string
	Text     string
	Language catalog.Language
}

func New(title, text string, lang catalog.Language) *Document {
	return &Document{Title: title, Text: text, Language: lang}
}

// WordCount counts whitespace separated words.
func (d *Document) WordCount() int {
	return len(strings.Fields(d.Text))
}

// SizeHuman returns the UTF-8 size of the text in human-readable form.
func (d *Document) SizeHuman() string {
	bytes := len(d.Text)
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
}

// FileName derives an export file name from the title, replacing runs of
// whitespace with underscores and dropping path separators.
func (d *Document) FileName(ext string) string {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = "letter"
	}
	var b strings.Builder
	space := false
	for _, r := range title {
		switch {
		case unicode.IsSpace(r):
			if !space {
				b.WriteByte('_')
			}
			space = true
			continue
		case r == '/' || r == '\\' || r == ':':
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return b.String() + "." + strings.TrimPrefix(ext, ".")
}

// WriteText saves the letter as UTF-8 text.
func (d *Document) WriteText(path string) error {
	return writeFile(path, []byte(strings.TrimRight(d.Text, "\n")+"\n"))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
