// Package intent turns a free-form letter request into something the writer
// can act on.
package intent

import "github.com/sant0-9/patra/internal/catalog"

// Intent is a cleaned-up letter request.
type Intent struct {
	// Request is the user's text, trimmed.
	Request string
	// Language is the script the request was typed in.
	Language catalog.Language
	// Category is a best guess from keywords; General when nothing matched.
	Category catalog.Category
}
