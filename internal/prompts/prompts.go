// Package prompts holds the system instructions sent to the model.
package prompts

import (
	_ "embed"
	"strings"

	"github.com/sant0-9/patra/internal/catalog"
)

//go:embed letter.md
var letterBase string

const languageSlot = "{{LANGUAGE}}"

// BuildLetterPrompt returns the letter-writing instruction for lang.
func BuildLetterPrompt(lang catalog.Language) string {
	name := "English"
	if lang == catalog.Hindi {
		name = "Hindi (Devanagari script)"
	}
	return strings.ReplaceAll(strings.TrimSpace(letterBase), languageSlot, name)
}

// BuildLetterRequest wraps the user's request as the single user turn.
func BuildLetterRequest(request string) string {
	return "User request: " + strings.TrimSpace(request)
}
