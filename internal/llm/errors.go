package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrMissingAPIKey = errors.New("no API key configured")
	ErrInvalidAPIKey = errors.New("API key was rejected")
	ErrEmptyResponse = errors.New("model returned no text")
	ErrTruncated     = errors.New("model stopped at its output limit")
)

// Truncated reports whether a provider finish reason means the reply hit
// the output token limit. Gemini says MAX_TOKENS, Anthropic max_tokens,
// OpenAI and Ollama length.
func Truncated(finishReason string) bool {
	switch strings.ToLower(finishReason) {
	case "max_tokens", "length":
		return true
	}
	return false
}

// StatusError is a non-2xx reply from a provider.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.Code, body)
}

// Unwrap lets callers test for ErrInvalidAPIKey with errors.Is.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden {
		return ErrInvalidAPIKey
	}
	if strings.Contains(e.Body, "API_KEY_INVALID") {
		return ErrInvalidAPIKey
	}
	return nil
}
