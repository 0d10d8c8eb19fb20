package writer

import (
	"errors"

	"github.com/sant0-9/patra/internal/llm"
)

// Kind classifies why generation failed.
type Kind int

const (
	KindUnavailable Kind = iota
	KindMissingCredential
	KindInvalidCredential
	KindTimeout
	KindEmptyResponse
)

func (k Kind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing_credential"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindTimeout:
		return "timeout"
	case KindEmptyResponse:
		return "empty_response"
	default:
		return "unavailable"
	}
}

// Error is returned by Generate for every provider-side failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "generate letter: " + e.Kind.String()
	}
	return "generate letter: " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable is true when the same request may succeed if sent again.
func (e *Error) Retryable() bool {
	return e.Kind == KindTimeout || e.Kind == KindUnavailable
}

// NeedsCredential is true when the user should enter a different API key.
func (e *Error) NeedsCredential() bool {
	return e.Kind == KindMissingCredential || e.Kind == KindInvalidCredential
}

// Message is a short, actionable line for the user.
func (e *Error) Message() string {
	switch e.Kind {
	case KindMissingCredential:
		return "No API key is set. Add one in settings to use the AI writer."
	case KindInvalidCredential:
		return "The API key was rejected. Check it in settings and try again."
	case KindTimeout:
		return "The AI service took too long to answer. Try again in a moment."
	case KindEmptyResponse:
		if errors.Is(e.Err, llm.ErrTruncated) {
			return "The AI stopped before finishing the letter. Try a shorter or simpler request."
		}
		return "The AI returned an empty letter. Try rephrasing your request."
	default:
		return "Could not reach the AI service. Check your connection and try again."
	}
}
