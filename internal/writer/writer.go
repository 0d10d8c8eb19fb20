// Package writer turns a free-form request into a letter template using an
// LLM provider.
package writer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sant0-9/patra/internal/catalog"
	"github.com/sant0-9/patra/internal/intent"
	"github.com/sant0-9/patra/internal/llm"
	"github.com/sant0-9/patra/internal/logging"
	"github.com/sant0-9/patra/internal/prompts"
)

const (
	DefaultTimeout = 60 * time.Second
	// GeneratedTitle is the title given to every AI-written letter.
	GeneratedTitle = "Custom AI Letter"
)

// Writer generates letters from free-form requests
type Writer struct {
	provider llm.Provider
	model    string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewWriter creates a writer. A nil provider is allowed: every Generate call
// then fails with KindMissingCredential, which lets the UI ask for a key.
func NewWriter(provider llm.Provider, model string, timeout time.Duration, logger *zap.Logger) *Writer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Writer{
		provider: provider,
		model:    model,
		timeout:  timeout,
		logger:   logging.OrNop(logger),
	}
}

// Available reports whether a provider is configured.
func (w *Writer) Available() bool {
	return w.provider != nil
}

// Generate writes a letter for request. The result has a body only in the
// language the request was typed in.
func (w *Writer) Generate(ctx context.Context, request string) (*catalog.Template, error) {
	in, err := intent.Parse(request)
	if err != nil {
		return nil, err
	}
	if w.provider == nil {
		return nil, &Error{Kind: KindMissingCredential, Err: llm.ErrMissingAPIKey}
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	req := llm.NewRequest(w.model, prompts.BuildLetterPrompt(in.Language), prompts.BuildLetterRequest(in.Request))

	start := time.Now()
	resp, err := w.provider.Complete(ctx, req)
	if err != nil {
		werr := classify(ctx, err)
		w.logger.Warn("letter generation failed",
			zap.String("provider", w.provider.Name()),
			zap.String("kind", werr.Kind.String()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, werr
	}

	if llm.Truncated(resp.FinishReason) {
		w.logger.Warn("letter cut off at output limit",
			zap.String("provider", w.provider.Name()),
			zap.String("finish_reason", resp.FinishReason),
			zap.Int("tokens", resp.Usage.TotalTokens))
		return nil, &Error{Kind: KindEmptyResponse, Err: llm.ErrTruncated}
	}

	body := cleanBody(resp.Content)
	if body == "" {
		return nil, &Error{Kind: KindEmptyResponse, Err: llm.ErrEmptyResponse}
	}

	w.logger.Info("letter generated",
		zap.String("provider", w.provider.Name()),
		zap.String("language", string(in.Language)),
		zap.Int("tokens", resp.Usage.TotalTokens),
		zap.Duration("elapsed", time.Since(start)))

	t := &catalog.Template{
		ID:       catalog.GeneratedPrefix + uuid.NewString(),
		Title:    GeneratedTitle,
		Category: in.Category,
	}
	if in.Language == catalog.Hindi {
		t.HindiBody = body
	} else {
		t.EnglishBody = body
	}
	return t, nil
}

func classify(ctx context.Context, err error) *Error {
	var kind Kind
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		kind = KindMissingCredential
	case errors.Is(err, llm.ErrInvalidAPIKey):
		kind = KindInvalidCredential
	case errors.Is(err, llm.ErrEmptyResponse):
		kind = KindEmptyResponse
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		kind = KindTimeout
	default:
		kind = KindUnavailable
	}
	return &Error{Kind: kind, Err: err}
}

// cleanBody trims whitespace and a surrounding markdown code fence.
func cleanBody(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i >= 0 {
			s = s[i+1:]
		} else {
			s = ""
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
