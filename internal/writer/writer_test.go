package writer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/patra/internal/catalog"
	"github.com/sant0-9/patra/internal/intent"
	"github.com/sant0-9/patra/internal/llm"
)

type fakeProvider struct {
	content string
	finish  string
	err     error
	block   bool
	last    *llm.CompletionRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Ping(ctx context.Context) error { return nil }

func (f *fakeProvider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.last = req
	if f.block {
		<-ctx.Done()
		return nil, fmt.Errorf("fake request failed: %w", ctx.Err())
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.content, FinishReason: f.finish}, nil
}

func TestGenerateEnglish(t *testing.T) {
	p := &fakeProvider{content: "To,\nThe Manager,\n[Bank Name]\n\nRespected Sir,"}
	w := NewWriter(p, "m", 0, nil)

	tmpl, err := w.Generate(context.Background(), "  Bank account close application ")
	require.NoError(t, err)

	assert.True(t, tmpl.Generated())
	assert.True(t, strings.HasPrefix(tmpl.ID, catalog.GeneratedPrefix))
	assert.Equal(t, GeneratedTitle, tmpl.Title)
	assert.Equal(t, catalog.Banking, tmpl.Category)
	assert.Equal(t, p.content, tmpl.EnglishBody)
	assert.Empty(t, tmpl.HindiBody)
	assert.Empty(t, tmpl.Tags)
	assert.Empty(t, tmpl.FAQs)

	require.NotNil(t, p.last)
	assert.Contains(t, p.last.System, "write in English")
	assert.Equal(t, "User request: Bank account close application", p.last.Messages[0].Content)
	assert.InDelta(t, 0.7, p.last.Temperature, 1e-9)
}

func TestGenerateHindiAndFence(t *testing.T) {
	p := &fakeProvider{content: "```text\nसेवा में,\n[नाम]\n```"}
	w := NewWriter(p, "m", 0, nil)

	tmpl, err := w.Generate(context.Background(), "बिजली बिल सुधार")
	require.NoError(t, err)
	assert.Equal(t, "सेवा में,\n[नाम]", tmpl.HindiBody)
	assert.Empty(t, tmpl.EnglishBody)
	assert.Contains(t, p.last.System, "Hindi")
}

func TestGenerateIDsAreUnique(t *testing.T) {
	w := NewWriter(&fakeProvider{content: "x"}, "m", 0, nil)
	a, err := w.Generate(context.Background(), "a letter")
	require.NoError(t, err)
	b, err := w.Generate(context.Background(), "a letter")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name          string
		provider      *fakeProvider
		wantKind      Kind
		wantRetryable bool
	}{
		{name: "rejected key", provider: &fakeProvider{err: fmt.Errorf("gemini: %w", llm.ErrInvalidAPIKey)}, wantKind: KindInvalidCredential},
		{name: "missing key", provider: &fakeProvider{err: llm.ErrMissingAPIKey}, wantKind: KindMissingCredential},
		{name: "empty from provider", provider: &fakeProvider{err: llm.ErrEmptyResponse}, wantKind: KindEmptyResponse},
		{name: "whitespace only", provider: &fakeProvider{content: " \n "}, wantKind: KindEmptyResponse},
		{name: "fence only", provider: &fakeProvider{content: "```\n```"}, wantKind: KindEmptyResponse},
		{name: "network", provider: &fakeProvider{err: errors.New("dial tcp: connection refused")}, wantKind: KindUnavailable, wantRetryable: true},
		{name: "timeout", provider: &fakeProvider{block: true}, wantKind: KindTimeout, wantRetryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(tt.provider, "m", 20*time.Millisecond, nil)
			request := "Complaint about stray dogs"

			tmpl, err := w.Generate(context.Background(), request)
			assert.Nil(t, tmpl)

			var werr *Error
			require.ErrorAs(t, err, &werr)
			assert.Equal(t, tt.wantKind, werr.Kind)
			assert.Equal(t, tt.wantRetryable, werr.Retryable())
			assert.NotEmpty(t, werr.Message())
			assert.Equal(t, "Complaint about stray dogs", request)
		})
	}
}

func TestGenerateWithoutProvider(t *testing.T) {
	w := NewWriter(nil, "", 0, nil)
	assert.False(t, w.Available())

	_, err := w.Generate(context.Background(), "leave letter")
	var werr *Error
	require.ErrorAs(t, err, &werr)
	assert.True(t, werr.NeedsCredential())
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
}

func TestGenerateRejectsBlankRequest(t *testing.T) {
	p := &fakeProvider{content: "x"}
	_, err := NewWriter(p, "m", 0, nil).Generate(context.Background(), "   ")
	assert.ErrorIs(t, err, intent.ErrEmptyRequest)
	assert.Nil(t, p.last, "provider not called")
}

func TestCleanBody(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Dear Sir  ", "Dear Sir"},
		{"```\nDear Sir\n```", "Dear Sir"},
		{"```markdown\nDear Sir\n```\n", "Dear Sir"},
		{"```", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanBody(tt.in), tt.in)
	}
}

func TestGenerateTruncatedLetter(t *testing.T) {
	p := &fakeProvider{content: "To,\nThe Principal,\nRespected", finish: "MAX_TOKENS"}
	w := NewWriter(p, "m", 0, nil)

	tmpl, err := w.Generate(context.Background(), "leave application for two days")
	assert.Nil(t, tmpl)

	var werr *Error
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, KindEmptyResponse, werr.Kind)
	assert.ErrorIs(t, err, llm.ErrTruncated)
	assert.Contains(t, werr.Message(), "stopped before finishing")
}
