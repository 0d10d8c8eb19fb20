package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/patra/internal/config"
)

func TestGeminiComplete(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "k-123", r.Header.Get("x-goog-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "To,\n"}, {"text": "[Name]"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 10, "candidatesTokenCount": 5, "totalTokenCount": 15}
		}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("k-123", "", srv.URL)
	resp, err := p.Complete(context.Background(), NewRequest("", "be formal", "leave letter"))
	require.NoError(t, err)

	assert.Equal(t, "To,\n[Name]", resp.Content)
	assert.Equal(t, "STOP", resp.FinishReason)
	assert.Equal(t, 15, resp.Usage.TotalTokens)

	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "be formal", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "leave letter", got.Contents[0].Parts[0].Text)
	assert.InDelta(t, 0.7, got.GenerationConfig.Temperature, 1e-9)
}

func TestGeminiSendsNoOutputCap(t *testing.T) {
	var got map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	_, err := NewGeminiProvider("k", "", srv.URL).Complete(context.Background(), NewRequest("", "", "letter"))
	require.NoError(t, err)
	require.Contains(t, got, "generationConfig")
	var cfg map[string]any
	require.NoError(t, json.Unmarshal(got["generationConfig"], &cfg))
	assert.Contains(t, cfg, "temperature")
	assert.NotContains(t, cfg, "maxOutputTokens")
}

func TestTruncated(t *testing.T) {
	tests := []struct {
		reason string
		want   bool
	}{
		{reason: "MAX_TOKENS", want: true},
		{reason: "max_tokens", want: true},
		{reason: "length", want: true},
		{reason: "STOP", want: false},
		{reason: "end_turn", want: false},
		{reason: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncated(tt.reason))
		})
	}
}

func TestGeminiErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "invalid key",
			status:  http.StatusBadRequest,
			body:    `{"error":{"code":400,"status":"INVALID_ARGUMENT","details":[{"reason":"API_KEY_INVALID"}]}}`,
			wantErr: ErrInvalidAPIKey,
		},
		{name: "forbidden", status: http.StatusForbidden, body: `{}`, wantErr: ErrInvalidAPIKey},
		{name: "blocked prompt", status: http.StatusOK, body: `{"promptFeedback":{"blockReason":"SAFETY"}}`, wantErr: ErrEmptyResponse},
		{name: "blank text", status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`, wantErr: ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGeminiProvider("bad", "", srv.URL).Complete(context.Background(), NewRequest("", "s", "u"))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestServerErrorIsNotCredentialError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewGeminiProvider("k", "", srv.URL).Complete(context.Background(), NewRequest("", "s", "u"))
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.NotErrorIs(t, err, ErrInvalidAPIKey)
}

func TestOpenAICompatibleComplete(t *testing.T) {
	var got openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-1", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Respected Sir,"},"finish_reason":"stop"}],"usage":{"total_tokens":7}}`))
	}))
	defer srv.Close()

	p := NewOpenAICompatible("custom", srv.URL+"/", "sk-1", "m-1")
	assert.Equal(t, "custom", p.Name())

	resp, err := p.Complete(context.Background(), NewRequest("", "sys", "hello"))
	require.NoError(t, err)
	assert.Equal(t, "Respected Sir,", resp.Content)
	assert.Equal(t, 7, resp.Usage.TotalTokens)

	assert.Equal(t, "m-1", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openAIMessage{Role: "system", Content: "sys"}, got.Messages[0])
	assert.Equal(t, openAIMessage{Role: "user", Content: "hello"}, got.Messages[1])
}

func TestOpenAIUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := NewOpenAICompatible("openai", srv.URL, "nope", "").Ping(context.Background())
	assert.ErrorIs(t, err, ErrInvalidAPIKey)
}

func TestOllamaComplete(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"model":"llama3.1:8b","message":{"role":"assistant","content":"सेवा में"},"done":true,"done_reason":"stop","prompt_eval_count":3,"eval_count":4}`))
	}))
	defer srv.Close()

	resp, err := NewOllamaProvider(srv.URL, "").Complete(context.Background(), NewRequest("", "sys", "hi"))
	require.NoError(t, err)
	assert.Equal(t, "सेवा में", resp.Content)
	assert.Equal(t, 7, resp.Usage.TotalTokens)
	assert.False(t, got.Stream)
	assert.Equal(t, "system", got.Messages[0].Role)
}

func TestNewProvider(t *testing.T) {
	t.Setenv("PATRA_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
		wantErr  error
	}{
		{name: "gemini with key", cfg: config.Config{Provider: "gemini", APIKey: "k"}, wantName: "gemini"},
		{name: "gemini without key", cfg: config.Config{Provider: "gemini"}, wantErr: ErrMissingAPIKey},
		{name: "openai without key", cfg: config.Config{Provider: "openai"}, wantErr: ErrMissingAPIKey},
		{name: "groq", cfg: config.Config{Provider: "groq", APIKey: "k"}, wantName: "groq"},
		{name: "openrouter", cfg: config.Config{Provider: "openrouter", APIKey: "k"}, wantName: "openrouter"},
		{name: "anthropic", cfg: config.Config{Provider: "anthropic", APIKey: "k"}, wantName: "anthropic"},
		{name: "ollama needs no key", cfg: config.Config{Provider: "ollama"}, wantName: "ollama"},
		{name: "custom", cfg: config.Config{Provider: "custom", BaseURL: "http://localhost:1234/v1"}, wantName: "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			p, err := NewProvider(&cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}

	_, err := NewProvider(&config.Config{Provider: "custom"})
	assert.ErrorContains(t, err, "base_url")
	_, err = NewProvider(&config.Config{Provider: "mystery"})
	assert.ErrorContains(t, err, "unknown provider")
}

func TestNewProviderUsesEnvKey(t *testing.T) {
	t.Setenv("PATRA_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "from-env")

	p, err := NewProvider(&config.Config{Provider: "gemini"})
	require.NoError(t, err)
	assert.Equal(t, "from-env", p.(*GeminiProvider).apiKey)

	p, err = NewProvider(&config.Config{Provider: "gemini", APIKey: "typed"})
	require.NoError(t, err)
	assert.Equal(t, "typed", p.(*GeminiProvider).apiKey)
}
