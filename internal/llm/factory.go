package llm

import (
	"fmt"

	"github.com/sant0-9/patra/internal/config"
)

// NewProvider creates a provider from config. The API key is resolved with
// config.EffectiveAPIKey, so a key typed by the user beats the environment.
func NewProvider(cfg *config.Config) (Provider, error) {
	key := cfg.EffectiveAPIKey()
	if info := config.GetProvider(cfg.Provider); info != nil && info.NeedsAPIKey && key == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrMissingAPIKey)
	}

	switch cfg.Provider {
	case "gemini", "":
		if key == "" {
			return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
		}
		return NewGeminiProvider(key, cfg.Model, cfg.BaseURL), nil

	case "ollama":
		return NewOllamaProvider(cfg.BaseURL, cfg.Model), nil

	case "groq":
		return NewGroqProvider(key, cfg.Model), nil

	case "openai":
		return NewOpenAIProvider(key, cfg.Model), nil

	case "anthropic":
		return NewAnthropicProvider(key, cfg.Model), nil

	case "openrouter":
		return NewOpenRouterProvider(key, cfg.Model), nil

	case "custom":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewOpenAICompatible("custom", cfg.BaseURL, key, cfg.Model), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
