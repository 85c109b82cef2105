package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/echomap/echomap/internal/config"
)

// ErrNoCredentials is returned when the configured provider requires an API
// key and none is set. Callers treat it like any other remote failure and
// switch to the keyword fallbacks.
var ErrNoCredentials = fmt.Errorf("no API key configured for llm provider")

// NewClient builds an LLMClient for the configured provider. A missing
// provider is not an error: the pipeline runs fully on its deterministic
// fallbacks, so callers may pass the returned nil client around.
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "":
		return nil, nil

	case "openai":
		if cfg.APIKey == "" {
			return nil, ErrNoCredentials
		}
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "claude":
		if cfg.APIKey == "" {
			return nil, ErrNoCredentials
		}
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		if cfg.APIKey == "" {
			return nil, ErrNoCredentials
		}
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)

	case "ollama":
		// Ollama speaks the OpenAI chat API under /v1. The key is ignored
		// server-side but the client config requires one.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAIClient(apiKey, cfg.Model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
