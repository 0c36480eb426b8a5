package factory

import (
	"context"
	"fmt"
	"time"

	"storefront-be/pkg/llm"
	"storefront-be/pkg/llm/ollama"
	"storefront-be/pkg/llm/proxy"
)

type Settings struct {
	Provider      string // "proxy" or "ollama"
	Model         string
	OllamaBaseURL string
	StoreURL      string
	StoreAnonKey  string
	ApiKey        string
	Timeout       time.Duration
}

func NewLLMProvider(s Settings) (llm.LLMProvider, error) {
	switch s.Provider {
	case "", "proxy":
		if s.StoreURL == "" {
			return nil, fmt.Errorf("proxy provider requires STORE_URL")
		}
		return proxy.NewProxyProvider(s.StoreURL, s.StoreAnonKey, s.ApiKey, s.Timeout), nil
	case "ollama":
		baseURL := s.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, s.Model, s.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}

// Unavailable stands in when no provider could be configured; every call fails with err,
// so the assistant answers with its apology instead of the service refusing to start.
func Unavailable(err error) llm.LLMProvider {
	return unavailableProvider{err: err}
}

type unavailableProvider struct {
	err error
}

func (p unavailableProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", p.err
}

func (p unavailableProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return "", p.err
}
