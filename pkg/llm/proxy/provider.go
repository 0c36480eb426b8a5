// Package proxy talks to the store's hosted chat function, which holds the
// model credentials and prompt on the server side.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront-be/pkg/llm"
)

const chatPath = "/functions/v1/gemini-chat"

type ProxyProvider struct {
	endpoint string
	anonKey  string
	apiKey   string
	client   *http.Client
}

var _ llm.LLMProvider = &ProxyProvider{}

func NewProxyProvider(storeURL, anonKey, apiKey string, timeout time.Duration) *ProxyProvider {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ProxyProvider{
		endpoint: strings.TrimRight(storeURL, "/") + chatPath,
		anonKey:  anonKey,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Message             string        `json:"message"`
	ConversationHistory []llm.Message `json:"conversationHistory"`
	ApiKey              string        `json:"apiKey"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error,omitempty"`
}

// Chat sends the last message of history as the question and everything before it as context.
// Options are ignored; the function picks its own model.
func (p *ProxyProvider) Chat(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	if len(history) == 0 {
		return "", errors.New("proxy: empty history")
	}

	last := history[len(history)-1]
	prior := make([]llm.Message, 0, len(history)-1)
	prior = append(prior, history[:len(history)-1]...)

	payload, err := json.Marshal(chatRequest{
		Message:             last.Content,
		ConversationHistory: prior,
		ApiKey:              p.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.anonKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("proxy request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("proxy error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if out.Reply == "" {
		if out.Error != "" {
			return "", fmt.Errorf("proxy error: %s", out.Error)
		}
		return "", errors.New("proxy: empty reply")
	}

	return out.Reply, nil
}

func (p *ProxyProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
