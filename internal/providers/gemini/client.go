package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/finchlabs/finchbot/internal/config"
	"github.com/finchlabs/finchbot/internal/core"
)

// Client talks to the Gemini REST API. It implements both core.Embedder and
// core.Generator.
type Client struct {
	http       *http.Client
	baseURL    string
	apiKey     string
	embedModel string
	chatModel  string
}

func NewClient(cfg *config.GeminiConfig) *Client {
	return &Client{
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		embedModel: cfg.EmbedModel,
		chatModel:  cfg.ChatModel,
	}
}

func (c *Client) doRequest(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, categorizeStatus(resp.StatusCode, payload)
	}
	return payload, nil
}

// categorizeStatus maps upstream HTTP failures to the core sentinel errors so
// callers can pick a user-facing reply without parsing provider messages.
func categorizeStatus(status int, body []byte) error {
	switch status {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: http %d: %s", core.ErrRateLimited, status, truncate(body))
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: http %d: %s", core.ErrUnauthorized, status, truncate(body))
	default:
		return fmt.Errorf("http %d: %s", status, truncate(body))
	}
}

func truncate(body []byte) string {
	const maxLen = 512
	if len(body) <= maxLen {
		return string(body)
	}
	return string(body[:maxLen]) + "..."
}
