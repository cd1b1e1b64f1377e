// Package anthropic provides the secondary-style chat-completion adapter.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/synapse-ai/llm-gateway/internal/domain/models"
	"github.com/synapse-ai/llm-gateway/internal/services/providers"
)

const (
	defaultBaseURL   = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"
)

// Config holds the configuration for the Anthropic adapter.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxTokens  int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client implements the providers.Provider interface for the Anthropic
// Messages API. The backend disallows system-role entries interleaved with
// the conversation, so the system instruction is sent as a dedicated field
// and system messages are excluded from the message list.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new Anthropic adapter.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
	}, nil
}

// Name identifies the backend.
func (c *Client) Name() models.Provider {
	return models.ProviderAnthropic
}

// Send performs one chat-completion call against the Anthropic Messages API.
func (c *Client) Send(ctx context.Context, req *providers.Request) (*providers.RawResult, error) {
	payload := c.buildPayload(req)

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return nil, providers.NewPermanentError(c.Name(), 0, fmt.Sprintf("marshal payload: %v", err), err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/messages"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, buf)
	if err != nil {
		return nil, providers.NewPermanentError(c.Name(), 0, fmt.Sprintf("create request: %v", err), err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", c.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, providers.ClassifyTransport(c.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, providers.ClassifyStatus(c.Name(), resp.StatusCode, string(data))
	}

	var message messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&message); err != nil {
		return nil, providers.NewTransientError(c.Name(), resp.StatusCode, fmt.Sprintf("decode response: %v", err), err)
	}

	model := message.Model
	if model == "" {
		model = payload.Model
	}

	return &providers.RawResult{
		Content: message.JoinText(),
		Model:   model,
		Usage: models.Usage{
			InputTokens:  message.Usage.InputTokens,
			OutputTokens: message.Usage.OutputTokens,
			TotalTokens:  message.Usage.InputTokens + message.Usage.OutputTokens,
		},
		StopReason: message.StopReason,
	}, nil
}

func (c *Client) buildPayload(req *providers.Request) *messagesRequest {
	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxTokens
	}

	system, rest := providers.SplitSystem(req.Messages, req.System)

	messages := make([]anthropicMessage, len(rest))
	for i, msg := range rest {
		messages[i] = anthropicMessage{Role: string(msg.Role), Content: msg.Content}
	}

	payload := &messagesRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: maxTokens,
		System:    system,
	}
	if req.Temperature != nil {
		payload.Temperature = req.Temperature
	}
	return payload
}
