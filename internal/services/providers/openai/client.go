// Package openai provides the primary-style chat-completion adapter.
package openai

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

const defaultBaseURL = "https://api.openai.com/v1"

// Config holds the configuration for the OpenAI adapter.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client implements the providers.Provider interface for the OpenAI
// chat-completions API. System messages stay inline in the message list.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new OpenAI adapter.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
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
	return models.ProviderOpenAI
}

// Send performs one chat-completion call against the OpenAI API.
func (c *Client) Send(ctx context.Context, req *providers.Request) (*providers.RawResult, error) {
	payload := c.buildPayload(req)

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return nil, providers.NewPermanentError(c.Name(), 0, fmt.Sprintf("marshal payload: %v", err), err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, buf)
	if err != nil {
		return nil, providers.NewPermanentError(c.Name(), 0, fmt.Sprintf("create request: %v", err), err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, providers.ClassifyTransport(c.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, providers.ClassifyStatus(c.Name(), resp.StatusCode, string(data))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, providers.NewTransientError(c.Name(), resp.StatusCode, fmt.Sprintf("decode response: %v", err), err)
	}
	if len(completion.Choices) == 0 {
		return nil, providers.NewTransientError(c.Name(), resp.StatusCode, "response contained no choices", nil)
	}

	choice := completion.Choices[0]
	model := completion.Model
	if model == "" {
		model = payload.Model
	}

	return &providers.RawResult{
		Content: choice.Message.Content,
		Model:   model,
		Usage: models.Usage{
			InputTokens:  completion.Usage.PromptTokens,
			OutputTokens: completion.Usage.CompletionTokens,
			TotalTokens:  completion.Usage.TotalTokens,
		},
		FinishReason: choice.FinishReason,
	}, nil
}

func (c *Client) buildPayload(req *providers.Request) *chatCompletionRequest {
	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}
	temperature := c.cfg.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxTokens
	}

	messages := make([]chatMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = chatMessage{Role: string(msg.Role), Content: msg.Content}
	}

	return &chatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}
