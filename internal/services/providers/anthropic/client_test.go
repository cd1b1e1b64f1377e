package anthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synapse-ai/llm-gateway/internal/domain/models"
	"github.com/synapse-ai/llm-gateway/internal/services/providers"
	"github.com/synapse-ai/llm-gateway/internal/services/providers/anthropic"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*anthropic.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := anthropic.NewClient(anthropic.Config{
		APIKey:    "test-key",
		BaseURL:   server.URL,
		Model:     "claude-3-sonnet-20240229",
		MaxTokens: 100,
	})
	require.NoError(t, err)

	return client, server
}

func successResponse(w http.ResponseWriter) {
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"id":    "msg_123",
		"model": "claude-3-sonnet-20240229",
		"content": []map[string]string{
			{"type": "text", "text": "Hello"},
			{"type": "text", "text": " there!"},
		},
		"stop_reason": "end_turn",
		"usage": map[string]int{
			"input_tokens":  12,
			"output_tokens": 8,
		},
	})
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	client, err := anthropic.NewClient(anthropic.Config{})

	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "api key is required")
}

func TestSend_Success(t *testing.T) {
	// Arrange
	var captured struct {
		path    string
		apiKey  string
		version string
		body    map[string]interface{}
	}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.apiKey = r.Header.Get("X-API-Key")
		captured.version = r.Header.Get("anthropic-version")
		_ = json.NewDecoder(r.Body).Decode(&captured.body)
		successResponse(w)
	})

	// Act
	result, err := client.Send(context.Background(), &providers.Request{
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: "Be concise."},
			{Role: models.RoleUser, Content: "Hi"},
		},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Hello there!", result.Content)
	assert.Equal(t, "claude-3-sonnet-20240229", result.Model)
	assert.Equal(t, models.Usage{InputTokens: 12, OutputTokens: 8, TotalTokens: 20}, result.Usage)
	assert.Equal(t, "end_turn", result.StopReason)

	assert.Equal(t, "/messages", captured.path)
	assert.Equal(t, "test-key", captured.apiKey)
	assert.Equal(t, "2023-06-01", captured.version)

	// The system instruction moves to the dedicated field
	assert.Equal(t, "Be concise.", captured.body["system"])
	messages := captured.body["messages"].([]interface{})
	require.Len(t, messages, 1)
	only := messages[0].(map[string]interface{})
	assert.Equal(t, "user", only["role"])
}

func TestSend_SystemOverrideWins(t *testing.T) {
	// Arrange
	var body map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		successResponse(w)
	})

	// Act
	_, err := client.Send(context.Background(), &providers.Request{
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: "from history"},
			{Role: models.RoleUser, Content: "Hi"},
		},
		System: "explicit override",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "explicit override", body["system"])
}

func TestSend_DefaultMaxTokens(t *testing.T) {
	// Arrange
	var body map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		successResponse(w)
	})

	// Act
	_, err := client.Send(context.Background(), &providers.Request{
		Messages: []models.Message{{Role: models.RoleUser, Content: "Hi"}},
	})

	// Assert: the Messages API requires max_tokens, so the default applies
	require.NoError(t, err)
	assert.Equal(t, float64(100), body["max_tokens"])
}

func TestSend_OverloadedIsTransient(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	// Act
	result, err := client.Send(context.Background(), &providers.Request{
		Messages: []models.Message{{Role: models.RoleUser, Content: "Hi"}},
	})

	// Assert
	assert.Nil(t, result)

	var provErr *providers.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.True(t, provErr.IsTransient())
	assert.Equal(t, models.ProviderAnthropic, provErr.Provider)
}

func TestSend_BadRequestIsPermanent(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	// Act
	_, err := client.Send(context.Background(), &providers.Request{
		Messages: []models.Message{{Role: models.RoleUser, Content: "Hi"}},
	})

	// Assert
	var provErr *providers.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.False(t, provErr.IsTransient())
}

func TestName(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	assert.Equal(t, models.ProviderAnthropic, client.Name())
}
