package providers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synapse-ai/llm-gateway/internal/domain/models"
	"github.com/synapse-ai/llm-gateway/internal/services/providers"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		transient bool
	}{
		{"rate limited", http.StatusTooManyRequests, true},
		{"request timeout", http.StatusRequestTimeout, true},
		{"internal server error", http.StatusInternalServerError, true},
		{"bad gateway", http.StatusBadGateway, true},
		{"unauthorized", http.StatusUnauthorized, false},
		{"bad request", http.StatusBadRequest, false},
		{"not found", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := providers.ClassifyStatus(models.ProviderOpenAI, tt.status, "detail")

			assert.Equal(t, tt.transient, err.IsTransient())
			assert.Equal(t, tt.status, err.Status)
		})
	}
}

func TestClassifyTransport(t *testing.T) {
	cause := errors.New("connection refused")

	err := providers.ClassifyTransport(models.ProviderAnthropic, cause)

	assert.True(t, err.IsTransient())
	assert.Equal(t, models.ProviderAnthropic, err.Provider)
	assert.ErrorIs(t, err, cause)
}

func TestSplitSystem_FirstSystemMessageWins(t *testing.T) {
	messages := []models.Message{
		{Role: models.RoleSystem, Content: "first"},
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleSystem, Content: "second"},
		{Role: models.RoleAssistant, Content: "hello"},
	}

	system, rest := providers.SplitSystem(messages, "")

	assert.Equal(t, "first", system)
	require.Len(t, rest, 2)
	assert.Equal(t, "hi", rest[0].Content)
	assert.Equal(t, "hello", rest[1].Content)
}

func TestSplitSystem_OverrideWins(t *testing.T) {
	messages := []models.Message{
		{Role: models.RoleSystem, Content: "from history"},
		{Role: models.RoleUser, Content: "hi"},
	}

	system, rest := providers.SplitSystem(messages, "override")

	assert.Equal(t, "override", system)
	assert.Len(t, rest, 1)
}

func TestSplitSystem_NoSystemMessages(t *testing.T) {
	messages := []models.Message{
		{Role: models.RoleUser, Content: "hi"},
	}

	system, rest := providers.SplitSystem(messages, "")

	assert.Equal(t, "", system)
	assert.Len(t, rest, 1)
}
