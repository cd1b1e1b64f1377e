package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/synapse-ai/llm-gateway/internal/api/dto"
	"github.com/synapse-ai/llm-gateway/internal/api/handlers"
	"github.com/synapse-ai/llm-gateway/internal/domain/models"
	"github.com/synapse-ai/llm-gateway/internal/services/contextstore"
	"github.com/synapse-ai/llm-gateway/tests/mocks"
	"github.com/synapse-ai/llm-gateway/tests/testutils"
)

func TestGetContext_Found(t *testing.T) {
	// Setup
	stored := models.NewConversationContextWithSystem(5, "system prompt")
	stored.AddMessage(models.RoleUser, "hello")

	store := mocks.NewMockContextStore()
	store.On("Load", mock.Anything, "agent-1", "conv-1").Return(stored)

	handler := handlers.NewContextsHandler(store)
	router := testutils.SetupTestRouter()
	router.GET("/agents/:agentId/contexts/:contextId", handler.GetContext)

	// Execute
	w := testutils.PerformRequest(router, "GET", "/agents/agent-1/contexts/conv-1", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.ContextResponse
	testutils.ParseJSONResponse(t, w, &response)

	assert.Equal(t, "agent-1", response.AgentID)
	assert.Equal(t, "conv-1", response.ContextID)
	assert.Len(t, response.Messages, 2)
	assert.Equal(t, 5, response.MaxHistory)

	store.AssertExpectations(t)
}

func TestGetContext_NotFound(t *testing.T) {
	// Setup
	store := mocks.NewMockContextStore()
	store.On("Load", mock.Anything, "agent-1", "missing").Return(nil)

	handler := handlers.NewContextsHandler(store)
	router := testutils.SetupTestRouter()
	router.GET("/agents/:agentId/contexts/:contextId", handler.GetContext)

	// Execute
	w := testutils.PerformRequest(router, "GET", "/agents/agent-1/contexts/missing", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusNotFound, w)

	var response dto.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "NOT_FOUND", response.Code)
}

func TestSaveContext_Success(t *testing.T) {
	// Setup
	store := mocks.NewMockContextStore()
	store.On("Save", mock.Anything, "agent-1", "conv-1", mock.AnythingOfType("*models.ConversationContext"), time.Duration(0)).Return(true)

	handler := handlers.NewContextsHandler(store)
	router := testutils.SetupTestRouter()
	router.PUT("/agents/:agentId/contexts/:contextId", handler.SaveContext)

	body := map[string]interface{}{
		"messages": []map[string]string{
			{"role": "system", "content": "system prompt"},
			{"role": "user", "content": "hello"},
		},
		"metadata":    map[string]string{"topic": "greeting"},
		"max_history": 5,
	}

	// Execute
	w := testutils.PerformRequest(router, "PUT", "/agents/agent-1/contexts/conv-1", body, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.ContextResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Len(t, response.Messages, 2)
	assert.Equal(t, 5, response.MaxHistory)

	store.AssertExpectations(t)
}

func TestSaveContext_AppliesRotation(t *testing.T) {
	// Setup
	var saved *models.ConversationContext
	store := mocks.NewMockContextStore()
	store.On("Save", mock.Anything, "agent-1", "conv-1", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(3).(*models.ConversationContext)
	}).Return(true)

	handler := handlers.NewContextsHandler(store)
	router := testutils.SetupTestRouter()
	router.PUT("/agents/:agentId/contexts/:contextId", handler.SaveContext)

	body := map[string]interface{}{
		"messages": []map[string]string{
			{"role": "system", "content": "system prompt"},
			{"role": "user", "content": "turn 1"},
			{"role": "assistant", "content": "reply 1"},
			{"role": "user", "content": "turn 2"},
			{"role": "assistant", "content": "reply 2"},
		},
		"max_history": 2,
	}

	// Execute
	w := testutils.PerformRequest(router, "PUT", "/agents/agent-1/contexts/conv-1", body, nil)

	// Assert: the history bound applies on write, system survives
	testutils.AssertStatusCode(t, http.StatusOK, w)
	require.NotNil(t, saved)
	require.Len(t, saved.Messages, 3)
	assert.Equal(t, models.RoleSystem, saved.Messages[0].Role)
	assert.Equal(t, "turn 2", saved.Messages[1].Content)
	assert.Equal(t, "reply 2", saved.Messages[2].Content)
}

func TestSaveContext_CustomTTL(t *testing.T) {
	// Setup
	store := mocks.NewMockContextStore()
	store.On("Save", mock.Anything, "agent-1", "conv-1", mock.Anything, 300*time.Second).Return(true)

	handler := handlers.NewContextsHandler(store)
	router := testutils.SetupTestRouter()
	router.PUT("/agents/:agentId/contexts/:contextId", handler.SaveContext)

	body := map[string]interface{}{
		"messages": []map[string]string{
			{"role": "user", "content": "hello"},
		},
		"ttl_seconds": 300,
	}

	// Execute
	w := testutils.PerformRequest(router, "PUT", "/agents/agent-1/contexts/conv-1", body, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)
	store.AssertExpectations(t)
}

func TestSaveContext_InvalidRole(t *testing.T) {
	// Setup
	store := mocks.NewMockContextStore()
	handler := handlers.NewContextsHandler(store)
	router := testutils.SetupTestRouter()
	router.PUT("/agents/:agentId/contexts/:contextId", handler.SaveContext)

	body := map[string]interface{}{
		"messages": []map[string]string{
			{"role": "moderator", "content": "hello"},
		},
	}

	// Execute
	w := testutils.PerformRequest(router, "PUT", "/agents/agent-1/contexts/conv-1", body, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusBadRequest, w)
	store.AssertNotCalled(t, "Save")
}

func TestSaveContext_StoreFailure(t *testing.T) {
	// Setup
	store := mocks.NewMockContextStore()
	store.On("Save", mock.Anything, "agent-1", "conv-1", mock.Anything, mock.Anything).Return(false)

	handler := handlers.NewContextsHandler(store)
	router := testutils.SetupTestRouter()
	router.PUT("/agents/:agentId/contexts/:contextId", handler.SaveContext)

	body := map[string]interface{}{
		"messages": []map[string]string{
			{"role": "user", "content": "hello"},
		},
	}

	// Execute
	w := testutils.PerformRequest(router, "PUT", "/agents/agent-1/contexts/conv-1", body, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusInternalServerError, w)
}

func TestDeleteContext(t *testing.T) {
	// Setup
	store := mocks.NewMockContextStore()
	store.On("Delete", mock.Anything, "agent-1", "conv-1").Return(true)

	handler := handlers.NewContextsHandler(store)
	router := testutils.SetupTestRouter()
	router.DELETE("/agents/:agentId/contexts/:contextId", handler.DeleteContext)

	// Execute
	w := testutils.PerformRequest(router, "DELETE", "/agents/agent-1/contexts/conv-1", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.SuccessResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.True(t, response.Success)
}

func TestExtendTTL_WithBody(t *testing.T) {
	// Setup
	store := mocks.NewMockContextStore()
	store.On("ExtendTTL", mock.Anything, "agent-1", "conv-1", 600*time.Second).Return(true)

	handler := handlers.NewContextsHandler(store)
	router := testutils.SetupTestRouter()
	router.POST("/agents/:agentId/contexts/:contextId/ttl", handler.ExtendTTL)

	// Execute
	w := testutils.PerformRequest(router, "POST", "/agents/agent-1/contexts/conv-1/ttl", map[string]interface{}{
		"ttl_seconds": 600,
	}, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)
	store.AssertExpectations(t)
}

func TestExtendTTL_NoBodyUsesDefault(t *testing.T) {
	// Setup
	store := mocks.NewMockContextStore()
	store.On("ExtendTTL", mock.Anything, "agent-1", "conv-1", time.Duration(0)).Return(true)

	handler := handlers.NewContextsHandler(store)
	router := testutils.SetupTestRouter()
	router.POST("/agents/:agentId/contexts/:contextId/ttl", handler.ExtendTTL)

	// Execute
	w := testutils.PerformRequest(router, "POST", "/agents/agent-1/contexts/conv-1/ttl", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)
	store.AssertExpectations(t)
}

func TestListContexts(t *testing.T) {
	// Setup
	store := mocks.NewMockContextStore()
	store.On("List", mock.Anything, "agent-1").Return([]contextstore.ContextRef{
		{AgentID: "agent-1", ContextID: "conv-1"},
		{AgentID: "agent-1", ContextID: "conv-2"},
	})

	handler := handlers.NewContextsHandler(store)
	router := testutils.SetupTestRouter()
	router.GET("/agents/:agentId/contexts", handler.ListContexts)

	// Execute
	w := testutils.PerformRequest(router, "GET", "/agents/agent-1/contexts", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.ContextListResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, 2, response.Count)
	assert.Len(t, response.Contexts, 2)
}

func TestClearContexts(t *testing.T) {
	// Setup
	store := mocks.NewMockContextStore()
	store.On("ClearAll", mock.Anything, "agent-1").Return(int64(3))

	handler := handlers.NewContextsHandler(store)
	router := testutils.SetupTestRouter()
	router.DELETE("/agents/:agentId/contexts", handler.ClearContexts)

	// Execute
	w := testutils.PerformRequest(router, "DELETE", "/agents/agent-1/contexts", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.ClearContextsResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, int64(3), response.DeletedCount)
}
