package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/synapse-ai/llm-gateway/internal/api/handlers"
	"github.com/synapse-ai/llm-gateway/tests/mocks"
	"github.com/synapse-ai/llm-gateway/tests/testutils"
)

func TestHealthHandler_Health_AllHealthy(t *testing.T) {
	// Setup
	mockCache := mocks.NewMockCacheClient()
	mockDocDB := mocks.NewMockDocDBClient()

	mockCache.On("Ping", mock.Anything).Return(nil)
	mockDocDB.On("Ping", mock.Anything).Return(nil)

	handler := handlers.NewHealthHandler(mockCache, mockDocDB)

	router := testutils.SetupTestRouter()
	router.GET("/health", handler.Health)

	// Execute
	w := testutils.PerformRequest(router, "GET", "/health", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response handlers.HealthResponse
	testutils.ParseJSONResponse(t, w, &response)

	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "healthy", response.Components["cache"])
	assert.Equal(t, "healthy", response.Components["docdb"])

	mockCache.AssertExpectations(t)
	mockDocDB.AssertExpectations(t)
}

func TestHealthHandler_Health_CacheUnhealthy(t *testing.T) {
	// Setup
	mockCache := mocks.NewMockCacheClient()
	mockDocDB := mocks.NewMockDocDBClient()

	mockCache.On("Ping", mock.Anything).Return(assert.AnError)
	mockDocDB.On("Ping", mock.Anything).Return(nil)

	handler := handlers.NewHealthHandler(mockCache, mockDocDB)

	router := testutils.SetupTestRouter()
	router.GET("/health", handler.Health)

	// Execute
	w := testutils.PerformRequest(router, "GET", "/health", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusServiceUnavailable, w)

	var response handlers.HealthResponse
	testutils.ParseJSONResponse(t, w, &response)

	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "unhealthy", response.Components["cache"])
	assert.Equal(t, "healthy", response.Components["docdb"])
}

func TestHealthHandler_Health_ArchiveDisabled(t *testing.T) {
	// Setup: no docdb client configured
	mockCache := mocks.NewMockCacheClient()
	mockCache.On("Ping", mock.Anything).Return(nil)

	handler := handlers.NewHealthHandler(mockCache, nil)

	router := testutils.SetupTestRouter()
	router.GET("/health", handler.Health)

	// Execute
	w := testutils.PerformRequest(router, "GET", "/health", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response handlers.HealthResponse
	testutils.ParseJSONResponse(t, w, &response)

	assert.Equal(t, "healthy", response.Status)
	assert.NotContains(t, response.Components, "docdb")
}

func TestHealthHandler_Ready_Ready(t *testing.T) {
	// Setup
	mockCache := mocks.NewMockCacheClient()
	mockCache.On("Ping", mock.Anything).Return(nil)

	handler := handlers.NewHealthHandler(mockCache, nil)

	router := testutils.SetupTestRouter()
	router.GET("/ready", handler.Ready)

	// Execute
	w := testutils.PerformRequest(router, "GET", "/ready", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)
}

func TestHealthHandler_Ready_NotReady(t *testing.T) {
	// Setup
	mockCache := mocks.NewMockCacheClient()
	mockCache.On("Ping", mock.Anything).Return(assert.AnError)

	handler := handlers.NewHealthHandler(mockCache, nil)

	router := testutils.SetupTestRouter()
	router.GET("/ready", handler.Ready)

	// Execute
	w := testutils.PerformRequest(router, "GET", "/ready", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusServiceUnavailable, w)
}

func TestHealthHandler_Live(t *testing.T) {
	// Setup
	mockCache := mocks.NewMockCacheClient()

	handler := handlers.NewHealthHandler(mockCache, nil)

	router := testutils.SetupTestRouter()
	router.GET("/live", handler.Live)

	// Execute
	w := testutils.PerformRequest(router, "GET", "/live", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)
}
