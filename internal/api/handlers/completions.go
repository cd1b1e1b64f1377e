// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/synapse-ai/llm-gateway/internal/api/dto"
	"github.com/synapse-ai/llm-gateway/internal/api/middleware"
	domainerrors "github.com/synapse-ai/llm-gateway/internal/domain/errors"
	"github.com/synapse-ai/llm-gateway/internal/domain/models"
	"github.com/synapse-ai/llm-gateway/internal/services/gateway"
)

// CompletionsHandler handles LLM completion endpoints.
type CompletionsHandler struct {
	gateway gateway.Service
}

// NewCompletionsHandler creates a new CompletionsHandler.
func NewCompletionsHandler(gatewayService gateway.Service) *CompletionsHandler {
	return &CompletionsHandler{
		gateway: gatewayService,
	}
}

// CreateCompletion handles POST /completions.
// @Summary Generate LLM completion
// @Description Generates a chat completion with retry and cross-provider fallback
// @Tags LLM
// @Accept json
// @Produce json
// @Param request body dto.CompletionRequest true "Completion request"
// @Success 200 {object} dto.CompletionResponse "Completion generated"
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 502 {object} dto.ErrorResponse "All providers failed"
// @Router /llm/completions [post]
func (h *CompletionsHandler) CreateCompletion(c *gin.Context) {
	var req dto.CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid completion request", err.Error()))
		return
	}

	messages := make([]models.Message, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = models.Message{Role: models.MessageRole(msg.Role), Content: msg.Content}
	}

	result, err := h.gateway.Complete(c.Request.Context(), &gateway.CompleteRequest{
		Messages:    messages,
		Provider:    models.Provider(req.Provider),
		Fallback:    req.FallbackEnabled(),
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		var failed *gateway.CompletionFailedError
		if errors.As(err, &failed) {
			middleware.HandleError(c, domainerrors.NewCompletionFailedError(failed))
			return
		}
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCompletionResponse(result))
}

// GetCostStats handles GET /costs.
// @Summary Get cost statistics
// @Description Returns the accumulated LLM cost tracking snapshot
// @Tags LLM
// @Produce json
// @Success 200 {object} dto.CostStatsResponse "Cost statistics"
// @Failure 503 {object} dto.ErrorResponse "Cost tracking disabled"
// @Router /llm/costs [get]
func (h *CompletionsHandler) GetCostStats(c *gin.Context) {
	stats, enabled := h.gateway.CostStats()
	if !enabled {
		middleware.HandleError(c, domainerrors.NewServiceUnavailableError("cost tracking", nil))
		return
	}

	c.JSON(http.StatusOK, dto.CostStatsResponse{
		TotalCost:      stats.TotalCost,
		TotalRequests:  stats.TotalRequests,
		RecentRequests: stats.RecentRequests,
	})
}
