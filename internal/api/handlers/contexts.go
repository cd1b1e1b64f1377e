// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/synapse-ai/llm-gateway/internal/api/dto"
	"github.com/synapse-ai/llm-gateway/internal/api/middleware"
	domainerrors "github.com/synapse-ai/llm-gateway/internal/domain/errors"
	"github.com/synapse-ai/llm-gateway/internal/domain/models"
	"github.com/synapse-ai/llm-gateway/internal/services/contextstore"
)

// ContextsHandler handles conversation context lifecycle endpoints.
type ContextsHandler struct {
	store contextstore.Service
}

// NewContextsHandler creates a new ContextsHandler.
func NewContextsHandler(store contextstore.Service) *ContextsHandler {
	return &ContextsHandler{
		store: store,
	}
}

// GetContext handles GET /agents/:agentId/contexts/:contextId.
// @Summary Load a conversation context
// @Tags Contexts
// @Produce json
// @Param agentId path string true "Agent ID"
// @Param contextId path string true "Context ID"
// @Success 200 {object} dto.ContextResponse "Stored context"
// @Failure 404 {object} dto.ErrorResponse "Context not found"
// @Router /agents/{agentId}/contexts/{contextId} [get]
func (h *ContextsHandler) GetContext(c *gin.Context) {
	agentID := c.Param("agentId")
	contextID := c.Param("contextId")

	stored := h.store.Load(c.Request.Context(), agentID, contextID)
	if stored == nil {
		middleware.HandleError(c, domainerrors.NewNotFoundError("context", agentID+":"+contextID))
		return
	}

	c.JSON(http.StatusOK, dto.ContextResponse{
		AgentID:    agentID,
		ContextID:  contextID,
		Messages:   stored.Messages,
		Metadata:   stored.Metadata,
		MaxHistory: stored.MaxHistory,
	})
}

// SaveContext handles PUT /agents/:agentId/contexts/:contextId.
// @Summary Store a conversation context
// @Tags Contexts
// @Accept json
// @Produce json
// @Param agentId path string true "Agent ID"
// @Param contextId path string true "Context ID"
// @Param request body dto.SaveContextRequest true "Context payload"
// @Success 200 {object} dto.ContextResponse "Stored context"
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Router /agents/{agentId}/contexts/{contextId} [put]
func (h *ContextsHandler) SaveContext(c *gin.Context) {
	agentID := c.Param("agentId")
	contextID := c.Param("contextId")

	var req dto.SaveContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid context payload", err.Error()))
		return
	}

	stored := models.NewConversationContext(req.MaxHistory)
	stored.Metadata = req.Metadata
	if stored.Metadata == nil {
		stored.Metadata = make(map[string]interface{})
	}
	// Appending through AddMessage keeps the history bound enforced.
	for _, msg := range req.Messages {
		stored.AddMessage(models.MessageRole(msg.Role), msg.Content)
	}

	ttl := time.Duration(req.TTLSeconds) * time.Second
	if !h.store.Save(c.Request.Context(), agentID, contextID, stored, ttl) {
		middleware.HandleError(c, domainerrors.NewInternalError("failed to save context", nil))
		return
	}

	c.JSON(http.StatusOK, dto.ContextResponse{
		AgentID:    agentID,
		ContextID:  contextID,
		Messages:   stored.Messages,
		Metadata:   stored.Metadata,
		MaxHistory: stored.MaxHistory,
	})
}

// DeleteContext handles DELETE /agents/:agentId/contexts/:contextId.
// @Summary Delete a conversation context
// @Tags Contexts
// @Produce json
// @Param agentId path string true "Agent ID"
// @Param contextId path string true "Context ID"
// @Success 200 {object} dto.SuccessResponse "Deletion result"
// @Router /agents/{agentId}/contexts/{contextId} [delete]
func (h *ContextsHandler) DeleteContext(c *gin.Context) {
	agentID := c.Param("agentId")
	contextID := c.Param("contextId")

	ok := h.store.Delete(c.Request.Context(), agentID, contextID)
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: ok})
}

// ExtendTTL handles POST /agents/:agentId/contexts/:contextId/ttl.
// @Summary Refresh a context's expiration
// @Tags Contexts
// @Accept json
// @Produce json
// @Param agentId path string true "Agent ID"
// @Param contextId path string true "Context ID"
// @Param request body dto.ExtendTTLRequest false "TTL payload"
// @Success 200 {object} dto.SuccessResponse "Refresh result"
// @Router /agents/{agentId}/contexts/{contextId}/ttl [post]
func (h *ContextsHandler) ExtendTTL(c *gin.Context) {
	agentID := c.Param("agentId")
	contextID := c.Param("contextId")

	var req dto.ExtendTTLRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.HandleError(c, domainerrors.NewValidationError("invalid ttl payload", err.Error()))
			return
		}
	}

	ttl := time.Duration(req.TTLSeconds) * time.Second
	ok := h.store.ExtendTTL(c.Request.Context(), agentID, contextID, ttl)
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: ok})
}

// ListContexts handles GET /agents/:agentId/contexts.
// @Summary List stored contexts for an agent
// @Tags Contexts
// @Produce json
// @Param agentId path string true "Agent ID"
// @Success 200 {object} dto.ContextListResponse "Stored contexts"
// @Router /agents/{agentId}/contexts [get]
func (h *ContextsHandler) ListContexts(c *gin.Context) {
	agentID := c.Param("agentId")

	refs := h.store.List(c.Request.Context(), agentID)
	c.JSON(http.StatusOK, dto.ContextListResponse{
		Contexts: refs,
		Count:    len(refs),
	})
}

// ClearContexts handles DELETE /agents/:agentId/contexts.
// @Summary Delete all stored contexts for an agent
// @Tags Contexts
// @Produce json
// @Param agentId path string true "Agent ID"
// @Success 200 {object} dto.ClearContextsResponse "Deletion count"
// @Router /agents/{agentId}/contexts [delete]
func (h *ContextsHandler) ClearContexts(c *gin.Context) {
	agentID := c.Param("agentId")

	deleted := h.store.ClearAll(c.Request.Context(), agentID)
	c.JSON(http.StatusOK, dto.ClearContextsResponse{DeletedCount: deleted})
}
