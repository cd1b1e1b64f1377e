// Package contextstore persists conversation contexts in an expiring
// key-value store, keyed by (agent, conversation) pair.
package contextstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/synapse-ai/llm-gateway/internal/core/cache"
	"github.com/synapse-ai/llm-gateway/internal/domain/models"
	"github.com/synapse-ai/llm-gateway/internal/pkg/encryption"
)

// DefaultContextTTL is how long contexts live after their last write.
const DefaultContextTTL = 24 * time.Hour

const keyPrefix = "context"

// ContextRef identifies one stored conversation context.
type ContextRef struct {
	AgentID   string `json:"agent_id"`
	ContextID string `json:"context_id"`
}

// Service stores, loads and enumerates conversation contexts.
//
// The store is best-effort: every underlying failure is logged and folded
// into a false/nil/0 result. Callers cannot distinguish "not found" from
// "store unreachable"; anyone needing that distinction must not use this
// store as their system of record.
type Service interface {
	// Save serializes the context and writes it with the given TTL
	// (DefaultContextTTL when ttl is 0). Any prior value is overwritten;
	// last writer wins.
	Save(ctx context.Context, agentID, contextID string, c *models.ConversationContext, ttl time.Duration) bool

	// Load returns the stored context, or nil when absent, expired,
	// corrupted or the store is unreachable.
	Load(ctx context.Context, agentID, contextID string) *models.ConversationContext

	// Delete removes a context. Idempotent; deleting a missing key is not
	// an error.
	Delete(ctx context.Context, agentID, contextID string) bool

	// Exists reports whether a context is currently stored.
	Exists(ctx context.Context, agentID, contextID string) bool

	// ExtendTTL refreshes a context's expiration without modifying it.
	ExtendTTL(ctx context.Context, agentID, contextID string, ttl time.Duration) bool

	// List enumerates stored contexts, optionally filtered by agent
	// ("" means all agents). Intended for administrative use.
	List(ctx context.Context, agentID string) []ContextRef

	// ClearAll bulk-deletes contexts matching the same filter as List and
	// returns the number removed.
	ClearAll(ctx context.Context, agentID string) int64

	// BuildKey returns the storage key for an (agent, context) pair.
	BuildKey(agentID, contextID string) string
}

// Config holds the configuration for the context store service.
type Config struct {
	CacheClient cache.Client
	Encryptor   encryption.Encryptor
	TTL         time.Duration
}

// service implements the Service interface.
type service struct {
	cacheClient cache.Client
	encryptor   encryption.Encryptor
	ttl         time.Duration
	logger      zerolog.Logger
}

// NewService creates a new context store service.
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.CacheClient == nil {
		return nil, fmt.Errorf("cache client is required")
	}

	encryptor := cfg.Encryptor
	if encryptor == nil {
		encryptor = encryption.NewNoOpEncryptor()
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultContextTTL
	}

	return &service{
		cacheClient: cfg.CacheClient,
		encryptor:   encryptor,
		ttl:         ttl,
		logger:      log.Logger,
	}, nil
}

// Save serializes the context and writes it with expiration.
func (s *service) Save(ctx context.Context, agentID, contextID string, c *models.ConversationContext, ttl time.Duration) bool {
	if c == nil {
		return false
	}
	if ttl == 0 {
		ttl = s.ttl
	}

	data, err := json.Marshal(c)
	if err != nil {
		s.logger.Error().Err(err).
			Str("agent_id", agentID).
			Str("context_id", contextID).
			Msg("context_save_failed")
		return false
	}

	encrypted, err := s.encryptor.Encrypt(data)
	if err != nil {
		s.logger.Error().Err(err).
			Str("agent_id", agentID).
			Str("context_id", contextID).
			Msg("context_save_failed")
		return false
	}

	key := s.BuildKey(agentID, contextID)
	if err := s.cacheClient.Set(ctx, key, []byte(encrypted), ttl); err != nil {
		s.logger.Error().Err(err).
			Str("agent_id", agentID).
			Str("context_id", contextID).
			Msg("context_save_failed")
		return false
	}

	s.logger.Info().
		Str("agent_id", agentID).
		Str("context_id", contextID).
		Int("message_count", len(c.Messages)).
		Dur("ttl", ttl).
		Msg("context_saved")
	return true
}

// Load returns the stored context, or nil.
func (s *service) Load(ctx context.Context, agentID, contextID string) *models.ConversationContext {
	key := s.BuildKey(agentID, contextID)

	stored, err := s.cacheClient.Get(ctx, key)
	if err != nil {
		s.logger.Error().Err(err).
			Str("agent_id", agentID).
			Str("context_id", contextID).
			Msg("context_load_failed")
		return nil
	}
	if stored == nil {
		s.logger.Debug().
			Str("agent_id", agentID).
			Str("context_id", contextID).
			Msg("context_not_found")
		return nil
	}

	// A decrypt or unmarshal failure means the entry is stale or corrupted;
	// drop it and report a miss.
	decrypted, err := s.encryptor.Decrypt(string(stored))
	if err != nil {
		_, _ = s.cacheClient.Delete(ctx, key)
		s.logger.Warn().Err(err).
			Str("agent_id", agentID).
			Str("context_id", contextID).
			Msg("context_decrypt_failed")
		return nil
	}

	var c models.ConversationContext
	if err := json.Unmarshal(decrypted, &c); err != nil {
		_, _ = s.cacheClient.Delete(ctx, key)
		s.logger.Warn().Err(err).
			Str("agent_id", agentID).
			Str("context_id", contextID).
			Msg("context_corrupted")
		return nil
	}
	if c.MaxHistory < 1 {
		c.MaxHistory = models.DefaultMaxHistory
	}
	if c.Metadata == nil {
		c.Metadata = make(map[string]interface{})
	}

	s.logger.Info().
		Str("agent_id", agentID).
		Str("context_id", contextID).
		Int("message_count", len(c.Messages)).
		Msg("context_loaded")
	return &c
}

// Delete removes a context.
func (s *service) Delete(ctx context.Context, agentID, contextID string) bool {
	key := s.BuildKey(agentID, contextID)

	existed, err := s.cacheClient.Delete(ctx, key)
	if err != nil {
		s.logger.Error().Err(err).
			Str("agent_id", agentID).
			Str("context_id", contextID).
			Msg("context_delete_failed")
		return false
	}

	s.logger.Info().
		Str("agent_id", agentID).
		Str("context_id", contextID).
		Bool("existed", existed).
		Msg("context_deleted")
	return true
}

// Exists reports whether a context is currently stored.
func (s *service) Exists(ctx context.Context, agentID, contextID string) bool {
	key := s.BuildKey(agentID, contextID)

	exists, err := s.cacheClient.Exists(ctx, key)
	if err != nil {
		s.logger.Error().Err(err).
			Str("agent_id", agentID).
			Str("context_id", contextID).
			Msg("context_exists_check_failed")
		return false
	}
	return exists
}

// ExtendTTL refreshes a context's expiration.
func (s *service) ExtendTTL(ctx context.Context, agentID, contextID string, ttl time.Duration) bool {
	if ttl == 0 {
		ttl = s.ttl
	}
	key := s.BuildKey(agentID, contextID)

	ok, err := s.cacheClient.Expire(ctx, key, ttl)
	if err != nil {
		s.logger.Error().Err(err).
			Str("agent_id", agentID).
			Str("context_id", contextID).
			Msg("context_ttl_extend_failed")
		return false
	}

	s.logger.Info().
		Str("agent_id", agentID).
		Str("context_id", contextID).
		Dur("ttl", ttl).
		Msg("context_ttl_extended")
	return ok
}

// List enumerates stored contexts via a pattern scan.
func (s *service) List(ctx context.Context, agentID string) []ContextRef {
	keys, err := s.cacheClient.Keys(ctx, s.pattern(agentID))
	if err != nil {
		s.logger.Error().Err(err).
			Str("agent_id", agentID).
			Msg("context_list_failed")
		return []ContextRef{}
	}

	refs := make([]ContextRef, 0, len(keys))
	for _, key := range keys {
		parts := strings.SplitN(key, ":", 3)
		if len(parts) < 3 {
			continue
		}
		refs = append(refs, ContextRef{AgentID: parts[1], ContextID: parts[2]})
	}

	s.logger.Info().
		Str("agent_id", agentID).
		Int("count", len(refs)).
		Msg("contexts_listed")
	return refs
}

// ClearAll bulk-deletes contexts matching the filter.
func (s *service) ClearAll(ctx context.Context, agentID string) int64 {
	deleted, err := s.cacheClient.DeletePattern(ctx, s.pattern(agentID))
	if err != nil {
		s.logger.Error().Err(err).
			Str("agent_id", agentID).
			Msg("context_clear_failed")
		return deleted
	}

	s.logger.Info().
		Str("agent_id", agentID).
		Int64("count", deleted).
		Msg("contexts_cleared")
	return deleted
}

// BuildKey returns the storage key for an (agent, context) pair.
func (s *service) BuildKey(agentID, contextID string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, agentID, contextID)
}

func (s *service) pattern(agentID string) string {
	if agentID != "" {
		return fmt.Sprintf("%s:%s:*", keyPrefix, agentID)
	}
	return keyPrefix + ":*"
}
