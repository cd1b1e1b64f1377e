// Package gateway orchestrates provider dispatch, retry, fallback and cost tracking.
package gateway

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/synapse-ai/llm-gateway/internal/core/docdb"
	"github.com/synapse-ai/llm-gateway/internal/domain/models"
)

// PricingTier holds per-1K-token prices for one model family.
type PricingTier struct {
	Name   string
	Input  float64
	Output float64
}

// defaultPricing is the static pricing table. Lookup is case-insensitive
// substring containment with first-match-wins semantics, so tier order is
// significant. This is a best-effort mapping, not exact billing.
var defaultPricing = []PricingTier{
	{Name: "gpt-4", Input: 0.03, Output: 0.06},
	{Name: "gpt-4-turbo", Input: 0.01, Output: 0.03},
	{Name: "gpt-3.5-turbo", Input: 0.0005, Output: 0.0015},
	{Name: "claude-3-opus", Input: 0.015, Output: 0.075},
	{Name: "claude-3-sonnet", Input: 0.003, Output: 0.015},
	{Name: "claude-3-haiku", Input: 0.00025, Output: 0.00125},
}

// fallbackTier is used when no pricing tier matches the model name.
var fallbackTier = PricingTier{Name: "default", Input: 0.01, Output: 0.03}

// recentRequestCount is the number of records exposed in a stats snapshot.
const recentRequestCount = 10

// CostTrackerConfig holds the configuration for the cost tracker.
type CostTrackerConfig struct {
	// AlertThreshold is the running-total cost (USD) past which a single
	// alert is emitted. Zero disables alerting.
	AlertThreshold float64

	// Archive receives every cost record, best-effort. Optional.
	Archive docdb.Client

	// OnAlert is invoked once when the threshold is crossed. Optional;
	// the crossing is always logged regardless.
	OnAlert func(totalCost, threshold float64)

	// Pricing overrides the default pricing table, mainly for tests.
	Pricing []PricingTier
}

// CostTracker accumulates the monetary cost of completions for the lifetime
// of the process. Totals are not persisted across restarts; the optional
// archive is an audit trail, not recoverable state. All mutation happens
// under a mutex so concurrent completions cannot lose updates.
type CostTracker struct {
	mu         sync.Mutex
	totalCost  float64
	records    []models.CostRecord
	alertFired bool

	pricing   []PricingTier
	threshold float64
	onAlert   func(totalCost, threshold float64)
	archive   docdb.Client
	logger    zerolog.Logger
}

// NewCostTracker creates a new cost tracker.
func NewCostTracker(cfg CostTrackerConfig) *CostTracker {
	pricing := cfg.Pricing
	if pricing == nil {
		pricing = defaultPricing
	}
	return &CostTracker{
		pricing:   pricing,
		threshold: cfg.AlertThreshold,
		onAlert:   cfg.OnAlert,
		archive:   cfg.Archive,
		logger:    log.Logger,
	}
}

// TrackUsage computes the cost of one completion, appends a cost record and
// bumps the running total. Returns the computed cost.
func (t *CostTracker) TrackUsage(ctx context.Context, model string, inputTokens, outputTokens int, provider models.Provider) float64 {
	tier := t.matchTier(model)

	cost := (float64(inputTokens)/1000)*tier.Input + (float64(outputTokens)/1000)*tier.Output

	record := models.CostRecord{
		Timestamp:    time.Now().UTC(),
		Model:        model,
		Provider:     provider,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		Cost:         cost,
	}

	t.mu.Lock()
	t.totalCost += cost
	t.records = append(t.records, record)
	total := t.totalCost
	crossed := t.threshold > 0 && total > t.threshold && !t.alertFired
	if crossed {
		t.alertFired = true
	}
	t.mu.Unlock()

	t.logger.Info().
		Str("model", model).
		Str("provider", string(provider)).
		Int("input_tokens", inputTokens).
		Int("output_tokens", outputTokens).
		Float64("cost", cost).
		Float64("total_cost", total).
		Msg("cost_tracked")

	// The alert is edge-triggered: one event per threshold crossing, not one
	// per call past the threshold.
	if crossed {
		t.logger.Warn().
			Float64("total_cost", total).
			Float64("threshold", t.threshold).
			Msg("cost_threshold_exceeded")
		if t.onAlert != nil {
			t.onAlert(total, t.threshold)
		}
	}

	if t.archive != nil {
		if err := t.archive.InsertUsageRecord(ctx, &record); err != nil {
			t.logger.Warn().Err(err).Msg("usage_archive_write_failed")
		}
	}

	return cost
}

// matchTier finds the pricing tier whose name is contained in the model
// string, first match wins; unmatched models fall back to the default tier.
func (t *CostTracker) matchTier(model string) PricingTier {
	modelKey := strings.ToLower(model)
	for _, tier := range t.pricing {
		if strings.Contains(modelKey, tier.Name) {
			return tier
		}
	}
	return fallbackTier
}

// Stats returns a read-only snapshot of the accumulated state, including the
// last ten cost records.
func (t *CostTracker) Stats() *models.CostStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	recent := t.records
	if len(recent) > recentRequestCount {
		recent = recent[len(recent)-recentRequestCount:]
	}
	snapshot := make([]models.CostRecord, len(recent))
	copy(snapshot, recent)

	return &models.CostStats{
		TotalCost:      t.totalCost,
		TotalRequests:  len(t.records),
		RecentRequests: snapshot,
	}
}
