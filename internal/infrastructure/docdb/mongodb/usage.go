// Package mongodb provides the MongoDB usage archive implementation.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/synapse-ai/llm-gateway/internal/domain/models"
)

// InsertUsageRecord appends a cost record to the usage_records collection.
func (c *Client) InsertUsageRecord(ctx context.Context, record *models.CostRecord) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}

	collection := c.database.Collection(usageCollection)
	if _, err := collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert usage record: %w", err)
	}
	return nil
}

// ListUsageRecords returns the newest usage records, optionally filtered by provider.
func (c *Client) ListUsageRecords(ctx context.Context, provider models.Provider, limit int64) ([]models.CostRecord, error) {
	filter := bson.M{}
	if provider != "" {
		filter["provider"] = provider
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	collection := c.database.Collection(usageCollection)
	cursor, err := collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.CostRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode usage records: %w", err)
	}
	return records, nil
}

// EnsureIndexes creates the indexes used by usage record queries.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	collection := c.database.Collection(usageCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
		{
			Keys: bson.D{
				{Key: "provider", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create usage record indexes: %w", err)
	}
	return nil
}
