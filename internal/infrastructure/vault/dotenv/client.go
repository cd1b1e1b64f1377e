// Package dotenv provides a dotenv-based vault implementation for development.
package dotenv

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Client implements the vault.Client interface using environment variables.
// This is primarily for local development and testing.
type Client struct {
	// secrets stores in-memory overrides (for secrets not in env vars)
	secrets map[string]string
	mu      sync.RWMutex
}

// NewClient creates a new DotEnv vault client.
func NewClient() (*Client, error) {
	return &Client{
		secrets: make(map[string]string),
	}, nil
}

// GetSecret retrieves a secret from environment variables or the in-memory
// override store. URIs take the form "dotenv://{ENV_VAR}".
func (c *Client) GetSecret(ctx context.Context, uri string) (string, error) {
	key := strings.TrimPrefix(uri, "dotenv://")

	// First check environment variables
	if value := os.Getenv(key); value != "" {
		return value, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if value, ok := c.secrets[key]; ok {
		return value, nil
	}

	return "", fmt.Errorf("secret not found: %s", key)
}

// SetSecret stores an in-memory override, used by tests.
func (c *Client) SetSecret(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.secrets[key] = value
}

// Ping checks if the vault is available (always nil for dotenv).
func (c *Client) Ping(ctx context.Context) error {
	return nil
}

// Close closes the vault (no-op for dotenv).
func (c *Client) Close() error {
	return nil
}
