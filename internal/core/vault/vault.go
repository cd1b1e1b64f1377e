// Package vault defines the vault interface for secrets management.
package vault

import "context"

// Client defines the interface for resolving secrets such as provider API
// keys and the context encryption key.
type Client interface {
	// GetSecret retrieves a secret from the vault by URI.
	// Returns the secret value or an error if not found.
	GetSecret(ctx context.Context, uri string) (string, error)

	// Ping checks if the vault connection is alive.
	Ping(ctx context.Context) error

	// Close closes the vault connection.
	Close() error
}
