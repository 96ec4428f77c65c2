// Package kv defines the string key-value store persisting client state between runs.
package kv

import (
	"context"

	"github.com/pkg/errors"
)

// TokenKey holds the auth token.
const TokenKey = "token"

var ErrNotFound = errors.New("key not found")

// Store is a string key-value store. Implementations are safe for concurrent use.
type Store interface {
	// GetString returns ErrNotFound when key is not set.
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key, value string) error
	// Remove is a no-op when key is not set.
	Remove(ctx context.Context, key string) error
	Close() error
}
