// Package backend defines the key-value storage contract and the registry of
// storage implementations.
package backend

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// KVStore is a scoped key-value store on the local device.
// Values are opaque bytes; a missing key is not an error.
type KVStore interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the underlying resources.
	Close() error
}

// Revisioner is implemented by stores that stamp every write with an
// opaque revision token.
type Revisioner interface {
	Revision(ctx context.Context, key string) (string, error)
}
