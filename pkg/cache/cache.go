// Package cache stores rendered artifacts so unchanged streets are not
// rendered twice.
//
// # Overview
//
// A rendered silhouette depends only on the street's contents and the render
// options. The pipeline hashes the street's JSON encoding with [Hash] and
// asks a [Keyer] for the artifact key:
//
//	key := keyer.ArtifactKey(cache.Hash(data), cache.ArtifactKeyOpts{Format: "svg"})
//	if out, ok, _ := c.Get(ctx, key); ok {
//	    return out
//	}
//
// # Implementations
//
//   - [FileCache]: entries as JSON files under a directory, for the CLI
//   - [NullCache]: never stores anything (--no-cache)
//
// # Retries
//
// [RetryWithBackoff] retries operations whose errors were marked with
// [Retryable], such as network failures talking to a remote store.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value cache with optional expiry.
type Cache interface {
	// Get returns the cached value and whether it was found.
	// Expired and unreadable entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLArtifact is how long rendered artifacts stay cached. Keys already change
// with the street's contents, so this only bounds disk usage.
const TTLArtifact = 7 * 24 * time.Hour
