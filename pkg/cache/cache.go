// Package cache stores normalized puzzles and rendered artifacts between runs.
//
// The pipeline caches two tiers of data:
//
//   - Puzzles: the normalized form of an input file, keyed by the SHA-256 of
//     the raw bytes. A hit skips JSON decoding and normalization.
//   - Artifacts: rendered output (PDF or JSON layout), keyed by the puzzle
//     hash plus the format and the fully defaulted render options. A hit
//     skips layout entirely.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for
// the HTTP server when several instances share work, and [NullCache] when
// caching is disabled.
//
// Keys are produced by a [Keyer] so that callers never build key strings by
// hand. [ScopedKeyer] prefixes every key, which keeps test runs and distinct
// deployments sharing one Redis apart.
package cache

import (
	"context"
	"time"
)

// Default time-to-live for each cache tier.
const (
	TTLPuzzle   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss with (nil, false, nil). Errors are reserved for backend
// failures; callers treat them as misses and carry on.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer generates cache keys.
type Keyer interface {
	// PuzzleKey returns the key for a normalized puzzle given the hash of
	// the raw input bytes.
	PuzzleKey(inputHash string) string

	// ArtifactKey returns the key for a rendered artifact.
	ArtifactKey(puzzleHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds everything that changes the bytes of an artifact.
// Options must be JSON-serializable; it is hashed, not stored.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Options any    `json:"options"`
}

// DefaultKeyer produces keys of the form "<tier>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PuzzleKey implements Keyer.
func (DefaultKeyer) PuzzleKey(inputHash string) string {
	return "puzzle:" + inputHash
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(puzzleHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", puzzleHash, opts)
}

// WithTTL returns a Cache that stores every entry with ttl, whatever the
// caller asks for. A non-positive ttl returns c unchanged.
func WithTTL(c Cache, ttl time.Duration) Cache {
	if ttl <= 0 {
		return c
	}
	return fixedTTL{Cache: c, ttl: ttl}
}

type fixedTTL struct {
	Cache
	ttl time.Duration
}

func (c fixedTTL) Set(ctx context.Context, key string, data []byte, _ time.Duration) error {
	return c.Cache.Set(ctx, key, data, c.ttl)
}
