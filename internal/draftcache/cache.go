// Package draftcache persists the in-progress CV, the chosen builder mode,
// AI insights and suggestion lists between runs.
//
// Entries carry an optional expiry. Expiry is honoured lazily: an expired
// entry reads as absent and is removed on that read; Purge removes the rest.
package draftcache

import (
	"encoding/json"
	"fmt"
	"time"
)

// Keys under which the wizard persists its state.
const (
	DraftKey      = "cv_builder_draft"
	ModeKey       = "cv_builder_mode"
	InsightsKey   = "cv_ai_insights"
	suggestPrefix = "cv_suggestions_"
)

// Retention for the well-known keys. Suggestions never expire.
const (
	DraftTTL    = 30 * 24 * time.Hour
	ModeTTL     = 30 * 24 * time.Hour
	InsightsTTL = 7 * 24 * time.Hour
)

// Options controls how a value is stored.
type Options struct {
	// ExpiresIn is the lifetime of the entry. Zero means it never expires.
	ExpiresIn time.Duration
}

// Store is a key/value cache with per-entry expiry.
type Store interface {
	// Set stores value (JSON-encoded) under key, replacing any previous entry.
	Set(key string, value any, opts Options) error
	// Get decodes the entry stored under key into out. It reports false when
	// the key is absent or expired.
	Get(key string, out any) (bool, error)
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// Purge deletes every expired entry and returns how many were removed.
	Purge() (int, error)
	Close() error
}

// GetValue is a typed wrapper around Store.Get.
func GetValue[T any](s Store, key string) (T, bool, error) {
	var v T
	ok, err := s.Get(key, &v)
	if err != nil || !ok {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

// Clock returns the current time. Stores take one so tests can move time.
type Clock func() time.Time

func encode(key string, value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, &CacheError{Op: "set", Key: key, Cause: fmt.Errorf("failed to encode value: %w", err)}
	}
	return data, nil
}

func decode(key string, data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return &CacheError{Op: "get", Key: key, Cause: fmt.Errorf("failed to decode value: %w", err)}
	}
	return nil
}

func expiry(now time.Time, opts Options) *time.Time {
	if opts.ExpiresIn <= 0 {
		return nil
	}
	t := now.Add(opts.ExpiresIn)
	return &t
}
