package draftcache

import "fmt"

// CacheError wraps a backend failure for one operation on one key.
type CacheError struct {
	Op    string
	Key   string
	Cause error
}

func (e *CacheError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("cache %s failed: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("cache %s %q failed: %v", e.Op, e.Key, e.Cause)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}
