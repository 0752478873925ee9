package wizard

import (
	"fmt"
	"net/url"
)

// Mount query keys. Both are consumed once and stripped.
const (
	QueryContinue = "continue"
	QuerySelect   = "select"
)

// MountOptions are the one-shot instructions given when the builder opens.
type MountOptions struct {
	// Continue resumes the cached builder mode.
	Continue bool
	// Select forces the mode selector and clears the cached mode. It wins over Continue.
	Select bool
}

// ParseMountQuery reads continue=true and select=true from rawQuery and
// returns the query with both keys removed.
func ParseMountQuery(rawQuery string) (MountOptions, string, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return MountOptions{}, "", fmt.Errorf("failed to parse mount query: %w", err)
	}
	opts := MountOptions{
		Continue: values.Get(QueryContinue) == "true",
		Select:   values.Get(QuerySelect) == "true",
	}
	values.Del(QueryContinue)
	values.Del(QuerySelect)
	return opts, values.Encode(), nil
}
