package draftcache

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SuggestionKind names one free-text suggestion list.
type SuggestionKind string

const (
	SuggestJobTitles SuggestionKind = "job_titles"
	SuggestCompanies SuggestionKind = "companies"
	SuggestLocations SuggestionKind = "locations"
	SuggestSkills    SuggestionKind = "skills"
)

// MaxSuggestions caps each list; the lowest-ranked value is evicted first.
const MaxSuggestions = 20

// SuggestionKey returns the cache key for kind.
func SuggestionKey(kind SuggestionKind) string {
	return suggestPrefix + string(kind)
}

// Suggestion is one remembered value.
type Suggestion struct {
	Value    string    `json:"value"`
	Uses     int       `json:"uses"`
	LastUsed time.Time `json:"last_used"`
}

// Suggestions records and ranks values the user has typed.
type Suggestions struct {
	store Store
	now   Clock
}

// NewSuggestions wraps store. A nil clock uses time.Now.
func NewSuggestions(store Store, now Clock) *Suggestions {
	if now == nil {
		now = time.Now
	}
	return &Suggestions{store: store, now: now}
}

// Record bumps value's use count and recency. Matching is case-insensitive;
// the most recent spelling wins. Blank values are ignored.
func (s *Suggestions) Record(kind SuggestionKind, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	list, err := s.load(kind)
	if err != nil {
		return err
	}

	now := s.now()
	found := false
	for i := range list {
		if strings.EqualFold(list[i].Value, value) {
			list[i].Value = value
			list[i].Uses++
			list[i].LastUsed = now
			found = true
			break
		}
	}
	if !found {
		list = append(list, Suggestion{Value: value, Uses: 1, LastUsed: now})
	}

	rank(list)
	if len(list) > MaxSuggestions {
		list = list[:MaxSuggestions]
	}

	if err := s.store.Set(SuggestionKey(kind), list, Options{}); err != nil {
		return fmt.Errorf("failed to save %s suggestions: %w", kind, err)
	}
	return nil
}

// List returns the values of kind starting with prefix (case-insensitive),
// most used first, ties broken by recency.
func (s *Suggestions) List(kind SuggestionKind, prefix string) ([]string, error) {
	list, err := s.load(kind)
	if err != nil {
		return nil, err
	}
	rank(list)

	prefix = strings.ToLower(strings.TrimSpace(prefix))
	out := make([]string, 0, len(list))
	for _, sg := range list {
		if strings.HasPrefix(strings.ToLower(sg.Value), prefix) {
			out = append(out, sg.Value)
		}
	}
	return out, nil
}

func (s *Suggestions) load(kind SuggestionKind) ([]Suggestion, error) {
	list, _, err := GetValue[[]Suggestion](s.store, SuggestionKey(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s suggestions: %w", kind, err)
	}
	return list, nil
}

func rank(list []Suggestion) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Uses != list[j].Uses {
			return list[i].Uses > list[j].Uses
		}
		return list[i].LastUsed.After(list[j].LastUsed)
	})
}
