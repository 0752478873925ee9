package draftcache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

// fakeClock is a settable clock shared by a store under test.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

// backends runs fn against every Store implementation.
func backends(t *testing.T, fn func(t *testing.T, s Store, clock *fakeClock)) {
	t.Run("memory", func(t *testing.T) {
		clock := newClock()
		fn(t, NewMemoryStore(clock.Now), clock)
	})
	t.Run("sqlite", func(t *testing.T) {
		clock := newClock()
		s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "cache.db"), clock.Now)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		fn(t, s, clock)
	})
}

func sampleCV() *types.CVData {
	cv := types.NewCVData()
	cv.Profile = types.PersonalInfo{FullName: "Ada Lovelace", Email: "ada@example.com", Location: "London"}
	cv.Experience = []types.Experience{{
		ID:           "b7d1c0de-0000-4000-8000-000000000001",
		Company:      "Analytical Engines Ltd",
		JobTitle:     "Programmer",
		StartDate:    "1842-01",
		Current:      true,
		Achievements: []string{"First published algorithm"},
	}}
	cv.Projects = []types.Project{{ID: "p1", Name: "Note G", TechStack: []string{"Difference Engine"}}}
	cv.Certifications = []types.Certification{{ID: "c1", Name: "Mathematics", Issuer: "De Morgan"}}
	cv.AIInsights = types.Some(types.AIInsights{ATSScore: 88, Keywords: []string{"algorithms"}})
	return cv
}

func TestStore_DraftRoundTrip(t *testing.T) {
	backends(t, func(t *testing.T, s Store, _ *fakeClock) {
		want := sampleCV()
		require.NoError(t, s.Set(DraftKey, want, Options{ExpiresIn: DraftTTL}))

		got, ok, err := GetValue[*types.CVData](s, DraftKey)
		require.NoError(t, err)
		require.True(t, ok)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("draft round trip mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestStore_MissingKey(t *testing.T) {
	backends(t, func(t *testing.T, s Store, _ *fakeClock) {
		var out string
		ok, err := s.Get("absent", &out)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, out)
	})
}

func TestStore_Overwrite(t *testing.T) {
	backends(t, func(t *testing.T, s Store, _ *fakeClock) {
		require.NoError(t, s.Set(ModeKey, types.ModeManual, Options{ExpiresIn: ModeTTL}))
		require.NoError(t, s.Set(ModeKey, types.ModeAIInterview, Options{ExpiresIn: ModeTTL}))

		mode, ok, err := GetValue[types.BuilderMode](s, ModeKey)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, types.ModeAIInterview, mode)
	})
}

func TestStore_Expiry(t *testing.T) {
	backends(t, func(t *testing.T, s Store, clock *fakeClock) {
		require.NoError(t, s.Set(InsightsKey, types.AIInsights{ATSScore: 70}, Options{ExpiresIn: InsightsTTL}))

		clock.Advance(InsightsTTL - time.Minute)
		_, ok, err := GetValue[types.AIInsights](s, InsightsKey)
		require.NoError(t, err)
		assert.True(t, ok, "entry should be readable before expiry")

		clock.Advance(time.Minute)
		_, ok, err = GetValue[types.AIInsights](s, InsightsKey)
		require.NoError(t, err)
		assert.False(t, ok, "entry should read as absent at expiry")
	})
}

func TestStore_NoExpiry(t *testing.T) {
	backends(t, func(t *testing.T, s Store, clock *fakeClock) {
		require.NoError(t, s.Set("forever", 42, Options{}))
		clock.Advance(10 * 365 * 24 * time.Hour)

		n, ok, err := GetValue[int](s, "forever")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 42, n)
	})
}

func TestStore_Remove(t *testing.T) {
	backends(t, func(t *testing.T, s Store, _ *fakeClock) {
		require.NoError(t, s.Set(DraftKey, sampleCV(), Options{ExpiresIn: DraftTTL}))
		require.NoError(t, s.Remove(DraftKey))
		require.NoError(t, s.Remove(DraftKey), "removing twice is not an error")

		_, ok, err := GetValue[*types.CVData](s, DraftKey)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStore_Purge(t *testing.T) {
	backends(t, func(t *testing.T, s Store, clock *fakeClock) {
		require.NoError(t, s.Set("short", "a", Options{ExpiresIn: time.Hour}))
		require.NoError(t, s.Set("long", "b", Options{ExpiresIn: 48 * time.Hour}))
		require.NoError(t, s.Set("never", "c", Options{}))

		clock.Advance(2 * time.Hour)
		n, err := s.Purge()
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		_, ok, _ := GetValue[string](s, "long")
		assert.True(t, ok)
		_, ok, _ = GetValue[string](s, "never")
		assert.True(t, ok)
	})
}

func TestStore_DecodeError(t *testing.T) {
	backends(t, func(t *testing.T, s Store, _ *fakeClock) {
		require.NoError(t, s.Set(ModeKey, "manual", Options{}))

		var n int
		ok, err := s.Get(ModeKey, &n)
		assert.False(t, ok)
		var cacheErr *CacheError
		require.ErrorAs(t, err, &cacheErr)
		assert.Equal(t, "get", cacheErr.Op)
		assert.Equal(t, ModeKey, cacheErr.Key)
	})
}

func TestStore_EncodeError(t *testing.T) {
	backends(t, func(t *testing.T, s Store, _ *fakeClock) {
		err := s.Set("chan", make(chan int), Options{})
		var cacheErr *CacheError
		require.ErrorAs(t, err, &cacheErr)
		assert.Equal(t, "set", cacheErr.Op)
	})
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	s, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Set(DraftKey, sampleCV(), Options{ExpiresIn: DraftTTL}))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path, nil)
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := GetValue[*types.CVData](s, DraftKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", got.Profile.FullName)
	assert.Equal(t, path, s.Path())

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{DraftKey}, keys)
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache path is empty")
}

func TestMemoryStore_Keys(t *testing.T) {
	s := NewMemoryStore(nil)
	require.NoError(t, s.Set("b", 1, Options{}))
	require.NoError(t, s.Set("a", 2, Options{}))

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}
