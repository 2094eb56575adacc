package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemStore(t *testing.T) {
	t.Parallel()

	s := NewMemStore()

	require.NotNil(t, s)
	assert.Zero(t, s.Len(), "new store must be empty")
}

func TestMemStore_SetGet_RoundTrip(t *testing.T) {
	t.Parallel()

	s := NewMemStore()

	_, ok := s.Get("missing")
	require.False(t, ok, "Get on a missing key must report absence")

	prev, existed := s.Set("a", float64(1))
	require.False(t, existed)
	require.Nil(t, prev)

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, float64(1), got)
}

// Values keep their decoded JSON shape through the store: no coercion of
// numbers, booleans, nulls, objects or arrays.
func TestMemStore_ValueTypesPreserved(t *testing.T) {
	t.Parallel()

	s := NewMemStore()

	values := map[string]any{
		"string": "hello",
		"number": float64(42.5),
		"bool":   true,
		"null":   nil,
		"object": map[string]any{"nested": []any{float64(1), "two"}},
		"array":  []any{false, nil, "x"},
	}

	for key, value := range values {
		s.Set(key, value)
	}

	for key, want := range values {
		got, ok := s.Get(key)
		require.True(t, ok, "key %q must exist", key)
		assert.Equal(t, want, got, "value for key %q must round-trip unchanged", key)
	}
}

func TestMemStore_Set_Overwrite(t *testing.T) {
	t.Parallel()

	s := NewMemStore()

	s.Set("a", "old")
	prev, existed := s.Set("a", "new")

	require.True(t, existed, "overwrite must report the key existed")
	assert.Equal(t, "old", prev, "overwrite must return the replaced value")

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "new", got, "only the latest value may remain")
	assert.Equal(t, 1, s.Len())
}

func TestMemStore_Delete_Idempotent(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	s.Set("a", "value")

	removed, existed := s.Delete("a")
	require.True(t, existed)
	assert.Equal(t, "value", removed)

	_, existed = s.Delete("a")
	assert.False(t, existed, "second delete must be a no-op, not an error")

	_, existed = s.Delete("never-existed")
	assert.False(t, existed)
	assert.Zero(t, s.Len())
}

// Concurrent writers to the same key must leave exactly one of the submitted
// values behind, with no corruption (run with -race).
func TestMemStore_ConcurrentWriters(t *testing.T) {
	t.Parallel()

	const writers = 32

	s := NewMemStore()

	var wg sync.WaitGroup
	wg.Add(writers)

	for i := 0; i < writers; i++ {
		i := i
		go func() {
			defer wg.Done()
			s.Set("contended", fmt.Sprintf("value-%d", i))
		}()
	}

	wg.Wait()

	got, ok := s.Get("contended")
	require.True(t, ok)

	submitted := make(map[any]bool, writers)
	for i := 0; i < writers; i++ {
		submitted[fmt.Sprintf("value-%d", i)] = true
	}
	assert.True(t, submitted[got], "final value %v must be one of the submitted values", got)
	assert.Equal(t, 1, s.Len())
}

func TestMemStore_ConcurrentReadersAndWriters(t *testing.T) {
	t.Parallel()

	s := NewMemStore()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.Set("key", "value")
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, _ = s.Get("key")
		}
	}()

	wg.Wait()
}
