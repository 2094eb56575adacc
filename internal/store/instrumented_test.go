package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedStore_Delegates(t *testing.T) {
	t.Parallel()

	s := NewInstrumentedStore(NewMemStore())

	prev, existed := s.Set("a", "one")
	require.False(t, existed)
	require.Nil(t, prev)

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "one", got)

	removed, existed := s.Delete("a")
	require.True(t, existed)
	assert.Equal(t, "one", removed)

	_, ok = s.Get("a")
	assert.False(t, ok)
}

func TestInstrumentedStore_CountsOperations(t *testing.T) {
	t.Parallel()

	s := NewInstrumentedStore(NewMemStore())

	s.Set("a", 1)
	s.Set("a", 2)
	s.Get("a")
	s.Get("missing")
	s.Get("a")
	s.Delete("a")

	snap := s.GetMetrics()
	assert.Equal(t, uint64(2), snap.SetCount)
	assert.Equal(t, uint64(3), snap.GetCount)
	assert.Equal(t, uint64(1), snap.DeleteCount)
}

func TestInstrumentedStore_ResetMetrics(t *testing.T) {
	t.Parallel()

	s := NewInstrumentedStore(NewMemStore())

	s.Set("a", 1)
	s.Get("a")
	s.Delete("a")
	s.ResetMetrics()

	snap := s.GetMetrics()
	assert.Zero(t, snap.SetCount)
	assert.Zero(t, snap.GetCount)
	assert.Zero(t, snap.DeleteCount)
	assert.Zero(t, snap.GetAvgLatency)
	assert.Zero(t, snap.SetAvgLatency)
	assert.Zero(t, snap.DeleteAvgLatency)
}
