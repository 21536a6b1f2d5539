package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payrecon/app"
)

func TestResultCache(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := NewResultCache(10 * time.Minute)
	cache.now = func() time.Time { return now }

	first := &app.Result{}
	id := cache.Put(first)

	got, ok := cache.Get(id)
	require.True(t, ok)
	assert.Same(t, first, got)

	now = now.Add(11 * time.Minute)
	_, ok = cache.Get(id)
	assert.False(t, ok)

	second := cache.Put(&app.Result{})
	assert.NotEqual(t, id, second)
	assert.Equal(t, 1, cache.Len())
}
