package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandshakeBeginAndConsume(t *testing.T) {
	store := NewHandshakeStore(time.Minute)

	state := store.Begin("etkinlik-1")
	require.NotEmpty(t, state)

	eventID, ok := store.Consume(state)
	assert.True(t, ok)
	assert.Equal(t, "etkinlik-1", eventID)
}

func TestHandshakeIsSingleUse(t *testing.T) {
	store := NewHandshakeStore(time.Minute)

	state := store.Begin("e1")
	_, ok := store.Consume(state)
	require.True(t, ok)

	_, ok = store.Consume(state)
	assert.False(t, ok)
}

func TestHandshakeUnknownState(t *testing.T) {
	store := NewHandshakeStore(time.Minute)

	_, ok := store.Consume("uydurma-state")
	assert.False(t, ok)
}

func TestHandshakeExpires(t *testing.T) {
	store := NewHandshakeStore(time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }

	state := store.Begin("e1")

	// TTL penceresi geçti; state artık geçersiz.
	current = current.Add(2 * time.Minute)
	_, ok := store.Consume(state)
	assert.False(t, ok)
}

func TestHandshakeDistinctStates(t *testing.T) {
	store := NewHandshakeStore(time.Minute)

	s1 := store.Begin("e1")
	s2 := store.Begin("e2")
	require.NotEqual(t, s1, s2)

	e2, ok := store.Consume(s2)
	require.True(t, ok)
	assert.Equal(t, "e2", e2)

	e1, ok := store.Consume(s1)
	require.True(t, ok)
	assert.Equal(t, "e1", e1)
}

func TestHandshakePrunesExpiredEntries(t *testing.T) {
	store := NewHandshakeStore(time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }

	store.Begin("eski")
	current = current.Add(2 * time.Minute)

	// Yeni bir Begin süresi geçmiş kayıtları temizler.
	store.Begin("yeni")
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.entries, 1)
}
