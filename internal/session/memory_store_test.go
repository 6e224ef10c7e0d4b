package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newMemoryStoreWithClock() (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	store.now = clock.Now
	return store, clock
}

func TestMemoryStore_SaveLoadDelete(t *testing.T) {
	store, _ := newMemoryStoreWithClock()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", State{UserID: 7}, time.Minute))
	state, err := store.Load(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, uint(7), state.UserID)

	require.NoError(t, store.Delete(ctx, "a"))
	require.NoError(t, store.Delete(ctx, "a"))
	state, err = store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	store, _ := newMemoryStoreWithClock()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "a", State{UserID: 7}, time.Minute))

	state, _ := store.Load(ctx, "a")
	state.UserID = 99

	again, _ := store.Load(ctx, "a")
	assert.Equal(t, uint(7), again.UserID)
}

func TestMemoryStore_ExpiryAndSweep(t *testing.T) {
	store, clock := newMemoryStoreWithClock()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short", State{UserID: 1}, time.Minute))
	require.NoError(t, store.Save(ctx, "long", State{UserID: 2}, time.Hour))

	clock.t = clock.t.Add(2 * time.Minute)

	state, err := store.Load(ctx, "short")
	require.NoError(t, err)
	assert.Nil(t, state)
	assert.Equal(t, 2, store.Len())

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())

	state, err = store.Load(ctx, "long")
	require.NoError(t, err)
	require.NotNil(t, state)
}

func TestMemoryStore_RunSweeperStopsOnCancel(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		store.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
