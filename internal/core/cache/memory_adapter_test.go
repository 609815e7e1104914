package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newFakeClockAdapter() (*MemoryAdapter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewMemoryAdapter()
	m.now = clock.Now
	return m, clock
}

func TestMemoryAdapter_GetSet(t *testing.T) {
	m := NewMemoryAdapter()
	ctx := context.Background()

	value := []byte(`{"guia":"123"}`)
	require.NoError(t, m.Set(ctx, "pkg:123", value, time.Minute))

	got, err := m.Get(ctx, "pkg:123")
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestMemoryAdapter_GetNotFound(t *testing.T) {
	m := NewMemoryAdapter()

	_, err := m.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryAdapter_ExpiresWithRealClock(t *testing.T) {
	m := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryAdapter_LazyEviction(t *testing.T) {
	m, clock := newFakeClockAdapter()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Second))

	clock.Advance(time.Second)
	_, err := m.Get(ctx, "k")
	require.NoError(t, err, "entry is live until now passes expiresAt")

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, m.Len(), "expired entry stays until read")

	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestMemoryAdapter_NoRefreshOnRead(t *testing.T) {
	m, clock := newFakeClockAdapter()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 10*time.Second))

	for i := 0; i < 3; i++ {
		clock.Advance(3 * time.Second)
		_, err := m.Get(ctx, "k")
		require.NoError(t, err)
	}

	clock.Advance(2 * time.Second)
	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryAdapter_OverwriteResetsExpiry(t *testing.T) {
	m, clock := newFakeClockAdapter()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("old"), time.Second))
	clock.Advance(900 * time.Millisecond)
	require.NoError(t, m.Set(ctx, "k", []byte("new"), time.Second))
	clock.Advance(900 * time.Millisecond)

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestMemoryAdapter_ZeroTTLNeverExpires(t *testing.T) {
	m, clock := newFakeClockAdapter()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 0))
	clock.Advance(24 * time.Hour)

	_, err := m.Get(ctx, "k")
	assert.NoError(t, err)
}

func TestMemoryAdapter_DeleteAndClose(t *testing.T) {
	m := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, m.Delete(ctx, "a"))
	_, err := m.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, m.Ping(ctx))
	require.NoError(t, m.Close())
	assert.Equal(t, 0, m.Len())
}

func TestMemoryAdapter_ConcurrentAccess(t *testing.T) {
	m := NewMemoryAdapter()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("k%d", j%10)
				_ = m.Set(ctx, key, []byte{byte(i)}, time.Millisecond)
				_, _ = m.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, m.Len(), 10)
}
