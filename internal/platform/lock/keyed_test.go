package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	k := NewKeyedMutex()
	var mu sync.Mutex
	active, maxActive := 0, 0

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := k.Lock(context.Background(), "product:a")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			active--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive)
	assert.Empty(t, k.locks)
}

func TestKeyedMutex_DistinctKeysDoNotBlock(t *testing.T) {
	k := NewKeyedMutex()
	unlockA, err := k.Lock(context.Background(), "product:a")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := k.Lock(ctx, "product:b", "person:x")
	require.NoError(t, err)
	unlockB()
}

func TestKeyedMutex_ContextCancelReleasesPartialHold(t *testing.T) {
	k := NewKeyedMutex()
	unlockB, err := k.Lock(context.Background(), "product:b")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = k.Lock(ctx, "product:b", "product:a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// product:a was taken first and must be free again.
	unlockA, err := k.Lock(context.Background(), "product:a")
	require.NoError(t, err)
	unlockA()
	unlockB()
	assert.Empty(t, k.locks)
}

func TestKeyedMutex_UnlockIsIdempotent(t *testing.T) {
	k := NewKeyedMutex()
	unlock, err := k.Lock(context.Background(), "budget:settings", "budget:settings")
	require.NoError(t, err)
	unlock()
	unlock()

	again, err := k.Lock(context.Background(), "budget:settings")
	require.NoError(t, err)
	again()
}
