// Package lock implements the aggregate Locker port.
package lock

import (
	"context"
	"slices"
	"sync"

	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
)

// KeyedMutex is an in-process Locker: one mutex per key, created on demand and
// dropped when nobody holds or waits for it.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedEntry)}
}

var _ portsrepo.Locker = (*KeyedMutex)(nil)

// Lock acquires every key in sorted order. If ctx ends first the keys already
// taken are released and ctx.Err() is returned.
func (k *KeyedMutex) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = sortedUnique(keys)
	held := make([]string, 0, len(keys))

	for _, key := range keys {
		entry := k.acquireEntry(key)
		select {
		case entry.sem <- struct{}{}:
			held = append(held, key)
		case <-ctx.Done():
			k.releaseEntry(key, false)
			k.unlock(held)
			return nil, ctx.Err()
		}
	}

	var once sync.Once
	return func() { once.Do(func() { k.unlock(held) }) }, nil
}

func (k *KeyedMutex) acquireEntry(key string) *keyedEntry {
	k.mu.Lock()
	defer k.mu.Unlock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &keyedEntry{sem: make(chan struct{}, 1)}
		k.locks[key] = entry
	}
	entry.refs++
	return entry
}

func (k *KeyedMutex) releaseEntry(key string, held bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	entry := k.locks[key]
	if held {
		<-entry.sem
	}
	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}
}

func (k *KeyedMutex) unlock(held []string) {
	for i := len(held) - 1; i >= 0; i-- {
		k.releaseEntry(held[i], true)
	}
}

func sortedUnique(keys []string) []string {
	out := slices.Clone(keys)
	slices.Sort(out)
	return slices.Compact(out)
}
