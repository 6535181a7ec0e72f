package syncutil

import (
	"context"
	"hash/fnv"
)

const shardCount = 128

// KeyedMutex serializes writers that operate on the same string key, for
// example concurrent alert creation for one transaction ID or profile
// upserts for one customer ID. Locking respects context cancellation so a
// caller with a deadline is not stranded waiting on a contended key.
//
// Keys are hashed onto a fixed pool of shards, so unrelated keys may
// occasionally share a lock. That only costs latency, never correctness.
type KeyedMutex struct {
	shards [shardCount]chan struct{}
}

// NewKeyedMutex creates a keyed mutex with all shards unlocked
func NewKeyedMutex() *KeyedMutex {
	m := &KeyedMutex{}
	for i := range m.shards {
		m.shards[i] = make(chan struct{}, 1)
		m.shards[i] <- struct{}{}
	}
	return m
}

// Lock acquires the lock for key. On success it returns an unlock
// function the caller must invoke. If ctx is cancelled while waiting,
// Lock returns the context error and no lock is held.
func (m *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	shard := m.shards[m.index(key)]
	select {
	case <-shard:
		return func() { shard <- struct{}{} }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *KeyedMutex) index(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32() % shardCount
}
