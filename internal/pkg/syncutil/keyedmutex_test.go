package syncutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockSerializesSameKey(t *testing.T) {
	m := NewKeyedMutex()

	const workers = 32
	var counter int
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := m.Lock(context.Background(), "txn-1")
			require.NoError(t, err)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestLockRespectsContextCancellation(t *testing.T) {
	m := NewKeyedMutex()

	unlock, err := m.Lock(context.Background(), "txn-1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = m.Lock(ctx, "txn-1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLockReleasedByUnlock(t *testing.T) {
	m := NewKeyedMutex()

	unlock, err := m.Lock(context.Background(), "txn-1")
	require.NoError(t, err)
	unlock()

	unlock2, err := m.Lock(context.Background(), "txn-1")
	require.NoError(t, err)
	unlock2()
}
