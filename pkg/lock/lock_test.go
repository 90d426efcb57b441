package lock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amirasaad/corebank/pkg/lock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyed_SerializesSameKey(t *testing.T) {
	k := lock.NewKeyed()
	id := uuid.New()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := k.Lock(context.Background(), id)
			require.NoError(t, err)
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside)
}

func TestKeyed_OppositeOrderDoesNotDeadlock(t *testing.T) {
	k := lock.NewKeyed()
	a, b := uuid.New(), uuid.New()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unlock, err := k.Lock(ctx, a, b)
			require.NoError(t, err)
			unlock()
		}()
		go func() {
			defer wg.Done()
			unlock, err := k.Lock(ctx, b, a)
			require.NoError(t, err)
			unlock()
		}()
	}
	wg.Wait()
}

func TestKeyed_ContextCancelled(t *testing.T) {
	k := lock.NewKeyed()
	id := uuid.New()
	unlock, err := k.Lock(context.Background(), id)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = k.Lock(ctx, id)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestKeyed_DuplicateIDs(t *testing.T) {
	k := lock.NewKeyed()
	id := uuid.New()
	unlock, err := k.Lock(context.Background(), id, id)
	require.NoError(t, err)
	unlock()

	unlock, err = k.Lock(context.Background(), id)
	require.NoError(t, err)
	unlock()
}
