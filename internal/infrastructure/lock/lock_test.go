package lock

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestKeyedMutex_SerialisesSameKey(t *testing.T) {
	locker := NewKeyedMutex()
	var (
		inside  atomic.Int32
		maxSeen atomic.Int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), "ob-1")
			if !assert.NoError(t, err) {
				return
			}
			n := inside.Add(1)
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen.Load())
	assert.Empty(t, locker.slots)
}

func TestKeyedMutex_IndependentKeysAndCancellation(t *testing.T) {
	locker := NewKeyedMutex()
	unlockA, err := locker.Lock(context.Background(), "ob-a")
	require.NoError(t, err)

	unlockB, err := locker.Lock(context.Background(), "ob-b")
	require.NoError(t, err)
	unlockB()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "ob-a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlockA()
	unlockA()
	again, err := locker.Lock(context.Background(), "ob-a")
	require.NoError(t, err)
	again()
}

func TestRedisLocker_ExcludesAndReleases(t *testing.T) {
	mr, client := setupRedis(t)
	locker := NewRedisLocker(client, 5*time.Second, slog.Default())
	locker.retryWait = 5 * time.Millisecond

	unlock, err := locker.Lock(context.Background(), "ob-1")
	require.NoError(t, err)
	assert.True(t, mr.Exists(keyPrefix+"ob-1"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "ob-1")
	assert.ErrorIs(t, err, ErrLockTimeout)

	unlock()
	assert.False(t, mr.Exists(keyPrefix+"ob-1"))

	unlock2, err := locker.Lock(context.Background(), "ob-1")
	require.NoError(t, err)
	unlock2()
}

func TestRedisLocker_DoesNotReleaseForeignLock(t *testing.T) {
	mr, client := setupRedis(t)
	locker := NewRedisLocker(client, time.Second, slog.Default())

	unlock, err := locker.Lock(context.Background(), "ob-1")
	require.NoError(t, err)

	// Our lease expires and another replica takes the lock.
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set(keyPrefix+"ob-1", "other-replica"))

	unlock()

	got, err := mr.Get(keyPrefix + "ob-1")
	require.NoError(t, err)
	assert.Equal(t, "other-replica", got)
}

func TestRedisLocker_WaitsForHolder(t *testing.T) {
	_, client := setupRedis(t)
	locker := NewRedisLocker(client, 5*time.Second, slog.Default())
	locker.retryWait = 2 * time.Millisecond

	unlock, err := locker.Lock(context.Background(), "ob-1")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		u, err := locker.Lock(context.Background(), "ob-1")
		if err == nil {
			u()
		}
		close(acquired)
	}()

	time.Sleep(10 * time.Millisecond)
	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second caller never acquired the lock")
	}
}
