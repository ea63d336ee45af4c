// Package lock serialises payment processing per obligation.
package lock

import (
	"context"
	"sync"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
)

var _ port.ObligationLocker = (*KeyedMutex)(nil)

// KeyedMutex is a process-local ObligationLocker. Waiters give up when
// their context ends.
type KeyedMutex struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch      chan struct{}
	waiters int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{slots: make(map[string]*slot)}
}

func (k *KeyedMutex) Lock(ctx context.Context, obligationID string) (func(), error) {
	k.mu.Lock()
	s, ok := k.slots[obligationID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		k.slots[obligationID] = s
	}
	s.waiters++
	k.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(obligationID, s, false)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { k.release(obligationID, s, true) })
	}, nil
}

func (k *KeyedMutex) release(key string, s *slot, held bool) {
	if held {
		<-s.ch
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	s.waiters--
	if s.waiters == 0 {
		delete(k.slots, key)
	}
}
