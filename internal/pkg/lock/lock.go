// Package lock provides per-gambler locking so concurrent plays for the
// same account serialize their read-modify-write against the store.
package lock

import "sync"

// gamblerMutex wraps a mutex with reference counting for reuse.
type gamblerMutex struct {
	mu       sync.Mutex
	refCount int
}

// GamblerLock hands out one mutex per gambler id.
type GamblerLock struct {
	locks sync.Map // map[int64]*gamblerMutex
	pool  sync.Pool
}

// NewGamblerLock creates a new GamblerLock instance.
func NewGamblerLock() *GamblerLock {
	return &GamblerLock{
		pool: sync.Pool{
			New: func() any {
				return &gamblerMutex{}
			},
		},
	}
}

// getLock retrieves or creates the mutex for the given gambler id.
func (gl *GamblerLock) getLock(id int64) *gamblerMutex {
	if v, ok := gl.locks.Load(id); ok {
		return v.(*gamblerMutex)
	}

	newLock := gl.pool.Get().(*gamblerMutex)
	newLock.refCount = 0

	actual, loaded := gl.locks.LoadOrStore(id, newLock)
	if loaded {
		// Another goroutine created the lock first, return ours to pool
		gl.pool.Put(newLock)
	}
	return actual.(*gamblerMutex)
}

// Lock acquires the lock for a gambler. Call before any
// balance-modifying operation.
func (gl *GamblerLock) Lock(id int64) {
	lock := gl.getLock(id)
	lock.mu.Lock()
	lock.refCount++
}

// Unlock releases the lock for a gambler.
func (gl *GamblerLock) Unlock(id int64) {
	if v, ok := gl.locks.Load(id); ok {
		lock := v.(*gamblerMutex)
		lock.refCount--
		lock.mu.Unlock()
	}
}

// TryLock attempts to acquire the lock without blocking.
func (gl *GamblerLock) TryLock(id int64) bool {
	lock := gl.getLock(id)
	if lock.mu.TryLock() {
		lock.refCount++
		return true
	}
	return false
}

// WithLock executes fn while holding the gambler's lock.
func (gl *GamblerLock) WithLock(id int64, fn func() error) error {
	gl.Lock(id)
	defer gl.Unlock(id)
	return fn()
}
