// Property-based tests for per-gambler lock serialization.
package lock

import (
	"sync"
	"sync/atomic"
	"testing"

	"pgregory.net/rapid"
)

// TestConcurrentBalanceSafetyProperty checks that concurrent
// read-modify-write operations on the same gambler, serialized by the
// lock, produce the same final balance as sequential execution.
func TestConcurrentBalanceSafetyProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initialBalance := rapid.Int64Range(-10000, 100000).Draw(t, "initialBalance")
		numOps := rapid.IntRange(2, 20).Draw(t, "numOps")

		amounts := make([]int64, numOps)
		expected := initialBalance
		for i := range amounts {
			amounts[i] = rapid.Int64Range(-2000, 2000).Draw(t, "amount")
			expected += amounts[i]
		}

		gamblerID := rapid.Int64Range(1, 1000000).Draw(t, "gamblerID")

		gl := NewGamblerLock()
		balance := initialBalance

		var wg sync.WaitGroup
		wg.Add(numOps)
		for _, amount := range amounts {
			go func(amount int64) {
				defer wg.Done()
				gl.Lock(gamblerID)
				defer gl.Unlock(gamblerID)
				balance += amount
			}(amount)
		}
		wg.Wait()

		if balance != expected {
			t.Fatalf("balance mismatch: expected %d, got %d", expected, balance)
		}
	})
}

// TestWithLockProperty checks that WithLock serializes its callback.
func TestWithLockProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numOps := rapid.IntRange(5, 30).Draw(t, "numOps")
		perOp := rapid.Int64Range(1, 100).Draw(t, "perOp")
		gamblerID := rapid.Int64Range(1, 1000000).Draw(t, "gamblerID")

		gl := NewGamblerLock()
		var balance int64
		expected := int64(numOps) * perOp

		var wg sync.WaitGroup
		wg.Add(numOps)
		for i := 0; i < numOps; i++ {
			go func() {
				defer wg.Done()
				_ = gl.WithLock(gamblerID, func() error {
					balance += perOp
					return nil
				})
			}()
		}
		wg.Wait()

		if balance != expected {
			t.Fatalf("balance mismatch: expected %d, got %d", expected, balance)
		}
	})
}

// TestIndependentGamblerLocksProperty checks that locks for different
// gamblers do not interfere with each other's tallies.
func TestIndependentGamblerLocksProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numGamblers := rapid.IntRange(2, 10).Draw(t, "numGamblers")
		opsPerGambler := rapid.IntRange(5, 20).Draw(t, "opsPerGambler")

		gl := NewGamblerLock()
		balances := make([]int64, numGamblers)

		var wg sync.WaitGroup
		wg.Add(numGamblers * opsPerGambler)
		for i := 0; i < numGamblers; i++ {
			for j := 0; j < opsPerGambler; j++ {
				go func(idx int) {
					defer wg.Done()
					id := int64(idx + 1)
					gl.Lock(id)
					defer gl.Unlock(id)
					balances[idx] += 10
				}(i)
			}
		}
		wg.Wait()

		for i, b := range balances {
			if b != int64(opsPerGambler)*10 {
				t.Fatalf("gambler %d balance mismatch: expected %d, got %d",
					i+1, int64(opsPerGambler)*10, b)
			}
		}
	})
}

// TestTryLockProperty checks that TryLock never deadlocks and leaves the
// lock available after all contenders finish.
func TestTryLockProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		gamblerID := rapid.Int64Range(1, 1000000).Draw(t, "gamblerID")
		numAttempts := rapid.IntRange(5, 20).Draw(t, "numAttempts")

		gl := NewGamblerLock()

		var successes atomic.Int32
		startCh := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(numAttempts)
		for i := 0; i < numAttempts; i++ {
			go func() {
				defer wg.Done()
				<-startCh
				if gl.TryLock(gamblerID) {
					successes.Add(1)
					gl.Unlock(gamblerID)
				}
			}()
		}
		close(startCh)
		wg.Wait()

		if successes.Load() < 1 {
			t.Fatalf("at least one TryLock should succeed, got %d", successes.Load())
		}

		if !gl.TryLock(gamblerID) {
			t.Fatal("lock should be available after all contenders release")
		}
		gl.Unlock(gamblerID)
	})
}
