package vm

import (
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"
	"github.com/sasha-s/go-deadlock"
)

func init() {
	// Lock diagnostics serialize every acquisition through a global
	// lock-order table; they stay off unless SetLockDiagnostics enables them.
	deadlock.Opts.Disable = true
}

// SetLockDiagnostics turns deadlock detection on object locks on or off.
// A lock held or awaited for longer than timeout is reported; a
// non-positive timeout disables the wait check. It must be called before
// any object lock is taken.
func SetLockDiagnostics(enabled bool, timeout time.Duration) {
	deadlock.Opts.Disable = !enabled
	deadlock.Opts.DeadlockTimeout = timeout
}

// callerGoroutine returns the id of the calling goroutine.
// Panics if the runtime layout is unknown to goid and no id is available.
func callerGoroutine() int64 {
	gid := goid.Get()
	if gid <= 0 {
		panic("vm: cannot determine the calling goroutine id")
	}
	return gid
}

// ---------------------------------------------------------------------------
// RecursiveMutex: per-object reentrant lock
// ---------------------------------------------------------------------------

// RecursiveMutex is a mutex that the owning goroutine may acquire again
// without blocking. Every Lock must be paired with an Unlock on the same
// goroutine. The zero value is unlocked.
type RecursiveMutex struct {
	mu    deadlock.Mutex
	owner atomic.Int64 // goroutine id of the holder, 0 when unlocked
	depth int          // guarded by mu
}

// Lock acquires the mutex, or deepens the hold if the calling goroutine
// already owns it.
func (m *RecursiveMutex) Lock() {
	gid := callerGoroutine()
	if m.owner.Load() == gid {
		m.depth++
		return
	}
	m.mu.Lock()
	m.owner.Store(gid)
	m.depth = 1
}

// TryLock acquires the mutex without blocking. It returns false if another
// goroutine holds it.
func (m *RecursiveMutex) TryLock() bool {
	gid := callerGoroutine()
	if m.owner.Load() == gid {
		m.depth++
		return true
	}
	if !m.mu.TryLock() {
		return false
	}
	m.owner.Store(gid)
	m.depth = 1
	return true
}

// Unlock releases one level of hold. The mutex is released to other
// goroutines when the depth drops to zero.
// Panics if the calling goroutine does not hold the mutex.
func (m *RecursiveMutex) Unlock() {
	if m.owner.Load() != callerGoroutine() {
		panic("vm: RecursiveMutex.Unlock by a goroutine that does not hold it")
	}
	m.depth--
	if m.depth > 0 {
		return
	}
	m.owner.Store(0)
	m.mu.Unlock()
}

// HeldByCaller reports whether the calling goroutine holds the mutex.
func (m *RecursiveMutex) HeldByCaller() bool {
	return m.owner.Load() == callerGoroutine()
}
