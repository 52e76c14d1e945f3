package vm

import (
	"sync/atomic"
	"unsafe"
)

// Allocator provides storage for instances. AllocateVariable returns an
// instance of class with exactly size logical slots, all empty. It knows
// nothing about how the slots are partitioned; size limits are enforced by
// the Builder before it is called.
type Allocator interface {
	AllocateVariable(class Ref, size int) *Instance
}

// HeapAllocator allocates instances on the Go heap and keeps running
// totals. Reclamation is left to the garbage collector.
type HeapAllocator struct {
	count atomic.Int64
	slots atomic.Int64
	words atomic.Int64
}

// NewHeapAllocator creates an allocator with zeroed counters.
func NewHeapAllocator() *HeapAllocator {
	return &HeapAllocator{}
}

// wordsPerSlot is the number of machine words one slot occupies.
const wordsPerSlot = int(unsafe.Sizeof(Value(nil)) / unsafe.Sizeof(uintptr(0)))

// AllocateVariable implements Allocator.
func (a *HeapAllocator) AllocateVariable(class Ref, size int) *Instance {
	inst := &Instance{
		class: class,
		sons:  make([]Value, size),
	}
	a.count.Add(1)
	a.slots.Add(int64(size))
	a.words.Add(int64(size * wordsPerSlot))
	return inst
}

// Count returns the number of instances allocated so far.
func (a *HeapAllocator) Count() int64 {
	return a.count.Load()
}

// Slots returns the total logical slots allocated so far.
func (a *HeapAllocator) Slots() int64 {
	return a.slots.Load()
}

// Words returns the total machine words backing the allocated slots.
func (a *HeapAllocator) Words() int64 {
	return a.words.Load()
}
