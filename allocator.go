package simplevector

import (
	"fmt"
	"math/bits"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"unsafe"
)

// maxAllocBytes mirrors the runtime's heap address limit: 1<<47 on 64-bit
// platforms and 1<<31 on 32-bit ones.
const maxAllocBytes uint64 = 1 << (31 + 16*(bits.UintSize/64))

// maxPoolClass is the largest size class kept in the pool allocator (16M slots).
const maxPoolClass = 24

// --- Slot Allocator Abstraction ---

// slotAllocator defines the interface for memory allocation strategies for buffers.
// This allows swapping between plain heap allocation, sync.Pool size classes or a slot arena.
// slotAllocator คือ interface สำหรับกลยุทธ์การจัดสรรหน่วยความจำให้กับ Buffer
// ทำให้สามารถสลับระหว่าง heap, sync.Pool หรือ arena ได้
type slotAllocator[T any] interface {
	// Alloc returns exactly n zero-valued slots or an error wrapping ErrOutOfMemory.
	Alloc(n int) ([]T, error)
	// Free hands a block obtained from Alloc back to the allocator.
	Free(slots []T)
	Stats() Stats
}

// Stats is a snapshot of an allocator's counters.
type Stats struct {
	Acquisitions int64 // blocks handed out
	Releases     int64 // blocks given back through Free
	Failures     int64 // requests answered with ErrOutOfMemory
	LiveSlots    int64 // slots handed out and not yet freed
	Chunks       int64 // arena chunks allocated (arena strategy only)
}

type allocCounters struct {
	acquisitions atomic.Int64
	releases     atomic.Int64
	failures     atomic.Int64
	live         atomic.Int64
	chunks       atomic.Int64
}

func (c *allocCounters) acquired(n int) {
	c.acquisitions.Add(1)
	c.live.Add(int64(n))
}

func (c *allocCounters) released(n int) {
	c.releases.Add(1)
	c.live.Add(-int64(n))
}

func (c *allocCounters) snapshot() Stats {
	return Stats{
		Acquisitions: c.acquisitions.Load(),
		Releases:     c.releases.Load(),
		Failures:     c.failures.Load(),
		LiveSlots:    c.live.Load(),
		Chunks:       c.chunks.Load(),
	}
}

// checkRequest rejects requests that can never be satisfied for T.
func checkRequest[T any](n int) error {
	var zero T
	size := uint64(unsafe.Sizeof(zero))
	if size != 0 && uint64(n) > maxAllocBytes/size {
		return fmt.Errorf("%w: %d slots of %d bytes exceed the address limit", ErrOutOfMemory, n, size)
	}
	return nil
}

// makeSlots allocates n zero-valued slots. The runtime's makeslice length
// panic is converted into ErrOutOfMemory; any other panic is re-raised.
func makeSlots[T any](n int) (slots []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(runtime.Error)
			if !ok || !strings.Contains(re.Error(), "makeslice") {
				panic(r)
			}
			slots, err = nil, fmt.Errorf("%w: %v", ErrOutOfMemory, re)
		}
	}()
	return make([]T, n), nil
}

// --- Heap Implementation ---

// heapAllocator implements slotAllocator with plain make; freed blocks are left to the GC.
type heapAllocator[T any] struct {
	counters allocCounters
}

func newHeapAllocator[T any]() *heapAllocator[T] {
	return &heapAllocator[T]{}
}

func (h *heapAllocator[T]) Alloc(n int) ([]T, error) {
	if err := checkRequest[T](n); err != nil {
		h.counters.failures.Add(1)
		return nil, err
	}
	slots, err := makeSlots[T](n)
	if err != nil {
		h.counters.failures.Add(1)
		return nil, err
	}
	h.counters.acquired(n)
	return slots, nil
}

func (h *heapAllocator[T]) Free(slots []T) {
	h.counters.released(len(slots))
}

func (h *heapAllocator[T]) Stats() Stats {
	return h.counters.snapshot()
}

// --- sync.Pool Implementation ---

// poolAllocator implements slotAllocator with one sync.Pool per power-of-two size class.
// Blocks are rounded up to their class and cleared before going back to the pool,
// so a reused block never carries values of its previous owner.
type poolAllocator[T any] struct {
	pools    [maxPoolClass + 1]sync.Pool
	counters allocCounters
}

func newPoolAllocator[T any]() *poolAllocator[T] {
	return &poolAllocator[T]{}
}

// sizeClass returns the smallest c with 1<<c >= n, for n >= 1.
func sizeClass(n int) int {
	return bits.Len(uint(n - 1))
}

func (p *poolAllocator[T]) Alloc(n int) ([]T, error) {
	if err := checkRequest[T](n); err != nil {
		p.counters.failures.Add(1)
		return nil, err
	}
	class := sizeClass(n)
	if class > maxPoolClass {
		slots, err := makeSlots[T](n)
		if err != nil {
			p.counters.failures.Add(1)
			return nil, err
		}
		p.counters.acquired(n)
		return slots, nil
	}
	if ptr, _ := p.pools[class].Get().(*[]T); ptr != nil {
		p.counters.acquired(n)
		return (*ptr)[:n], nil
	}
	block, err := makeSlots[T](1 << class)
	if err != nil {
		p.counters.failures.Add(1)
		return nil, err
	}
	p.counters.acquired(n)
	return block[:n], nil
}

func (p *poolAllocator[T]) Free(slots []T) {
	p.counters.released(len(slots))
	c := cap(slots)
	if c == 0 || c&(c-1) != 0 {
		return
	}
	class := sizeClass(c)
	if class > maxPoolClass {
		return
	}
	full := slots[:c]
	clear(full)
	p.pools[class].Put(&full)
}

func (p *poolAllocator[T]) Stats() Stats {
	return p.counters.snapshot()
}

// --- Limit Implementation ---

// limitedAllocator caps the number of live slots handed out by the wrapped allocator.
// During a reallocation the old and the new block are both live, so a vector
// of capacity c needs room for c + 2c slots to double.
type limitedAllocator[T any] struct {
	next     slotAllocator[T]
	limit    int64
	live     atomic.Int64
	rejected atomic.Int64
}

func newLimitedAllocator[T any](next slotAllocator[T], limit int) *limitedAllocator[T] {
	return &limitedAllocator[T]{next: next, limit: int64(limit)}
}

// Alloc reserves n slots against the limit with a CAS loop before asking the
// wrapped allocator, and gives them back if that allocation fails.
func (l *limitedAllocator[T]) Alloc(n int) ([]T, error) {
	for {
		cur := l.live.Load()
		if cur+int64(n) > l.limit {
			l.rejected.Add(1)
			return nil, fmt.Errorf("%w: %d slots requested, %d of %d in use", ErrOutOfMemory, n, cur, l.limit)
		}
		if l.live.CompareAndSwap(cur, cur+int64(n)) {
			break
		}
	}
	slots, err := l.next.Alloc(n)
	if err != nil {
		l.live.Add(-int64(n))
		return nil, err
	}
	return slots, nil
}

func (l *limitedAllocator[T]) Free(slots []T) {
	l.live.Add(-int64(len(slots)))
	l.next.Free(slots)
}

func (l *limitedAllocator[T]) Stats() Stats {
	s := l.next.Stats()
	s.Failures += l.rejected.Load()
	return s
}
