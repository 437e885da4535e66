package simplevector

import (
	"sync"
	"unsafe"
)

// slotArena hands out slot blocks from large pre-allocated chunks.
// This reduces GC overhead for vectors that reallocate often and keeps successive
// buffers close together in memory.
// It is not a general-purpose allocator: a freed block is only reused when it was
// the most recent allocation of the current chunk, in which case the bump offset rolls back.
// slotArena คือ Allocator ที่ตัดแบ่ง slot จาก chunk ขนาดใหญ่ที่จองไว้ล่วงหน้า
// หน่วยความจำจะถูกนำกลับมาใช้ใหม่ได้ก็ต่อเมื่อ block ที่คืนเป็น block ล่าสุดของ chunk เท่านั้น
type slotArena[T any] struct {
	mu           sync.Mutex
	chunk        []T
	offset       int
	initialSlots int
	growthFactor float64
	growthSlots  int
	counters     allocCounters
}

// arenaOption configures a slotArena.
type arenaOption func(*arenaSettings)

type arenaSettings struct {
	growthFactor float64
	growthSlots  int
}

// withGrowthFactor makes each new chunk factor times the size of the previous one.
func withGrowthFactor(factor float64) arenaOption {
	return func(s *arenaSettings) {
		if factor > 1.0 {
			s.growthFactor = factor
		}
	}
}

// withGrowthSlots makes each new chunk a fixed number of slots.
func withGrowthSlots(slots int) arenaOption {
	return func(s *arenaSettings) {
		if slots > 0 {
			s.growthSlots = slots
		}
	}
}

// newSlotArena creates an arena whose first chunk holds initialSlots slots.
// The chunk is allocated lazily on the first Alloc.
func newSlotArena[T any](initialSlots int, opts ...arenaOption) *slotArena[T] {
	var s arenaSettings
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return &slotArena[T]{
		initialSlots: initialSlots,
		growthFactor: s.growthFactor,
		growthSlots:  s.growthSlots,
	}
}

// nextChunkSlots picks the size of the next chunk. Without a growth option
// every chunk has the size of the previous one.
func (a *slotArena[T]) nextChunkSlots(need int) int {
	next := len(a.chunk)
	switch {
	case next == 0:
		next = a.initialSlots
	case a.growthSlots > 0:
		next = a.growthSlots
	case a.growthFactor > 1.0:
		next = int(float64(next) * a.growthFactor)
	}
	// A block never spans chunks.
	if next < need {
		next = need
	}
	return next
}

func (a *slotArena[T]) grow(need int) error {
	chunk, err := makeSlots[T](a.nextChunkSlots(need))
	if err != nil {
		return err
	}
	// The previous chunk stays reachable through the blocks carved from it
	// and is collected once they are all gone.
	a.chunk = chunk
	a.offset = 0
	a.counters.chunks.Add(1)
	return nil
}

// Alloc carves n slots from the current chunk, growing the arena when the chunk is full.
func (a *slotArena[T]) Alloc(n int) ([]T, error) {
	if err := checkRequest[T](n); err != nil {
		a.counters.failures.Add(1)
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.offset+n > len(a.chunk) {
		if err := a.grow(n); err != nil {
			a.counters.failures.Add(1)
			return nil, err
		}
	}
	block := a.chunk[a.offset : a.offset+n : a.offset+n]
	a.offset += n
	// Rolled-back space may still hold values of an earlier block.
	clear(block)
	a.counters.acquired(n)
	return block, nil
}

// Free clears the block and, if it is the top of the current chunk, rolls the offset back.
func (a *slotArena[T]) Free(slots []T) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.counters.released(len(slots))
	clear(slots)
	n := len(slots)
	if n == 0 || n > a.offset {
		return
	}
	top := a.chunk[a.offset-n : a.offset]
	if unsafe.SliceData(top) == unsafe.SliceData(slots) {
		a.offset -= n
	}
}

func (a *slotArena[T]) Stats() Stats {
	return a.counters.snapshot()
}
