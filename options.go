package simplevector

import (
	"io"
	"log/slog"
	"reflect"
)

// discardLogger is used until WithLogger provides a real one.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Cloner is implemented by element types that own mutable state and need a deep
// copy whenever the vector copies a value (Clone, Assign, the fill and list
// constructors, PushBack and Insert). Values that only move between buffers of
// the same vector are never cloned.
type Cloner[T any] interface {
	Clone() T
}

// config holds the resolved options of a vector. Clones share it, and with it
// the allocator.
type config[T any] struct {
	alloc  slotAllocator[T]
	logger *slog.Logger
	clone  bool // T implements Cloner[T]

	pool              bool
	arenaSlots        int
	arenaGrowthFactor float64
	arenaGrowthSlots  int
	memoryLimit       int
}

// Option is a function that configures a Vector.
// Option คือฟังก์ชันสำหรับกำหนดค่าของ Vector
type Option[T any] func(*config[T])

// WithLogger sets the logger used for reallocation and allocation-failure diagnostics.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(c *config[T]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPool backs the vector with sync.Pool size classes, so blocks released
// by reallocation are reused by later growth.
func WithPool[T any]() Option[T] {
	return func(c *config[T]) {
		c.pool = true
	}
}

// WithArena backs the vector with a slot arena whose first chunk holds the given
// number of slots. Takes precedence over WithPool.
// WithArena กำหนดให้ Vector ใช้ arena โดยระบุขนาด chunk แรกเป็นจำนวน slot
func WithArena[T any](slots int) Option[T] {
	return func(c *config[T]) {
		if slots > 0 {
			c.arenaSlots = slots
		}
	}
}

// WithArenaGrowthFactor makes each new arena chunk factor times as large as the previous one.
// This option is only effective when used with WithArena.
func WithArenaGrowthFactor[T any](factor float64) Option[T] {
	return func(c *config[T]) {
		if factor > 1.0 {
			c.arenaGrowthFactor = factor
		}
	}
}

// WithArenaGrowthSlots makes each new arena chunk a fixed number of slots.
// This option is only effective when used with WithArena.
func WithArenaGrowthSlots[T any](slots int) Option[T] {
	return func(c *config[T]) {
		if slots > 0 {
			c.arenaGrowthSlots = slots
		}
	}
}

// WithMemoryLimit caps the number of live slots the vector (and its clones) may
// hold at once. Requests beyond the cap fail with ErrOutOfMemory.
func WithMemoryLimit[T any](slots int) Option[T] {
	return func(c *config[T]) {
		if slots > 0 {
			c.memoryLimit = slots
		}
	}
}

func newConfig[T any](opts []Option[T]) *config[T] {
	c := &config[T]{
		logger: discardLogger,
		clone:  reflect.TypeFor[T]().Implements(reflect.TypeFor[Cloner[T]]()),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	switch {
	case c.arenaSlots > 0:
		var arenaOpts []arenaOption
		if c.arenaGrowthSlots > 0 {
			arenaOpts = append(arenaOpts, withGrowthSlots(c.arenaGrowthSlots))
		}
		if c.arenaGrowthFactor > 1.0 {
			arenaOpts = append(arenaOpts, withGrowthFactor(c.arenaGrowthFactor))
		}
		c.alloc = newSlotArena[T](c.arenaSlots, arenaOpts...)
	case c.pool:
		c.alloc = newPoolAllocator[T]()
	default:
		c.alloc = newHeapAllocator[T]()
	}
	if c.memoryLimit > 0 {
		c.alloc = newLimitedAllocator(c.alloc, c.memoryLimit)
	}
	return c
}

// copyOf returns the value the vector should store for a copied-in x.
func (c *config[T]) copyOf(x T) T {
	if c.clone {
		if cl, ok := any(x).(Cloner[T]); ok {
			return cl.Clone()
		}
	}
	return x
}
