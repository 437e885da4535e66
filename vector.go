// Package simplevector implements a generic, growable, contiguous sequence
// container with explicit buffer ownership.
// A Vector keeps its logical size apart from the capacity of the Buffer that
// backs it, grows by doubling, and builds every replacement buffer completely
// before swapping it in, so a failed allocation never leaves the vector
// half-modified.
//
// A Vector is not safe for concurrent use.
package simplevector

import (
	"fmt"
	"math"
)

// CapacityHint is a requested capacity for NewWithCapacity. It exists only to
// tell "empty with n reserved slots" apart from "n elements" at the call site.
type CapacityHint struct {
	capacity int
}

// Reserve wraps n in a CapacityHint.
// Reserve สร้าง CapacityHint สำหรับใช้กับ NewWithCapacity
func Reserve(n int) CapacityHint {
	must(n >= 0, "simplevector: negative capacity hint")
	return CapacityHint{capacity: n}
}

// Value returns the requested capacity.
func (h CapacityHint) Value() int {
	return h.capacity
}

// transfer selects how elements travel into a replacement buffer.
type transfer int

const (
	copyElems transfer = iota // source slots keep their values
	moveElems                 // source slots are reset to the zero value
)

// Vector is a growable, contiguous sequence of T.
// Slots [0, Len()) hold the elements; slots [Len(), Cap()) are allocated and
// never treated as elements. The zero value is an empty vector backed by the Go heap.
// A Vector must not be copied by value; use Clone or Move.
// Vector คือ container แบบลำดับต่อเนื่องที่ขยายขนาดได้
// ค่า zero value พร้อมใช้งานทันที (ว่างเปล่าและใช้ heap ปกติ)
type Vector[T any] struct {
	size     int
	capacity int
	buf      Buffer[T]
	cfg      *config[T]
}

// New creates an empty vector.
func New[T any](opts ...Option[T]) *Vector[T] {
	return &Vector[T]{cfg: newConfig(opts)}
}

// NewWithCapacity creates an empty vector with hint.Value() slots reserved.
func NewWithCapacity[T any](hint CapacityHint, opts ...Option[T]) (*Vector[T], error) {
	v := New(opts...)
	b, err := v.acquire(hint.Value())
	if err != nil {
		return nil, err
	}
	v.adopt(b, hint.Value())
	return v, nil
}

// NewFilled creates a vector of count copies of value.
// NewFilled สร้าง Vector ที่มีสมาชิก count ตัว โดยทุกตัวมีค่าเท่ากับ value
func NewFilled[T any](count int, value T, opts ...Option[T]) (*Vector[T], error) {
	must(count >= 0, "simplevector: negative element count")
	v := New(opts...)
	b, err := v.acquire(count)
	if err != nil {
		return nil, err
	}
	slots := b.Slots()
	for i := range slots {
		slots[i] = v.cfg.copyOf(value)
	}
	v.adopt(b, count)
	v.size = count
	return v, nil
}

// NewSized creates a vector of count zero values.
func NewSized[T any](count int, opts ...Option[T]) (*Vector[T], error) {
	var zero T
	return NewFilled(count, zero, opts...)
}

// FromSlice creates a vector holding copies of values, in order.
func FromSlice[T any](values []T, opts ...Option[T]) (*Vector[T], error) {
	v := New(opts...)
	b, err := v.acquire(len(values))
	if err != nil {
		return nil, err
	}
	slots := b.Slots()
	for i, x := range values {
		slots[i] = v.cfg.copyOf(x)
	}
	v.adopt(b, len(values))
	v.size = len(values)
	return v, nil
}

// Of creates a heap-backed vector from a literal list of values.
// It panics if the values cannot be allocated.
func Of[T any](values ...T) *Vector[T] {
	v, err := FromSlice(values)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Vector[T]) conf() *config[T] {
	if v.cfg == nil {
		v.cfg = newConfig[T](nil)
	}
	return v.cfg
}

// acquire gets a fresh buffer of n slots, logging the failure before
// handing it back to the caller.
func (v *Vector[T]) acquire(n int) (*Buffer[T], error) {
	c := v.conf()
	b, err := acquireBuffer(c.alloc, n)
	if err != nil {
		c.logger.Warn("simplevector: buffer acquisition failed",
			"slots", n, "size", v.size, "capacity", v.capacity, "error", err)
		return nil, err
	}
	return b, nil
}

// adopt swaps b in as the vector's storage and frees the block it replaces.
func (v *Vector[T]) adopt(b *Buffer[T], capacity int) {
	v.buf.Swap(b)
	b.Free()
	v.capacity = capacity
}

// regrow builds a replacement buffer of newCap slots. Elements [0, pos) land at
// the same indices and elements [pos, size) are shifted by gap, leaving
// [pos, pos+gap) free for the caller. The vector itself is untouched until the
// caller commits the result with adopt.
func (v *Vector[T]) regrow(newCap, pos, gap int, mode transfer) (*Buffer[T], error) {
	b, err := v.acquire(newCap)
	if err != nil {
		return nil, err
	}
	dst, src := b.Slots(), v.buf.Slots()
	if pos == 0 {
		// Empty prefix: the whole sequence goes after the gap.
		transferRange(dst[gap:], src[:v.size], mode)
	} else {
		transferRange(dst[:pos], src[:pos], mode)
		transferRange(dst[pos+gap:], src[pos:v.size], mode)
	}
	v.cfg.logger.Debug("simplevector: reallocated",
		"from", v.capacity, "to", newCap, "size", v.size)
	return b, nil
}

// transferRange moves or copies src into dst element by element.
func transferRange[T any](dst, src []T, mode transfer) {
	var zero T
	for i := range src {
		dst[i] = src[i]
		if mode == moveElems {
			src[i] = zero
		}
	}
}

// doubled returns 2n or ErrOutOfMemory if that overflows int.
func doubled(n int) (int, error) {
	if n > math.MaxInt/2 {
		return 0, fmt.Errorf("%w: capacity %d cannot be doubled", ErrOutOfMemory, n)
	}
	return n * 2, nil
}

// Clone returns a deep copy of v with the same capacity. The copy shares v's
// options and allocator but never its storage.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	return v.cloneWith(v.conf())
}

func (v *Vector[T]) cloneWith(cfg *config[T]) (*Vector[T], error) {
	c := &Vector[T]{cfg: cfg}
	b, err := c.acquire(v.capacity)
	if err != nil {
		return nil, err
	}
	dst := b.Slots()
	for i, x := range v.buf.Slots()[:v.size] {
		dst[i] = cfg.copyOf(x)
	}
	c.adopt(b, v.capacity)
	c.size = v.size
	return c, nil
}

// Move transfers v's storage, size and capacity into a new vector and leaves v
// empty (size 0, capacity 0, no buffer). v remains usable.
// Move ย้ายความเป็นเจ้าของหน่วยความจำไปยัง Vector ใหม่ และทำให้ v ว่างเปล่า
func (v *Vector[T]) Move() *Vector[T] {
	dst := &Vector[T]{cfg: v.conf()}
	dst.buf.MoveFrom(&v.buf)
	dst.size, dst.capacity = v.size, v.capacity
	v.size, v.capacity = 0, 0
	return dst
}

// Assign replaces v's contents with a deep copy of src. The copy is built in
// full before it is swapped in, so on error v is unchanged.
func (v *Vector[T]) Assign(src *Vector[T]) error {
	if v == src {
		return nil
	}
	tmp, err := src.cloneWith(v.conf())
	if err != nil {
		return err
	}
	v.Swap(tmp)
	tmp.Destroy()
	return nil
}

// MoveAssign exchanges storage with src: v takes src's contents and src ends up
// with what v held before. Assigning a vector to itself does nothing.
func (v *Vector[T]) MoveAssign(src *Vector[T]) {
	if v == src {
		return
	}
	v.Swap(src)
}

// Destroy releases the buffer back to its allocator. It is safe on empty and
// moved-from vectors, and the vector may be reused afterwards.
func (v *Vector[T]) Destroy() {
	v.buf.Free()
	v.size, v.capacity = 0, 0
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int {
	if v == nil {
		return 0
	}
	return v.size
}

// Cap returns the number of allocated slots.
func (v *Vector[T]) Cap() int {
	if v == nil {
		return 0
	}
	return v.capacity
}

// IsEmpty reports whether the vector has no elements.
func (v *Vector[T]) IsEmpty() bool {
	return v.Len() == 0
}

// AllocStats returns the counters of the allocator backing v.
func (v *Vector[T]) AllocStats() Stats {
	return v.conf().alloc.Stats()
}

// Index returns element i without a bounds check against Len.
// i must be below Len(); the check only exists in simplevector_debug builds.
func (v *Vector[T]) Index(i int) T {
	debugAssert(i >= 0 && i < v.size, "simplevector: index out of range")
	return *v.buf.At(i)
}

// Ref returns a pointer to element i, under the same contract as Index.
// The pointer is invalidated by any reallocation.
func (v *Vector[T]) Ref(i int) *T {
	debugAssert(i >= 0 && i < v.size, "simplevector: index out of range")
	return v.buf.At(i)
}

// Set stores x at index i, under the same contract as Index.
func (v *Vector[T]) Set(i int, x T) {
	debugAssert(i >= 0 && i < v.size, "simplevector: index out of range")
	*v.buf.At(i) = x
}

// At returns element i, or an error wrapping ErrOutOfRange if i is not in [0, Len()).
func (v *Vector[T]) At(i int) (T, error) {
	p, err := v.AtRef(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// AtRef returns a pointer to element i, or an error wrapping ErrOutOfRange if
// i is not in [0, Len()).
func (v *Vector[T]) AtRef(i int) (*T, error) {
	if i < 0 || i >= v.size {
		return nil, fmt.Errorf("%w: index %d with size %d", ErrOutOfRange, i, v.size)
	}
	return v.buf.At(i), nil
}

// Slice returns a view of the elements. It aliases the vector's storage, is
// capped at Len(), and is invalidated by any reallocation. For an empty vector
// it may or may not be nil; only its length is meaningful.
func (v *Vector[T]) Slice() []T {
	if v == nil || v.size == 0 {
		return nil
	}
	return v.buf.Slots()[:v.size:v.size]
}

// Clear removes all elements without releasing or touching storage.
func (v *Vector[T]) Clear() {
	v.size = 0
}

// truncate shrinks the logical size to n <= size, resetting the dropped slots.
func (v *Vector[T]) truncate(n int) {
	clear(v.buf.Slots()[n:v.size])
	v.size = n
}

// Resize changes the number of elements to n. New elements are zero values.
// Shrinking keeps the capacity; growing to n >= Cap() reallocates to 2n.
// On error the vector is unchanged.
// Resize เปลี่ยนจำนวนสมาชิกเป็น n หาก n >= Cap() จะจองหน่วยความจำใหม่เป็น 2n
func (v *Vector[T]) Resize(n int) error {
	must(n >= 0, "simplevector: negative size")
	switch {
	case n == 0 || n < v.size:
		v.truncate(n)
	case n < v.capacity:
		clear(v.buf.Slots()[v.size:n])
		v.size = n
	default:
		newCap, err := doubled(n)
		if err != nil {
			return err
		}
		b, err := v.regrow(newCap, v.size, 0, moveElems)
		if err != nil {
			return err
		}
		v.adopt(b, newCap)
		// Slots past the old size are already zero in the new buffer.
		v.size = n
	}
	return nil
}

// Reserve makes the capacity at least n without changing the size.
// It allocates exactly n slots when n > Cap(); otherwise it does nothing.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.capacity {
		return nil
	}
	b, err := v.regrow(n, v.size, 0, copyElems)
	if err != nil {
		return err
	}
	v.adopt(b, n)
	return nil
}

// PushBack appends a copy of x. A full vector doubles its capacity (0 grows to 1).
// PushBack เพิ่มสมาชิกต่อท้าย หากเต็มจะขยายความจุเป็นสองเท่า
func (v *Vector[T]) PushBack(x T) error {
	return v.pushBack(v.conf().copyOf(x), copyElems)
}

// PushBackMove appends *x by moving it: on success *x is reset to the zero
// value; on error it is left untouched.
func (v *Vector[T]) PushBackMove(x *T) error {
	if err := v.pushBack(*x, moveElems); err != nil {
		return err
	}
	var zero T
	*x = zero
	return nil
}

func (v *Vector[T]) pushBack(x T, mode transfer) error {
	if v.capacity == 0 {
		b, err := v.regrow(1, 0, 0, mode)
		if err != nil {
			return err
		}
		v.adopt(b, 1)
	}
	if v.size < v.capacity {
		*v.buf.At(v.size) = x
		v.size++
		return nil
	}
	newCap, err := doubled(v.capacity)
	if err != nil {
		return err
	}
	b, err := v.regrow(newCap, v.size, 0, mode)
	if err != nil {
		return err
	}
	*b.At(v.size) = x
	v.adopt(b, newCap)
	v.size++
	return nil
}

// PopBack removes the last element. The vector must not be empty.
func (v *Vector[T]) PopBack() {
	must(v.size > 0, "simplevector: PopBack on empty vector")
	v.truncate(v.size - 1)
}

// Insert places a copy of x at pos, shifting later elements toward the end,
// and returns the index of the inserted element. pos must be in [0, Len()];
// inserting at Len() appends. A full vector grows to max(1, 2*Cap()).
// Insert แทรก x ที่ตำแหน่ง pos และคืนค่าตำแหน่งของสมาชิกที่แทรก
func (v *Vector[T]) Insert(pos int, x T) (int, error) {
	must(pos >= 0 && pos <= v.size, "simplevector: insert position out of range")
	return v.insert(pos, v.conf().copyOf(x), copyElems)
}

// InsertMove is Insert with move semantics for *x, which is reset to the zero
// value on success and left untouched on error.
func (v *Vector[T]) InsertMove(pos int, x *T) (int, error) {
	must(pos >= 0 && pos <= v.size, "simplevector: insert position out of range")
	at, err := v.insert(pos, *x, moveElems)
	if err != nil {
		return 0, err
	}
	var zero T
	*x = zero
	return at, nil
}

func (v *Vector[T]) insert(pos int, x T, mode transfer) (int, error) {
	if v.size < v.capacity {
		slots := v.buf.Slots()
		// Walk backwards so no element is overwritten before it has moved.
		for i := v.size; i > pos; i-- {
			slots[i] = slots[i-1]
		}
		slots[pos] = x
		v.size++
		return pos, nil
	}

	newCap := 1
	if v.capacity > 0 {
		var err error
		if newCap, err = doubled(v.capacity); err != nil {
			return 0, err
		}
	}
	b, err := v.regrow(newCap, pos, 1, mode)
	if err != nil {
		return 0, err
	}
	*b.At(pos) = x
	v.adopt(b, newCap)
	v.size++
	return pos, nil
}

// Erase removes the element at pos, shifting later elements toward the front.
// It returns pos, which now holds the element that followed the removed one,
// or equals Len() if the last element was removed.
// The vector must not be empty and pos must be in [0, Len()).
func (v *Vector[T]) Erase(pos int) int {
	must(v.size > 0, "simplevector: Erase on empty vector")
	must(pos >= 0 && pos < v.size, "simplevector: erase position out of range")
	slots := v.buf.Slots()
	for i := pos; i+1 < v.size; i++ {
		slots[i] = slots[i+1]
	}
	v.truncate(v.size - 1)
	return pos
}

// Swap exchanges storage, size and capacity with other in O(1).
// Options stay with their vector; each block still returns to the allocator
// it came from.
func (v *Vector[T]) Swap(other *Vector[T]) {
	must(v != other, "simplevector: vector swapped with itself")
	v.buf.Swap(&other.buf)
	v.size, other.size = other.size, v.size
	v.capacity, other.capacity = other.capacity, v.capacity
}
