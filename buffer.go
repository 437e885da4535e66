package simplevector

// noCopy may be embedded into structs which must not be copied after the first use.
// go vet's copylocks check reports any copy of a struct holding it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Buffer is the sole owner of one fixed-size block of slots.
// It only acquires, releases and transfers the block; it knows nothing about
// logical size or growth. A Buffer must not be copied: ownership moves only
// through MoveFrom, Swap or Release.
// Buffer คือเจ้าของหน่วยความจำเพียงผู้เดียวของ slot ชุดหนึ่ง
// ห้ามคัดลอก Buffer การโอนความเป็นเจ้าของทำได้ผ่าน MoveFrom, Swap หรือ Release เท่านั้น
type Buffer[T any] struct {
	noCopy noCopy

	addr  *Buffer[T] // self-pointer used to detect copies by value
	slots []T
	alloc slotAllocator[T]
}

// NewBuffer acquires a buffer of n zero-valued slots from the Go heap.
// n == 0 yields an empty buffer without touching the allocator.
func NewBuffer[T any](n int) (*Buffer[T], error) {
	return acquireBuffer[T](newHeapAllocator[T](), n)
}

func acquireBuffer[T any](alloc slotAllocator[T], n int) (*Buffer[T], error) {
	must(n >= 0, "simplevector: negative buffer length")
	b := &Buffer[T]{alloc: alloc}
	b.addr = b
	if n == 0 {
		return b, nil
	}
	slots, err := alloc.Alloc(n)
	if err != nil {
		return nil, err
	}
	b.slots = slots
	return b, nil
}

func (b *Buffer[T]) copyCheck() {
	if b.addr == nil {
		b.addr = b
	} else if b.addr != b {
		panic("simplevector: illegal use of non-zero Buffer copied by value")
	}
}

// Len returns the number of slots in the block.
func (b *Buffer[T]) Len() int {
	return len(b.slots)
}

// IsEmpty reports whether the buffer owns no block.
func (b *Buffer[T]) IsEmpty() bool {
	return b.slots == nil
}

// At returns a pointer to slot i. The index is not checked against anything
// but the block itself; the caller guarantees it is valid.
func (b *Buffer[T]) At(i int) *T {
	return &b.slots[i]
}

// Slots returns the whole block. The slice aliases the buffer's storage.
func (b *Buffer[T]) Slots() []T {
	return b.slots
}

// Release gives up ownership of the block and returns it. The block is not
// handed back to the allocator; the caller becomes responsible for it.
func (b *Buffer[T]) Release() []T {
	b.copyCheck()
	slots := b.slots
	b.slots = nil
	return slots
}

// Swap exchanges the blocks owned by b and other. It never allocates.
func (b *Buffer[T]) Swap(other *Buffer[T]) {
	must(b != other, "simplevector: buffer swapped with itself")
	b.copyCheck()
	other.copyCheck()
	b.slots, other.slots = other.slots, b.slots
	b.alloc, other.alloc = other.alloc, b.alloc
}

// MoveFrom frees b's current block and takes ownership of src's block,
// leaving src empty.
func (b *Buffer[T]) MoveFrom(src *Buffer[T]) {
	must(b != src, "simplevector: buffer moved into itself")
	b.copyCheck()
	src.copyCheck()
	b.Free()
	b.slots, b.alloc = src.slots, src.alloc
	src.slots = nil
}

// Free returns the block to the allocator it came from. It is a no-op on an
// empty buffer, so a block is never freed twice.
func (b *Buffer[T]) Free() {
	b.copyCheck()
	if b.slots == nil {
		return
	}
	slots := b.slots
	b.slots = nil
	if b.alloc != nil {
		b.alloc.Free(slots)
	}
}
