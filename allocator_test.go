package simplevector

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapAllocator_RejectsImpossibleRequests(t *testing.T) {
	h := newHeapAllocator[int64]()
	_, err := h.Alloc(math.MaxInt / 2)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, int64(1), h.Stats().Failures)
	assert.Equal(t, int64(0), h.Stats().Acquisitions)
}

func TestMakeSlots_ConvertsMakesliceFailure(t *testing.T) {
	n := -1
	_, err := makeSlots[int](n)
	require.ErrorIs(t, err, ErrOutOfMemory)
}

func TestSizeClass(t *testing.T) {
	testCases := []struct {
		n     int
		class int
	}{
		{1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {1024, 10}, {1025, 11},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.class, sizeClass(tc.n), "sizeClass(%d)", tc.n)
	}
}

func TestPoolAllocator_ReusedBlocksAreCleared(t *testing.T) {
	p := newPoolAllocator[int]()

	s, err := p.Alloc(3)
	require.NoError(t, err)
	assert.Len(t, s, 3)
	assert.Equal(t, 4, cap(s), "blocks are rounded up to their size class")
	for i := range s {
		s[i] = i + 1
	}
	p.Free(s)

	again, err := p.Alloc(4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0}, again)

	stats := p.Stats()
	assert.Equal(t, int64(2), stats.Acquisitions)
	assert.Equal(t, int64(1), stats.Releases)
	assert.Equal(t, int64(4), stats.LiveSlots)
}

func TestPoolAllocator_IgnoresForeignBlocks(t *testing.T) {
	p := newPoolAllocator[int]()
	// Capacity 3 matches no size class; Free must only account for it.
	p.Free(make([]int, 3))
	assert.Equal(t, int64(1), p.Stats().Releases)

	s, err := p.Alloc(2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, s)
}

func TestSlotArena_RollsBackTopBlock(t *testing.T) {
	a := newSlotArena[int](8)

	first, err := a.Alloc(3)
	require.NoError(t, err)
	second, err := a.Alloc(2)
	require.NoError(t, err)
	second[0] = 42
	assert.Equal(t, 5, a.offset)

	a.Free(second)
	assert.Equal(t, 3, a.offset, "freeing the top block rolls the offset back")

	third, err := a.Alloc(2)
	require.NoError(t, err)
	assert.Same(t, unsafe.SliceData(second), unsafe.SliceData(third))
	assert.Equal(t, []int{0, 0}, third, "reused space is cleared")

	// first is not on top, so its space stays carved out.
	a.Free(first)
	assert.Equal(t, 5, a.offset)
	assert.Equal(t, int64(1), a.Stats().Chunks)
}

func TestSlotArena_Growth(t *testing.T) {
	t.Run("SameSizeByDefault", func(t *testing.T) {
		a := newSlotArena[int](4)
		_, err := a.Alloc(3)
		require.NoError(t, err)
		_, err = a.Alloc(3)
		require.NoError(t, err)
		assert.Equal(t, int64(2), a.Stats().Chunks)
		assert.Len(t, a.chunk, 4)
	})

	t.Run("WithFactor", func(t *testing.T) {
		a := newSlotArena[int](4, withGrowthFactor(2.0))
		_, err := a.Alloc(4)
		require.NoError(t, err)
		_, err = a.Alloc(1)
		require.NoError(t, err)
		assert.Len(t, a.chunk, 8)
	})

	t.Run("WithSlots", func(t *testing.T) {
		a := newSlotArena[int](4, withGrowthSlots(16))
		_, err := a.Alloc(4)
		require.NoError(t, err)
		_, err = a.Alloc(1)
		require.NoError(t, err)
		assert.Len(t, a.chunk, 16)
	})

	t.Run("OversizedRequest", func(t *testing.T) {
		a := newSlotArena[int](4)
		s, err := a.Alloc(10)
		require.NoError(t, err)
		assert.Len(t, s, 10)
		assert.Equal(t, 10, cap(s), "blocks never expose neighbouring slots")
		assert.Len(t, a.chunk, 10)
	})

	t.Run("InvalidOptionsIgnored", func(t *testing.T) {
		a := newSlotArena[int](4, withGrowthFactor(0.5), withGrowthSlots(-1), nil)
		assert.Zero(t, a.growthFactor)
		assert.Zero(t, a.growthSlots)
	})
}

func TestLimitedAllocator(t *testing.T) {
	l := newLimitedAllocator[int](newHeapAllocator[int](), 5)

	a, err := l.Alloc(3)
	require.NoError(t, err)
	_, err = l.Alloc(3)
	require.ErrorIs(t, err, ErrOutOfMemory)

	l.Free(a)
	b, err := l.Alloc(5)
	require.NoError(t, err)
	assert.Len(t, b, 5)

	stats := l.Stats()
	assert.Equal(t, int64(1), stats.Failures)
	assert.Equal(t, int64(5), stats.LiveSlots)
}

func TestLimitedAllocator_ReturnsReservationOnFailure(t *testing.T) {
	l := newLimitedAllocator[int64](newHeapAllocator[int64](), math.MaxInt)
	_, err := l.Alloc(math.MaxInt / 2)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, int64(0), l.live.Load())
}
