package simplevector

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// limitedSetups returns the regular setups with a live-slot limit appended.
func limitedSetups[T any](limit int) []testSetup[T] {
	setups := getTestSetups[T]()
	for i := range setups {
		base := setups[i].opts
		setups[i].opts = func() []Option[T] {
			return append(base(), WithMemoryLimit[T](limit))
		}
	}
	return setups
}

// fullPair builds {1, 2} with capacity 2 under a limit of 3 live slots, so any
// further doubling (2 live + 4 new) must fail.
func fullPair(t *testing.T, opts []Option[int]) *Vector[int] {
	t.Helper()
	v := New(opts...)
	require.NoError(t, v.PushBack(1))
	require.NoError(t, v.PushBack(2))
	require.Equal(t, 2, v.Cap())
	return v
}

func assertUnchanged(t *testing.T, v *Vector[int]) {
	t.Helper()
	assert.Equal(t, []int{1, 2}, elems(v))
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 2, v.Cap())
}

func TestStrongSafety_FailedGrowth(t *testing.T) {
	for _, setup := range limitedSetups[int](3) {
		t.Run(setup.name, func(t *testing.T) {
			t.Run("PushBack", func(t *testing.T) {
				v := fullPair(t, setup.opts())
				err := v.PushBack(3)
				require.ErrorIs(t, err, ErrOutOfMemory)
				assertUnchanged(t, v)
				assert.Equal(t, int64(1), v.AllocStats().Failures)
			})

			t.Run("PushBackMove", func(t *testing.T) {
				v := fullPair(t, setup.opts())
				x := 3
				err := v.PushBackMove(&x)
				require.ErrorIs(t, err, ErrOutOfMemory)
				assert.Equal(t, 3, x, "source must not be consumed on failure")
				assertUnchanged(t, v)
			})

			t.Run("Insert", func(t *testing.T) {
				v := fullPair(t, setup.opts())
				_, err := v.Insert(0, 9)
				require.ErrorIs(t, err, ErrOutOfMemory)
				assertUnchanged(t, v)
			})

			t.Run("InsertMove", func(t *testing.T) {
				v := fullPair(t, setup.opts())
				x := 9
				_, err := v.InsertMove(1, &x)
				require.ErrorIs(t, err, ErrOutOfMemory)
				assert.Equal(t, 9, x)
				assertUnchanged(t, v)
			})

			t.Run("Resize", func(t *testing.T) {
				v := fullPair(t, setup.opts())
				require.ErrorIs(t, v.Resize(2), ErrOutOfMemory)
				assertUnchanged(t, v)
				require.ErrorIs(t, v.Resize(5), ErrOutOfMemory)
				assertUnchanged(t, v)
				// Shrinking never allocates.
				require.NoError(t, v.Resize(1))
				assert.Equal(t, []int{1}, elems(v))
			})

			t.Run("Reserve", func(t *testing.T) {
				v := fullPair(t, setup.opts())
				require.ErrorIs(t, v.Reserve(10), ErrOutOfMemory)
				assertUnchanged(t, v)
			})

			t.Run("Clone", func(t *testing.T) {
				v := fullPair(t, setup.opts())
				cp, err := v.Clone()
				require.ErrorIs(t, err, ErrOutOfMemory)
				assert.Nil(t, cp)
				assertUnchanged(t, v)
			})

			t.Run("Assign", func(t *testing.T) {
				v := fullPair(t, setup.opts())
				src := Of(5, 6, 7, 8)
				require.ErrorIs(t, v.Assign(src), ErrOutOfMemory)
				assertUnchanged(t, v)
			})

			t.Run("Constructors", func(t *testing.T) {
				_, err := NewWithCapacity(Reserve(4), setup.opts()...)
				require.ErrorIs(t, err, ErrOutOfMemory)
				_, err = NewFilled(4, 1, setup.opts()...)
				require.ErrorIs(t, err, ErrOutOfMemory)
				_, err = FromSlice([]int{1, 2, 3, 4}, setup.opts()...)
				require.ErrorIs(t, err, ErrOutOfMemory)
			})
		})
	}
}

func TestStrongSafety_RecoversAfterRelease(t *testing.T) {
	for _, setup := range limitedSetups[int](6) {
		t.Run(setup.name, func(t *testing.T) {
			v := New(setup.opts()...)
			for i := range 4 {
				require.NoError(t, v.PushBack(i))
			}
			// 4 live + 8 new exceeds the limit of 6.
			require.ErrorIs(t, v.PushBack(4), ErrOutOfMemory)

			v.Destroy()
			for i := range 4 {
				require.NoError(t, v.PushBack(i))
			}
			assert.Equal(t, []int{0, 1, 2, 3}, elems(v))
		})
	}
}

func TestStrongSafety_Overflow(t *testing.T) {
	v := Of(1, 2)

	require.ErrorIs(t, v.Resize(math.MaxInt), ErrOutOfMemory)
	assert.Equal(t, []int{1, 2}, elems(v))

	require.ErrorIs(t, v.Reserve(math.MaxInt/2), ErrOutOfMemory)
	assert.Equal(t, []int{1, 2}, elems(v))
	assert.Equal(t, 2, v.Cap())

	_, err := NewWithCapacity[int](Reserve(math.MaxInt / 2))
	require.ErrorIs(t, err, ErrOutOfMemory)
}

func TestVector_LogsReallocationAndFailure(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	v := New(WithLogger[int](logger), WithMemoryLimit[int](3))
	require.NoError(t, v.PushBack(1))
	require.NoError(t, v.PushBack(2))
	assert.Contains(t, out.String(), "simplevector: reallocated")

	require.Error(t, v.PushBack(3))
	assert.Contains(t, out.String(), "simplevector: buffer acquisition failed")
	assert.Contains(t, out.String(), "level=WARN")
}
