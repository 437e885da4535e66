package simplevector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIndex_Boundary pins the unchecked accessor's contract: only i < Len()
// is valid. The one-past-the-end slot is rejected in debug builds and is not
// checked in release builds, where it may still be an allocated slot.
func TestIndex_Boundary(t *testing.T) {
	v := Of(1, 2, 3)
	assert.NoError(t, v.Reserve(4))
	assert.NotPanics(t, func() { _ = v.Index(v.Len() - 1) })

	if debugChecks {
		assert.Panics(t, func() { _ = v.Index(v.Len()) })
		assert.Panics(t, func() { _ = v.Ref(-1) })
		assert.Panics(t, func() { v.Set(v.Len(), 0) })
		return
	}
	assert.NotPanics(t, func() { _ = v.Index(v.Len()) })
	assert.Panics(t, func() { _ = v.Index(v.Cap()) }, "the block itself is still bounds-checked")
}
