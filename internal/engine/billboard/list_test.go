package billboard

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertByDepthCapacity(t *testing.T) {
	l := NewList(0)
	require.Equal(t, DefaultCapacity, l.Cap())

	for i := 0; i < DefaultCapacity; i++ {
		slot, err := l.InsertByDepth(float32(i))
		require.NoError(t, err)
		l.At(slot).ObjectID = i
	}
	require.Equal(t, DefaultCapacity, l.Len())

	_, err := l.InsertByDepth(-1)
	assert.ErrorIs(t, err, ErrListFull)
	assert.Equal(t, DefaultCapacity, l.Len())

	for i := 0; i < l.Len(); i++ {
		assert.Equal(t, float32(i), l.At(i).Depth)
		assert.Equal(t, i, l.At(i).ObjectID)
	}
}

func TestInsertByDepthKeepsSortedOrder(t *testing.T) {
	l := NewList(16)
	depths := []float32{50, 10, 30, 20, 40}
	for i, d := range depths {
		slot, err := l.InsertByDepth(d)
		require.NoError(t, err)
		l.At(slot).ObjectID = i
	}

	for i := 1; i < l.Len(); i++ {
		assert.LessOrEqual(t, l.At(i-1).Depth, l.At(i).Depth)
	}
	// Shifting must carry the payload with the depth.
	assert.Equal(t, 1, l.At(0).ObjectID)
	assert.Equal(t, 0, l.At(4).ObjectID)
}

func TestInsertByDepthNaNSortsFarthest(t *testing.T) {
	l := NewList(8)
	for i, d := range []float32{5, math32.NaN(), 1, 9, math32.NaN(), 3} {
		slot, err := l.InsertByDepth(d)
		require.NoError(t, err)
		l.At(slot).ObjectID = i
	}

	want := []float32{1, 3, 5, 9, math32.Inf(1), math32.Inf(1)}
	for i, d := range want {
		assert.Equal(t, d, l.At(i).Depth, "slot %d", i)
	}
	assert.Equal(t, 1, l.At(4).ObjectID)
	assert.Equal(t, 4, l.At(5).ObjectID)
}

func TestInsertByDepthTiesKeepInsertionOrder(t *testing.T) {
	l := NewList(4)
	for i := 0; i < 3; i++ {
		slot, err := l.InsertByDepth(7)
		require.NoError(t, err)
		l.At(slot).ObjectID = i
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, i, l.At(i).ObjectID)
	}
}

func TestDrainBackToFront(t *testing.T) {
	l := NewList(8)
	for _, d := range []float32{3, 1, 4, 1, 5} {
		_, err := l.InsertByDepth(d)
		require.NoError(t, err)
	}

	var got []float32
	l.Drain(func(_ int, e *Entry) { got = append(got, e.Depth) })
	assert.Equal(t, []float32{5, 4, 3, 1, 1}, got)
	assert.Equal(t, Draining, l.State())

	_, err := l.InsertByDepth(2)
	assert.True(t, errors.Is(err, ErrDraining))

	l.Reset()
	assert.Equal(t, Accumulating, l.State())
	assert.Zero(t, l.Len())
	_, err = l.InsertByDepth(2)
	assert.NoError(t, err)
}

func TestInsertZeroesReusedSlot(t *testing.T) {
	l := NewList(2)
	slot, err := l.InsertByDepth(1)
	require.NoError(t, err)
	l.At(slot).NumVertices = 4
	l.Reset()

	slot, err = l.InsertByDepth(1)
	require.NoError(t, err)
	assert.Zero(t, l.At(slot).NumVertices)
}
