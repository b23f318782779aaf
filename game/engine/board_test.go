package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	board, err := NewBoard(4)
	require.NoError(t, err)
	assert.Equal(t, 4, board.Size())
	assert.Equal(t, 16, board.Count(Empty))

	board.ForEach(func(x, y int, cell Cell) {
		assert.Equal(t, Cell{Type: Empty}, cell, "cell (%d,%d)", x, y)
	})
}

func TestNewBoard_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := NewBoard(size)
		assert.Error(t, err, "size %d", size)
	}
}

func TestBoard_GetSet(t *testing.T) {
	board, err := NewBoard(3)
	require.NoError(t, err)

	supply := Cell{Type: Supply, Value: 7}
	require.NoError(t, board.Set(2, 1, supply))

	got, err := board.Get(2, 1)
	require.NoError(t, err)
	assert.Equal(t, supply, got)

	// Row-major: (2,1) is x=2 on row 1, not x=1 on row 2
	other, err := board.Get(1, 2)
	require.NoError(t, err)
	assert.Equal(t, Empty, other.Type)
}

func TestBoard_OutOfRange(t *testing.T) {
	board, err := NewBoard(3)
	require.NoError(t, err)

	coords := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {5, 5}}
	for _, c := range coords {
		_, err := board.Get(c[0], c[1])
		assert.ErrorIs(t, err, ErrOutOfRange, "get %v", c)

		err = board.Set(c[0], c[1], Cell{Type: Trap})
		assert.ErrorIs(t, err, ErrOutOfRange, "set %v", c)

		assert.False(t, board.IsEmpty(c[0], c[1]), "isEmpty %v", c)
	}
}

func TestBoard_IsEmpty(t *testing.T) {
	board, err := NewBoard(3)
	require.NoError(t, err)

	assert.True(t, board.IsEmpty(1, 1))
	require.NoError(t, board.Set(1, 1, Cell{Type: Exit}))
	assert.False(t, board.IsEmpty(1, 1))
	require.NoError(t, board.Set(1, 1, Cell{Type: Empty}))
	assert.True(t, board.IsEmpty(1, 1))
}
