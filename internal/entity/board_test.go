package entity

import (
	"testing"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Set(t *testing.T) {
	t.Run("Writes every legal value", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: each legal value is written
		require.NoError(t, board.Set(Move{0, 0}, PlayerX))
		require.NoError(t, board.Set(Move{2, 2}, PlayerO))
		require.NoError(t, board.Set(Move{2, 2}, EmptyCell))

		// Then: the board reflects the writes
		assert.Equal(t, PlayerX, board.CellValue(0, 0))
		assert.True(t, board.IsEmptyCell(2, 2))
	})

	t.Run("Rejects an illegal value", func(t *testing.T) {
		var board Board

		err := board.Set(Move{1, 1}, Cell("Z"))

		require.ErrorIs(t, err, apperror.ErrInvalidCellValue)
		assert.True(t, board.IsEmptyCell(1, 1))
	})

	t.Run("Rejects out of range coordinates", func(t *testing.T) {
		var board Board

		for _, move := range []Move{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
			err := board.Set(move, PlayerX)

			assert.ErrorIs(t, err, apperror.ErrInvalidCell)
			assert.ErrorIs(t, err, apperror.ErrInvalidCellValue)
		}
	})
}

func TestBoard_EmptyCells(t *testing.T) {
	// Given: a board with two marks
	board := Board{
		{PlayerX, EmptyCell, EmptyCell},
		{EmptyCell, PlayerO, EmptyCell},
		{EmptyCell, EmptyCell, EmptyCell},
	}

	// When: listing empty cells
	cells := board.EmptyCells()

	// Then: seven cells remain in reading order
	require.Len(t, cells, 7)
	assert.Equal(t, Move{0, 1}, cells[0])
	assert.NotContains(t, cells, Center)
	assert.False(t, board.IsFull())
}

func TestBoard_Winner(t *testing.T) {
	// every declared line must be detected on its own
	for _, mark := range []Cell{PlayerX, PlayerO} {
		for i, line := range WinLines {
			var board Board
			for _, move := range line {
				require.NoError(t, board.Set(move, mark))
			}

			assert.Equal(t, mark, board.Winner(), "line %d", i)
		}
	}

	var empty Board
	assert.Equal(t, EmptyCell, empty.Winner())
}

func TestWinLines_AreDistinctAndExhaustive(t *testing.T) {
	seen := make(map[[3]Move]bool)
	for _, line := range WinLines {
		assert.False(t, seen[line])
		seen[line] = true
	}

	require.Len(t, seen, 8)

	// every cell belongs to at least two lines, the center to four
	counts := make(map[Move]int)
	for _, line := range WinLines {
		for _, move := range line {
			counts[move]++
		}
	}

	assert.Equal(t, 4, counts[Center])
	for _, corner := range Corners {
		assert.Equal(t, 3, counts[corner])
	}
	for _, edge := range Edges {
		assert.Equal(t, 2, counts[edge])
	}
}

func TestMove(t *testing.T) {
	assert.Equal(t, 0, Center.Parity())
	assert.Equal(t, 1, Move{0, 1}.Parity())
	assert.Equal(t, 5, Move{1, 2}.Index())
	assert.Equal(t, Move{2, 1}, MoveFromIndex(7))
	assert.False(t, Move{3, 1}.Valid())
}

func TestHistory(t *testing.T) {
	var history History

	_, ok := history.LastMove()
	assert.False(t, ok)

	history = append(history, Move{0, 1}, Move{1, 1})

	last, ok := history.LastMove()
	require.True(t, ok)
	assert.Equal(t, Center, last)
	assert.Equal(t, 2, history.MoveCount())
}

func TestCell_Opponent(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
	assert.Equal(t, EmptyCell, EmptyCell.Opponent())
	assert.False(t, PlayerTie.Valid())
}
