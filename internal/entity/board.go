package entity

import (
	"fmt"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
)

const BoardSize = 3

// Cell is the content of one board square.
type Cell string

const (
	EmptyCell Cell = ""
	PlayerX   Cell = "X"
	PlayerO   Cell = "O"
	PlayerTie Cell = "-"
)

// FirstMover opens every game, SecondMover answers.
const (
	FirstMover  = PlayerX
	SecondMover = PlayerO
)

// Valid reports whether the value may be written to a board cell.
func (that Cell) Valid() bool {
	return that == EmptyCell || that == PlayerX || that == PlayerO
}

// IsPlayer reports whether the value is one of the two player marks.
func (that Cell) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that Cell) Opponent() Cell {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// Move addresses a single cell.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

var Center = Move{Row: 1, Col: 1}

var Corners = [4]Move{{0, 0}, {0, 2}, {2, 0}, {2, 2}}

// Edges are the four edge midpoints.
var Edges = [4]Move{{0, 1}, {1, 0}, {1, 2}, {2, 1}}

func (that Move) Valid() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// Parity is 0 for corners and center, 1 for edge midpoints.
func (that Move) Parity() int {
	return (that.Row + that.Col) % 2
}

// Index converts the move to a 0..8 position in reading order.
func (that Move) Index() int {
	return that.Row*BoardSize + that.Col
}

func (that Move) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// MoveFromIndex is the inverse of Move.Index.
func MoveFromIndex(index int) Move {
	return Move{Row: index / BoardSize, Col: index % BoardSize}
}

// WinLines lists every line in declaration order: rows, columns, diagonals.
var WinLines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3x3 tic-tac-toe grid indexed [row][col].
type Board [BoardSize][BoardSize]Cell

func (that *Board) CellValue(row, col int) Cell {
	return that[row][col]
}

func (that *Board) IsEmptyCell(row, col int) bool {
	return that[row][col] == EmptyCell
}

// Set writes a value to a cell. Any of the three legal values is accepted;
// out-of-range coordinates are reported as both ErrInvalidCellValue and ErrInvalidCell.
func (that *Board) Set(move Move, value Cell) error {
	if !move.Valid() {
		return fmt.Errorf("%w: %w: %s", apperror.ErrInvalidCellValue, apperror.ErrInvalidCell, move)
	}

	if !value.Valid() {
		return fmt.Errorf("%w: %q, allowed values are %q, %q and %q",
			apperror.ErrInvalidCellValue, value, EmptyCell, PlayerX, PlayerO)
	}

	that[move.Row][move.Col] = value

	return nil
}

// EmptyCells returns the empty cells in reading order.
func (that *Board) EmptyCells() []Move {
	cells := make([]Move, 0, BoardSize*BoardSize)
	for row := range BoardSize {
		for col := range BoardSize {
			if that[row][col] == EmptyCell {
				cells = append(cells, Move{Row: row, Col: col})
			}
		}
	}

	return cells
}

func (that *Board) IsFull() bool {
	return len(that.EmptyCells()) == 0
}

// Winner returns the mark owning a complete line, or EmptyCell.
func (that *Board) Winner() Cell {
	for _, line := range WinLines {
		a := that[line[0].Row][line[0].Col]
		b := that[line[1].Row][line[1].Col]
		c := that[line[2].Row][line[2].Col]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

// History records applied moves in order.
type History []Move

func (that History) MoveCount() int {
	return len(that)
}

func (that History) LastMove() (Move, bool) {
	if len(that) == 0 {
		return Move{}, false
	}

	return that[len(that)-1], true
}
