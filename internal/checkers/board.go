// Package checkers implements two-player checkers on an 8x8 board.
package checkers

import "fmt"

const (
	BoardSize = 8

	// rows filled with pieces at the start, per side
	startingRows = 3
)

const Name = "Checkers"

func GameName() string {
	return Name
}

// Square is the content of one board square.
type Square int

const (
	Empty Square = iota
	PlayerOne
	PlayerTwo
	Unreachable
)

func (that Square) IsPlayer() bool {
	return that == PlayerOne || that == PlayerTwo
}

func (that Square) Opponent() Square {
	switch that {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return Empty
	}
}

func (that Square) String() string {
	switch that {
	case Empty:
		return "empty"
	case PlayerOne:
		return "player one"
	case PlayerTwo:
		return "player two"
	case Unreachable:
		return "unreachable"
	default:
		return fmt.Sprintf("square(%d)", int(that))
	}
}

// Position addresses a square; row 0 is the top of the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Position) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// Playable reports whether pieces may stand on the square.
func (that Position) Playable() bool {
	return (that.Row+that.Col)%2 == 1
}

// String renders the position the way players type it, e.g. "g3".
func (that Position) String() string {
	return fmt.Sprintf("%c%d", 'a'+rune(that.Col), BoardSize-that.Row)
}

type Board [BoardSize][BoardSize]Square

// NewBoard returns the starting layout: player two on top, player one at the bottom.
func NewBoard() Board {
	var board Board

	for row := range BoardSize {
		for col := range BoardSize {
			switch {
			case !(Position{Row: row, Col: col}).Playable():
				board[row][col] = Unreachable
			case row < startingRows:
				board[row][col] = PlayerTwo
			case row >= BoardSize-startingRows:
				board[row][col] = PlayerOne
			default:
				board[row][col] = Empty
			}
		}
	}

	return board
}

func (that *Board) At(pos Position) Square {
	return that[pos.Row][pos.Col]
}

func (that *Board) set(pos Position, value Square) {
	that[pos.Row][pos.Col] = value
}

// PieceCount counts the pieces each side still has on the board.
func (that *Board) PieceCount() map[Square]int {
	counts := map[Square]int{PlayerOne: 0, PlayerTwo: 0}

	for row := range BoardSize {
		for col := range BoardSize {
			if square := that[row][col]; square.IsPlayer() {
				counts[square]++
			}
		}
	}

	return counts
}
