package checkers

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds     = errors.New("that space is out of bounds")
	ErrNotYourPiece    = errors.New("you do not have a piece there")
	ErrSquareOccupied  = errors.New("there is already a piece there")
	ErrTooFar          = errors.New("that space is too far away")
	ErrNothingToJump   = errors.New("there is no opponent piece to jump over")
	ErrGameOver        = errors.New("game is over")
	ErrInvalidPosition = errors.New("invalid position")
)

// ValidateMove checks a single step or jump for player and returns the
// position of the captured piece for jumps.
func ValidateMove(board *Board, from, to Position, player Square) (*Position, error) {
	if !from.InBounds() || !to.InBounds() || !from.Playable() || !to.Playable() {
		return nil, fmt.Errorf("%w: %s to %s", ErrOutOfBounds, from, to)
	}

	if board.At(from) != player {
		return nil, fmt.Errorf("%w: %s", ErrNotYourPiece, from)
	}

	if board.At(to) != Empty {
		return nil, fmt.Errorf("%w: %s", ErrSquareOccupied, to)
	}

	rowDistance, colDistance := abs(to.Row-from.Row), abs(to.Col-from.Col)

	switch {
	case rowDistance == 1 && colDistance == 1:
		return nil, nil
	case rowDistance == 2 && colDistance == 2:
		jumped := Position{Row: (from.Row + to.Row) / 2, Col: (from.Col + to.Col) / 2}
		if board.At(jumped) != player.Opponent() {
			return nil, fmt.Errorf("%w: %s", ErrNothingToJump, jumped)
		}

		return &jumped, nil
	default:
		return nil, fmt.Errorf("%w: %s to %s", ErrTooFar, from, to)
	}
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
