package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

const Name = "Tic-Tac-Toe"

func GameName() string {
	return Name
}

// MakeTurn places mark on the board for the player whose turn it is.
func MakeTurn(gameInstance *entity.Game, mark entity.Cell, move entity.Move) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(gameInstance, mark, move); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	if err := ApplyMove(gameInstance, move, mark); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	updateGameStatus(gameInstance, mark)

	return nil
}

// ApplyMove writes a raw value to a cell without turn checks; player marks are
// appended to the history.
func ApplyMove(gameInstance *entity.Game, move entity.Move, value entity.Cell) error {
	if err := gameInstance.Board.Set(move, value); err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	if value.IsPlayer() {
		gameInstance.History = append(gameInstance.History, move)
	}

	return nil
}

// Reset starts a fresh round in the same session.
func Reset(gameInstance *entity.Game) {
	gameInstance.Board = entity.Board{}
	gameInstance.History = entity.History{}
	gameInstance.Winner = entity.EmptyCell
	gameInstance.Turn = entity.FirstMover
	gameInstance.Status = entity.StatusOngoing
}

// validateMove - checks if the move is valid.
func validateMove(gameInstance *entity.Game, mark entity.Cell, move entity.Move) error {
	if !move.Valid() {
		return fmt.Errorf("%w: %w: %s", apperror.ErrInvalidCellValue, apperror.ErrInvalidCell, move)
	}

	if gameInstance.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if !gameInstance.Board.IsEmptyCell(move.Row, move.Col) {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(gameInstance *entity.Game, mark entity.Cell) {
	gameInstance.UpdateGameState()

	if gameInstance.IsOngoing() {
		gameInstance.Turn = toggleMark(mark)
	}
}

func toggleMark(currentMark entity.Cell) entity.Cell {
	if currentMark == entity.PlayerX {
		return entity.PlayerO
	}
	return entity.PlayerX
}
