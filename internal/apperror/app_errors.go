package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrNoActiveGames     = errors.New("no active games")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell coordinates")
	ErrInvalidCellValue  = errors.New("invalid cell value")
	ErrGameAlreadyExists = errors.New("game already exists")
	ErrGameIsFull        = errors.New("game already has two players")
	ErrNotFound          = errors.New("not found")

	// ErrPreconditionViolation is returned when a bot is asked to move on a terminal board.
	ErrPreconditionViolation = errors.New("bot invoked on a terminal board")
)
