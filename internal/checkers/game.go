package checkers

import "fmt"

// Step is one applied move.
type Step struct {
	From   Position `json:"from"`
	To     Position `json:"to"`
	Player Square   `json:"player"`
}

type Game struct {
	Board   Board
	Turn    Square
	Winner  Square
	History []Step
}

// NewGame starts a game with player one to move.
func NewGame() *Game {
	return &Game{
		Board: NewBoard(),
		Turn:  PlayerOne,
	}
}

func (that *Game) IsFinished() bool {
	return that.Winner != Empty
}

// Move plays a step or jump for the side whose turn it is.
func (that *Game) Move(from, to Position) error {
	if that.IsFinished() {
		return ErrGameOver
	}

	jumped, err := ValidateMove(&that.Board, from, to, that.Turn)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	if jumped != nil {
		that.Board.set(*jumped, Empty)
	}

	that.Board.set(from, Empty)
	that.Board.set(to, that.Turn)
	that.History = append(that.History, Step{From: from, To: to, Player: that.Turn})

	that.checkForWin()

	if !that.IsFinished() {
		that.Turn = that.Turn.Opponent()
	}

	return nil
}

// checkForWin ends the game once one side has no pieces left; checkers has no draw here.
func (that *Game) checkForWin() {
	counts := that.Board.PieceCount()

	switch {
	case counts[PlayerOne] == 0:
		that.Winner = PlayerTwo
	case counts[PlayerTwo] == 0:
		that.Winner = PlayerOne
	default:
		that.Winner = Empty
	}
}

func (that *Game) Reset() {
	that.Board = NewBoard()
	that.Turn = PlayerOne
	that.Winner = Empty
	that.History = nil
}
