package terminal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/boardgames/internal/checkers"
)

const (
	columnGuide  = "   a    b    c    d    e    f    g    h\n"
	boardTop     = " ╔════╦════╦════╦════╦════╦════╦════╦════╗\n"
	rowSeparator = " ╠════╬════╬════╬════╬════╬════╬════╬════╣\n"
	boardBottom  = " ╚════╩════╩════╩════╩════╩════╩════╩════╝\n"
)

// Checkers is a two-player game at one console.
type Checkers struct {
	console *Console
	game    *checkers.Game
}

func NewCheckers(console *Console) *Checkers {
	return &Checkers{
		console: console,
		game:    checkers.NewGame(),
	}
}

func (that *Checkers) GameName() string {
	return checkers.GameName()
}

func (that *Checkers) Play() error {
	defer that.game.Reset()

	that.console.Println("If you wish to stop playing the game enter 'exit'.")
	that.displayBoard()

	for !that.game.IsFinished() {
		if that.game.Turn == checkers.PlayerOne {
			that.console.Println("First player's turn.")
		} else {
			that.console.Println("Second player's turn.")
		}

		err := that.userMove()
		if errors.Is(err, errQuit) {
			return nil
		}

		if err != nil {
			return err
		}

		that.displayBoard()
	}

	that.console.Println("Game over!")

	return nil
}

// userMove prompts until a legal move is played.
func (that *Checkers) userMove() error {
	for {
		from, to, err := that.promptUser()
		if err != nil {
			return err
		}

		err = that.game.Move(from, to)
		if err == nil {
			return nil
		}

		if errors.Is(err, checkers.ErrGameOver) {
			return err
		}

		that.console.Println(moveErrorMessage(err))
	}
}

// promptUser accepts "g3" followed by "h4", or "g3 h4" in one line.
func (that *Checkers) promptUser() (checkers.Position, checkers.Position, error) {
	for {
		choice, err := that.console.ReadLine("Select a piece: ")
		if err != nil {
			return checkers.Position{}, checkers.Position{}, err
		}

		if strings.EqualFold(choice, answerExit) {
			return checkers.Position{}, checkers.Position{}, errQuit
		}

		if strings.Contains(choice, " ") {
			from, to, err := checkers.ParseMove(choice)
			if err == nil {
				return from, to, nil
			}

			that.invalidEntryMessage()
			continue
		}

		from, err := checkers.ParseSquare(choice)
		if err != nil {
			that.invalidEntryMessage()
			continue
		}

		target, err := that.console.ReadLine("Where would you like to move this piece? ")
		if err != nil {
			return checkers.Position{}, checkers.Position{}, err
		}

		to, err := checkers.ParseSquare(target)
		if err != nil {
			that.invalidEntryMessage()
			continue
		}

		return from, to, nil
	}
}

func (that *Checkers) invalidEntryMessage() {
	that.console.Println("Invalid entry")
	that.console.Println("Please enter a letter for column and a number for row, like 'a3'")
}

func (that *Checkers) icon(square checkers.Square) string {
	switch square {
	case checkers.PlayerOne:
		return that.console.paint(colorBlue, "●")
	case checkers.PlayerTwo:
		return that.console.paint(colorGreen, "▶")
	default:
		return " "
	}
}

func (that *Checkers) displayBoard() {
	var result strings.Builder

	result.WriteString("\n" + columnGuide + boardTop)

	for row := range checkers.BoardSize {
		label := checkers.BoardSize - row

		result.WriteString(fmt.Sprintf("%d║", label))
		for col := range checkers.BoardSize {
			result.WriteString("  " + that.icon(that.game.Board.At(checkers.Position{Row: row, Col: col})) + " ║")
		}
		result.WriteString(fmt.Sprintf("%d\n", label))

		if row < checkers.BoardSize-1 {
			result.WriteString(rowSeparator)
		}
	}

	result.WriteString(boardBottom + columnGuide)

	that.console.Println(result.String())
}

func moveErrorMessage(err error) string {
	for _, known := range []error{
		checkers.ErrOutOfBounds,
		checkers.ErrNotYourPiece,
		checkers.ErrSquareOccupied,
		checkers.ErrTooFar,
		checkers.ErrNothingToJump,
	} {
		if errors.Is(err, known) {
			text := known.Error()
			return strings.ToUpper(text[:1]) + text[1:] + "!"
		}
	}

	return err.Error()
}
