package terminal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rocketscienceinc/boardgames/internal/bot"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/tictactoe"
)

const (
	answerExit        = "exit"
	answerSettings    = "settings"
	answerChangeIcons = "change icons"
)

var errQuit = errors.New("quit")

type moveSelector interface {
	SelectMove(board bot.BoardView, player entity.Cell, history bot.MoveLog) (entity.Move, error)
}

type mover func(game *entity.Game) (entity.Move, error)

// TicTacToe plays against the bot or between two people at one console.
type TicTacToe struct {
	console  *Console
	selector moveSelector

	game   *entity.Game
	icons  map[entity.Cell]string
	movers map[entity.Cell]mover
}

func NewTicTacToe(console *Console, selector moveSelector) *TicTacToe {
	game := entity.NewGame("terminal", entity.PrivateType, "")
	game.Status = entity.StatusOngoing

	return &TicTacToe{
		console:  console,
		selector: selector,
		game:     game,
		icons: map[entity.Cell]string{
			entity.FirstMover:  "X",
			entity.SecondMover: "O",
		},
	}
}

func (that *TicTacToe) GameName() string {
	return tictactoe.GameName()
}

// Play runs one game and resets the board afterwards.
func (that *TicTacToe) Play() error {
	defer tictactoe.Reset(that.game)

	if err := that.settingsPrompt(); err != nil {
		return err
	}

	that.console.Println("If you wish to stop playing the game enter 'exit'.")
	that.displayBoard()

	for that.game.IsOngoing() {
		if that.game.Turn == entity.FirstMover {
			that.console.Println("First player's turn.")
		} else {
			that.console.Println("Second player's turn.")
		}

		move, err := that.movers[that.game.Turn](that.game)
		if errors.Is(err, errQuit) {
			return nil
		}

		if err != nil {
			return err
		}

		if err = tictactoe.MakeTurn(that.game, that.game.Turn, move); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		that.displayBoard()
	}

	that.displayResult()

	return nil
}

func (that *TicTacToe) settingsPrompt() error {
	players := 0
	for players != 1 && players != 2 {
		answer, err := that.input("Enter the number of players (1 or 2): ", true)
		if err != nil {
			return err
		}

		if answer == answerChangeIcons {
			if err = that.changeIcons(); err != nil {
				return err
			}

			continue
		}

		players, _ = strconv.Atoi(answer)
	}

	if players == 2 {
		that.console.Printf("%ss plays first, decide who will be the first player.\n", that.icons[entity.FirstMover])
		that.movers = map[entity.Cell]mover{entity.FirstMover: that.humanMove, entity.SecondMover: that.humanMove}

		return nil
	}

	for {
		first, second := that.icons[entity.FirstMover], that.icons[entity.SecondMover]

		answer, err := that.input(fmt.Sprintf("%ss plays first, do you want to be %s or %s? ", first, first, second), true)
		if err != nil {
			return err
		}

		switch answer {
		case first:
			that.movers = map[entity.Cell]mover{entity.FirstMover: that.humanMove, entity.SecondMover: that.botMove}
			return nil
		case second:
			that.movers = map[entity.Cell]mover{entity.FirstMover: that.botMove, entity.SecondMover: that.humanMove}
			return nil
		}

		that.console.Println("That is not a valid option, make sure to match the letter's upper/lower case.")
	}
}

// input reads an answer, opening the settings whenever they are allowed and asked for.
func (that *TicTacToe) input(prompt string, settingsAllowed bool) (string, error) {
	for {
		answer, err := that.console.ReadLine(prompt)
		if err != nil {
			return "", err
		}

		if answer != answerSettings {
			return answer, nil
		}

		if !settingsAllowed {
			that.console.Println("You can not do that right now.")
			continue
		}

		if err = that.advancedSettings(); err != nil {
			return "", err
		}
	}
}

func (that *TicTacToe) advancedSettings() error {
	for {
		answer, err := that.input("What setting do you want to change? ", false)
		if err != nil {
			return err
		}

		if answer == answerChangeIcons {
			return that.changeIcons()
		}

		that.console.Printf("There is no setting %q, the only option is %q.\n", answer, answerChangeIcons)
	}
}

func (that *TicTacToe) changeIcons() error {
	that.console.Println("Both player icons must only be 1 character long.")

	first, err := that.readIcon("What do you want first move icon to be? (Traditionally X): ", "")
	if err != nil {
		return err
	}

	second, err := that.readIcon("What do you want second move icon to be? (Traditionally O): ", first)
	if err != nil {
		return err
	}

	that.icons[entity.FirstMover] = first
	that.icons[entity.SecondMover] = second

	return nil
}

func (that *TicTacToe) readIcon(prompt, taken string) (string, error) {
	for {
		icon, err := that.input(prompt, false)
		if err != nil {
			return "", err
		}

		switch {
		case utf8.RuneCountInString(icon) != 1 || icon == " ":
			that.console.Println("Please enter a single character for the player icon")
		case icon == taken:
			that.console.Println("The players need different icons")
		default:
			return icon, nil
		}
	}
}

func (that *TicTacToe) humanMove(game *entity.Game) (entity.Move, error) {
	for {
		answer, err := that.input("Where do you want to play? ", true)
		if err != nil {
			return entity.Move{}, err
		}

		if strings.EqualFold(answer, answerExit) {
			return entity.Move{}, errQuit
		}

		digit, err := strconv.Atoi(answer)
		if err != nil || len(answer) != 1 || digit < 1 {
			continue
		}

		move := entity.MoveFromIndex(digit - 1)
		if !game.Board.IsEmptyCell(move.Row, move.Col) {
			that.console.Println("That space is already taken")
			continue
		}

		return move, nil
	}
}

func (that *TicTacToe) botMove(game *entity.Game) (entity.Move, error) {
	move, err := that.selector.SelectMove(&game.Board, game.Turn, game.History)
	if err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to select move: %w", err)
	}

	return move, nil
}

func (that *TicTacToe) displayBoard() {
	var result strings.Builder

	result.WriteString("\n")

	for row := range entity.BoardSize {
		result.WriteString("\t")

		for col := range entity.BoardSize {
			if value := that.game.Board.CellValue(row, col); value.IsPlayer() {
				result.WriteString(" " + that.icons[value] + " ")
			} else {
				label := strconv.Itoa(entity.Move{Row: row, Col: col}.Index() + 1)
				result.WriteString(that.console.paint(colorGreen, " "+label+" "))
			}

			if col < entity.BoardSize-1 {
				result.WriteString("║")
			}
		}

		result.WriteString("\n")

		if row < entity.BoardSize-1 {
			result.WriteString("\t═══╬═══╬═══\n")
		}
	}

	that.console.Println(result.String())
}

func (that *TicTacToe) displayResult() {
	switch that.game.Winner {
	case entity.PlayerX, entity.PlayerO:
		that.console.Printf("%s won the game!\n", that.icons[that.game.Winner])
	case entity.PlayerTie:
		that.console.Println("The game ended in a draw")
	}
}
